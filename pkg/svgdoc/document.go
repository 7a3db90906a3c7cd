package svgdoc

import (
	"os"

	"github.com/beevik/etree"

	errs "github.com/matzehuels/bugmaker/pkg/errors"
)

// Document is a parsed SVG template. It is not safe for concurrent use.
type Document struct {
	source string
	tree   *etree.Document
	root   *etree.Element
}

// Open parses the SVG file at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errs.New(errs.ErrCodeFileNotFound, "template not found: %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read template %s", path)
	}
	return parse(data, path)
}

// Parse parses an in-memory SVG document.
func Parse(data []byte) (*Document, error) {
	return parse(data, "<memory>")
}

func parse(data []byte, source string) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse template %s", source)
	}

	root := tree.Root()
	if root == nil {
		return nil, errs.New(errs.ErrCodeSchema, "template %s has no root element", source)
	}
	if root.Tag != "svg" {
		root = root.FindElement(".//svg")
		if root == nil {
			return nil, errs.New(errs.ErrCodeSchema, "template %s has no svg element", source)
		}
	}

	return &Document{source: source, tree: tree, root: root}, nil
}

// Source returns the path the document was read from, or "<memory>".
func (d *Document) Source() string {
	return d.source
}

// Root returns the svg element.
func (d *Document) Root() *etree.Element {
	d.mustOpen()
	return d.root
}

// Bytes serializes the current tree.
func (d *Document) Bytes() ([]byte, error) {
	d.mustOpen()
	data, err := d.tree.WriteToBytes()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "serialize %s", d.source)
	}
	return data, nil
}

// Close releases the tree. Closing twice is allowed.
func (d *Document) Close() error {
	d.tree = nil
	d.root = nil
	return nil
}

// Closed reports whether Close has been called.
func (d *Document) Closed() bool {
	return d.tree == nil
}

func (d *Document) mustOpen() {
	if d.tree == nil {
		panic("svgdoc: use of closed document " + d.source)
	}
}
