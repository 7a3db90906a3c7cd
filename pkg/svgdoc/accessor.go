package svgdoc

import (
	"github.com/beevik/etree"

	errs "github.com/matzehuels/bugmaker/pkg/errors"
)

// LabelAttr is the attribute carrying an element's schema label.
const LabelAttr = "inkscape:label"

// LabelOf returns the element's label, or "" if it has none.
func LabelOf(el *etree.Element) string {
	return el.SelectAttrValue(LabelAttr, "")
}

// FindChildByTag returns the first direct child element whose tag equals
// tag, or nil. It panics if node is nil.
func FindChildByTag(node *etree.Element, tag string) *etree.Element {
	if node == nil {
		panic("svgdoc: FindChildByTag on nil node")
	}
	for _, tok := range node.Child {
		if el, ok := tok.(*etree.Element); ok && el.Tag == tag {
			return el
		}
	}
	return nil
}

// FindChildByLabel returns the first direct child element labelled label,
// or nil. Text nodes are skipped. It panics if node is nil.
func FindChildByLabel(node *etree.Element, label string) *etree.Element {
	if node == nil {
		panic("svgdoc: FindChildByLabel on nil node")
	}
	for _, tok := range node.Child {
		if el, ok := tok.(*etree.Element); ok && LabelOf(el) == label {
			return el
		}
	}
	return nil
}

// RemoveChildByLabel removes the first direct child element labelled label.
func RemoveChildByLabel(node *etree.Element, label string) error {
	child := FindChildByLabel(node, label)
	if child == nil {
		return errs.New(errs.ErrCodeMissingChild, "No child with label %s", label)
	}
	node.RemoveChild(child)
	return nil
}

// FirstText returns the first text node of el's first child element, the
// place where template text containers keep their visible string.
func FirstText(el *etree.Element) *etree.CharData {
	for _, tok := range el.Child {
		inner, ok := tok.(*etree.Element)
		if !ok {
			continue
		}
		for _, t := range inner.Child {
			if cd, ok := t.(*etree.CharData); ok {
				return cd
			}
		}
		return nil
	}
	return nil
}
