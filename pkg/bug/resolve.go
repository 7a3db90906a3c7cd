package bug

import (
	"github.com/beevik/etree"

	errs "github.com/matzehuels/bugmaker/pkg/errors"
	"github.com/matzehuels/bugmaker/pkg/svgdoc"
)

// Part is a rotatable group bundled with the pivot taken out of it.
type Part struct {
	El    *etree.Element
	Pivot svgdoc.Pivot
}

// resolver looks up template elements and remembers the first failure, so
// the construction code reads as a flat list of lookups.
type resolver struct {
	source string
	err    error
}

func (r *resolver) tag(parent *etree.Element, tag string) *etree.Element {
	if r.err != nil {
		return nil
	}
	el := svgdoc.FindChildByTag(parent, tag)
	if el == nil {
		r.err = errs.New(errs.ErrCodeSchema, "template %s: no <%s> under %s", r.source, tag, describe(parent))
	}
	return el
}

func (r *resolver) child(parent *etree.Element, label string) *etree.Element {
	if r.err != nil {
		return nil
	}
	el := svgdoc.FindChildByLabel(parent, label)
	if el == nil {
		r.err = errs.New(errs.ErrCodeSchema, "template %s: no element labelled %q under %s", r.source, label, describe(parent))
	}
	return el
}

func (r *resolver) part(parent *etree.Element, label string) Part {
	el := r.child(parent, label)
	if r.err != nil {
		return Part{}
	}
	p, err := svgdoc.ExtractPivot(el)
	if err != nil {
		r.err = err
		return Part{}
	}
	return Part{El: el, Pivot: p}
}

func (r *resolver) text(box *etree.Element) *etree.CharData {
	if r.err != nil {
		return nil
	}
	cd := svgdoc.FirstText(box)
	if cd == nil {
		r.err = errs.New(errs.ErrCodeSchema, "template %s: %s has no text node", r.source, describe(box))
	}
	return cd
}

func describe(el *etree.Element) string {
	if label := svgdoc.LabelOf(el); label != "" {
		return "\"" + label + "\""
	}
	return "<" + el.Tag + ">"
}
