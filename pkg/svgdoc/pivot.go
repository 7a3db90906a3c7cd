package svgdoc

import (
	"github.com/beevik/etree"

	errs "github.com/matzehuels/bugmaker/pkg/errors"
)

// Pivot is a rotation anchor. Coordinates keep the template's own text so
// units are never reinterpreted.
type Pivot struct {
	X, Y string
}

// ExtractPivot reads and removes the pivot marker of group.
func ExtractPivot(group *etree.Element) (Pivot, error) {
	label := LabelOf(group)
	pivotLabel, err := ChildPivotLabel(label)
	if err != nil {
		return Pivot{}, err
	}

	marker := FindChildByLabel(group, pivotLabel)
	if marker == nil {
		return Pivot{}, errs.New(errs.ErrCodePivotNotFound, "Pivot child was not found: %s in %s", pivotLabel, label)
	}

	p := Pivot{
		X: marker.SelectAttrValue("x", ""),
		Y: marker.SelectAttrValue("y", ""),
	}
	if p.X == "" || p.Y == "" {
		return Pivot{}, errs.New(errs.ErrCodeSchema, "pivot %s has empty coordinates (x=%q y=%q)", pivotLabel, p.X, p.Y)
	}

	group.RemoveChild(marker)
	return p, nil
}
