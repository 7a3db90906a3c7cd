package svgdoc

import (
	errs "github.com/matzehuels/bugmaker/pkg/errors"
)

// Role is the part a labelled element plays in the template.
type Role int

const (
	RoleOther Role = iota
	RoleGroup      // G prefix: transformable group
	RolePivot      // P prefix: rotation anchor of the sibling group
)

const (
	groupTag = 'G'
	pivotTag = 'P'
)

func (r Role) String() string {
	switch r {
	case RoleGroup:
		return "group"
	case RolePivot:
		return "pivot"
	default:
		return "other"
	}
}

// Label is a decoded schema label.
type Label struct {
	Raw  string
	Role Role
	ID   string // identifier shared by a group and its pivot; empty for RoleOther
}

// ParseLabel decodes s.
func ParseLabel(s string) Label {
	l := Label{Raw: s}
	if s == "" {
		return l
	}
	switch s[0] {
	case groupTag:
		l.Role, l.ID = RoleGroup, s[1:]
	case pivotTag:
		l.Role, l.ID = RolePivot, s[1:]
	}
	return l
}

// PivotLabel returns the label of the pivot marker paired with this group.
func (l Label) PivotLabel() (string, error) {
	if l.Role != RoleGroup {
		return "", errs.New(errs.ErrCodeProtocol,
			"can apply transformation only to groups (start with %c), got %q", groupTag, l.Raw)
	}
	return string(pivotTag) + l.ID, nil
}

// IsGroupLabel reports whether s names a transformable group.
func IsGroupLabel(s string) bool {
	return ParseLabel(s).Role == RoleGroup
}

// ChildPivotLabel returns the pivot label paired with groupLabel. It fails
// for anything that is not a group label.
func ChildPivotLabel(groupLabel string) (string, error) {
	return ParseLabel(groupLabel).PivotLabel()
}
