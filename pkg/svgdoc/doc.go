// Package svgdoc wraps a parsed SVG template and the small set of tree
// operations the bug generator relies on.
//
// # Document
//
// A [Document] owns the element tree. It is parsed once, mutated in place
// and released with [Document.Close]. Touching a closed document panics:
// that is always a bug in the caller, never a recoverable condition.
//
// # Accessor
//
// [FindChildByTag], [FindChildByLabel] and [RemoveChildByLabel] scan direct
// children only. The template schema fixes the nesting depth at every call
// site, so there is no descendant search.
//
// # Labels and pivots
//
// Elements are identified by their inkscape:label attribute. The first
// character is a role tag: G marks a transformable group, P marks a pivot
// marker. The rest is an identifier shared by a group and its pivot, so
// GHead pairs with PHead. [ParseLabel] derives the [Role] once.
//
// [ExtractPivot] reads a group's pivot marker, removes it from the tree and
// returns its coordinates as the document's own text. It consumes the
// marker: a second call on the same group fails.
package svgdoc
