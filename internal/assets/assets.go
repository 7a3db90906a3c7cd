// Package assets embeds the default bug template.
package assets

import _ "embed"

// Template is the stock bug SVG. It follows the label schema expected by
// the bug generator and is used whenever no template path is configured.
//
//go:embed bug.svg
var Template []byte
