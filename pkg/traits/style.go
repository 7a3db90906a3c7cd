package traits

import (
	"regexp"

	"github.com/beevik/etree"
	"github.com/lucasb-eyer/go-colorful"
)

var fillDecl = regexp.MustCompile(`fill:#[0-9A-Za-z]{6}`)

// SetColor rewrites the fill:#RRGGBB declaration inside el's style
// attribute. Every other declaration is kept byte for byte. Elements
// without a style attribute are left alone.
func SetColor(el *etree.Element, c colorful.Color) {
	style := el.SelectAttr("style")
	if style == nil {
		return
	}
	style.Value = fillDecl.ReplaceAllLiteralString(style.Value, "fill:"+c.Hex())
}

// SetFill sets el's fill presentation attribute.
func SetFill(el *etree.Element, c colorful.Color) {
	el.CreateAttr("fill", c.Hex())
}
