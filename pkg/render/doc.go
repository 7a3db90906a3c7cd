// Package render turns a serialized bug SVG into a bitmap or PDF.
//
// Rasterization is delegated to an external program behind the
// [Rasterizer] interface:
//
//   - [RSVG] pipes the document through rsvg-convert (librsvg)
//   - [Inkscape] drives a long-lived inkscape shell session
//
// [Cached] wraps either backend with a content-addressed artifact cache, so
// re-rendering an identical document is free.
//
//	r := render.NewRSVG(render.WithScale(2))
//	png, err := r.Rasterize(ctx, svg, render.FormatPNG)
//
// Every backend reports each call to [observability.Render].
package render
