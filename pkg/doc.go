// Package pkg holds the bugmaker libraries.
//
// # Overview
//
// Bugmaker draws cartoon bugs from a layered SVG template. Every draw tilts
// the head, spreads the wings, swings the legs and whiskers, recolors the
// body and background, and picks a name and a rarity label. The pkg
// directory is organized as:
//
//  1. [svgdoc] - SVG document access and the pivot marker protocol
//  2. [transform] - Rotation, translation and scale around a pivot
//  3. [traits] - Weighted palettes, name vocabulary and rarity scoring
//  4. [bug] - The generator that binds a template and re-rolls it
//  5. [render] - PNG and PDF rasterization through rsvg-convert or Inkscape
//  6. [batch] - Parallel multi-bug runs with zip archives
//  7. [cache], [config], [metrics], [observability], [errors] - Supporting infrastructure
//
// # Data Flow
//
//	bug.svg template
//	         ↓
//	    [svgdoc] parse, resolve parts, consume pivot markers
//	         ↓
//	    [bug] Regenerate: pose via [transform], colors and text via [traits]
//	         ↓
//	    [render] rasterize (optionally through the [cache])
//	         ↓
//	    SVG/PNG/PDF output
//
// # Quick Start
//
//	g, err := bug.New("bug.svg", bug.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	defer g.Close()
//
//	g.Regenerate()
//	if err := g.ExportPNG(ctx, "ladybug.png"); err != nil {
//	    return err
//	}
package pkg
