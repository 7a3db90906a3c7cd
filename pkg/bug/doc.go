// Package bug generates randomized bug pictures from a labelled SVG template.
//
// A [Generator] parses the template once, resolves every element it will
// touch and consumes their pivot markers. After that each call to
// [Generator.Regenerate] redraws colors, poses, name and rarity in place,
// and any number of exports may follow:
//
//	g, err := bug.New("bug.svg", bug.WithSeed(7))
//	if err != nil {
//	    return err
//	}
//	defer g.Close()
//
//	for i := range 3 {
//	    g.Regenerate()
//	    if err := g.ExportPNG(ctx, fmt.Sprintf("bug_%d.png", i)); err != nil {
//	        return err
//	    }
//	}
//
// A Generator owns its document and random source and must not be shared
// between goroutines. Run one generator per worker for parallel output.
//
// # Template schema
//
// The svg root holds a background rect, a "Layer 1" group with the GBug
// group and a "Layer 2" group with the BugName and RarityText labels.
// Every group label starting with G that the generator rotates needs a
// direct child labelled with P and the same suffix (GHead / PHead) whose x
// and y give the rotation pivot.
package bug
