package bug

import "context"

// Generate draws a single bug from the template at template and writes it
// to path in format. It is the stateless form of New, Regenerate, Export
// and Close.
func Generate(ctx context.Context, template, path, format string, opts ...Option) (Traits, error) {
	g, err := New(template, opts...)
	if err != nil {
		return Traits{}, err
	}
	defer g.Close()

	g.Regenerate()
	t, _ := g.Traits()
	if err := g.Export(ctx, path, format); err != nil {
		return t, err
	}
	return t, nil
}
