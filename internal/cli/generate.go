package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bugmaker/pkg/bug"
	"github.com/matzehuels/bugmaker/pkg/config"
	errs "github.com/matzehuels/bugmaker/pkg/errors"
	"github.com/matzehuels/bugmaker/pkg/render"
)

// generateOpts holds the flags of the generate command.
type generateOpts struct {
	renderFlags
	output string
}

// generateCommand creates the command that draws and exports one bug.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Draw one bug and write it to a file",
		Example: `  bugmaker generate -o ladybug.png
  bugmaker generate --seed 42 --format svg
  bugmaker generate -t art/beetle.svg --backend inkscape --scale 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd, &opts.renderFlags)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), cfg, opts.output)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: bug.<format>)")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, cfg config.Config, output string) error {
	format := strings.ToLower(cfg.Render.Format)
	if output == "" {
		output = "bug" + render.Extension(format)
	}
	if err := errs.ValidateOutputPath(output); err != nil {
		return err
	}

	tmpl, source, err := loadTemplate(cfg.Template)
	if err != nil {
		return err
	}
	raster, err := c.newRasterizer(cfg)
	if err != nil {
		return err
	}
	defer c.closeRasterizer(raster)

	seed := c.seed(cfg)
	opts := []bug.Option{bug.WithSeed(seed), bug.WithLogger(c.Logger)}
	if raster != nil {
		opts = append(opts, bug.WithRasterizer(raster))
	}

	prog := newProgress(c.Logger)
	g, err := bug.NewFromBytes(tmpl, opts...)
	if err != nil {
		return fmt.Errorf("template %s: %w", source, err)
	}
	defer g.Close()

	g.Regenerate()
	t, _ := g.Traits()
	if err := g.Export(ctx, output, format); err != nil {
		return err
	}
	prog.done("Bug exported", "path", output)

	printSuccess("Generated %s", StyleHighlight.Render(t.Name))
	printFile(output)
	printNewline()
	printTraits(t, seed)
	return nil
}
