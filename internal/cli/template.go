package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bugmaker/pkg/bug"
	"github.com/matzehuels/bugmaker/pkg/render"
)

// templateCommand creates the command that exports or checks a template.
func (c *CLI) templateCommand() *cobra.Command {
	var (
		path   string
		output string
		check  bool
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print the bug template or check a custom one",
		Long: `Print the SVG template bugs are drawn from. Start a custom template from
the built-in one, then check it with --check before using it with --template.`,
		Example: `  bugmaker template -o beetle.svg
  bugmaker template --check -t beetle.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("template") {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				path = cfg.Template
			}
			tmpl, source, err := loadTemplate(path)
			if err != nil {
				return err
			}

			if check {
				g, err := bug.NewFromBytes(tmpl, bug.WithLogger(c.Logger))
				if err != nil {
					return fmt.Errorf("template %s: %w", source, err)
				}
				g.Close()
				printSuccess("Template %s is valid", StyleHighlight.Render(source))
				printDetail("All pivots and parts resolved (%d legs per side)", bug.Legs)
				return nil
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(tmpl)
				return err
			}
			if err := render.WriteFile(output, tmpl); err != nil {
				return err
			}
			printSuccess("Template written")
			printFile(output)
			printNextStep("Check your edits", "bugmaker template --check -t "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "template", "t", "", "template to print or check (default: built-in)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&check, "check", false, "resolve every part and pivot instead of printing")

	return cmd
}
