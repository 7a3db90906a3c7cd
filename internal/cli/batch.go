package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bugmaker/pkg/batch"
	"github.com/matzehuels/bugmaker/pkg/config"
	"github.com/matzehuels/bugmaker/pkg/metrics"
	"github.com/matzehuels/bugmaker/pkg/observability"
	"github.com/matzehuels/bugmaker/pkg/traits"
)

// batchOpts holds the flags of the batch command.
type batchOpts struct {
	renderFlags
	count       int
	workers     int
	output      string
	archive     bool
	failFast    bool
	metricsFile string
}

func (o *batchOpts) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Batch.Count = o.count
	}
	if flags.Changed("workers") {
		cfg.Batch.Workers = o.workers
	}
	if flags.Changed("output") {
		cfg.Batch.Output = o.output
	}
	if flags.Changed("archive") {
		cfg.Batch.Archive = o.archive
	}
	if flags.Changed("fail-fast") {
		cfg.Batch.FailFast = o.failFast
	}
	if flags.Changed("metrics-file") {
		cfg.Batch.MetricsFile = o.metricsFile
	}
}

// batchCommand creates the command that renders many bugs in parallel.
func (c *CLI) batchCommand() *cobra.Command {
	var opts batchOpts
	d := config.Default()

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Draw many bugs into a directory",
		Example: `  bugmaker batch -n 100 -o out/
  bugmaker batch -n 20 --seed 7 --archive
  bugmaker batch -n 500 -w 8 --metrics-file /var/lib/node_exporter/bugmaker.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts.renderFlags.apply(cmd, &cfg)
			opts.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runBatch(cmd.Context(), cfg)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.count, "count", "n", d.Batch.Count, "number of bugs")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "parallel workers (default: all CPUs)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", d.Batch.Output, "output directory")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "also bundle the bugs into a zip archive")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "stop at the first failed bug")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, cfg config.Config) error {
	tmpl, source, err := loadTemplate(cfg.Template)
	if err != nil {
		return err
	}
	raster, err := c.newRasterizer(cfg)
	if err != nil {
		return err
	}
	defer c.closeRasterizer(raster)

	recorder := metrics.NewPrometheusRecorder(nil)
	recorder.Register()
	defer observability.Reset()

	seed := c.seed(cfg)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Drawing %d bugs...", cfg.Batch.Count))
	spinner.Start()

	res, err := batch.Run(ctx, batch.Options{
		Template:   tmpl,
		Source:     source,
		Count:      cfg.Batch.Count,
		Workers:    cfg.Batch.Workers,
		Seed:       seed,
		Format:     strings.ToLower(cfg.Render.Format),
		OutputDir:  cfg.Batch.Output,
		Archive:    cfg.Batch.Archive,
		FailFast:   cfg.Batch.FailFast,
		Rasterizer: raster,
		Logger:     c.Logger,
		Progress: func(done, total int) {
			spinner.SetMessage(fmt.Sprintf("Drawing bugs... %d/%d", done, total))
		},
	})
	spinner.Stop()

	if cfg.Batch.MetricsFile != "" {
		if werr := recorder.WriteTextfile(cfg.Batch.MetricsFile); werr != nil {
			c.Logger.Warn("write metrics", "path", cfg.Batch.MetricsFile, "err", werr)
		} else {
			c.Logger.Debug("metrics written", "path", cfg.Batch.MetricsFile)
		}
	}
	if err != nil {
		return err
	}

	printBatchSummary(res, cfg.Batch.Output)
	if summary, serr := recorder.Summary(); serr == nil {
		printCacheStats(
			int(summary["bugmaker_cache_events_total,event=hit,key_type=artifact"]),
			int(summary["bugmaker_cache_events_total,event=miss,key_type=artifact"]),
		)
	}
	if res.Failed > 0 {
		printNewline()
		for _, it := range res.Items {
			if it.Err != nil {
				printError("bug %d: %v", it.Index, it.Err)
			}
		}
		printWarning("%d of %d bugs failed", res.Failed, len(res.Items))
		return fmt.Errorf("%d bugs failed", res.Failed)
	}
	return nil
}

// rarityCounts tallies written bugs per rarity label, most common first.
func rarityCounts(res *batch.Result) [][]string {
	counts := make(map[string]int)
	for _, it := range res.Succeeded() {
		counts[it.Traits.Rarity]++
	}
	rows := make([][]string, 0, 4)
	for _, label := range []string{traits.Common, traits.Uncommon, traits.Rare, traits.Epic} {
		if n := counts[label]; n > 0 {
			rows = append(rows, []string{label, fmt.Sprint(n)})
		}
	}
	return rows
}

func printBatchSummary(res *batch.Result, dir string) {
	ok := len(res.Items) - res.Failed
	printSuccess("Drew %s bugs in %s", StyleNumber.Render(fmt.Sprint(ok)), res.Duration.Round(time.Millisecond))
	printDetail("Run: %s", res.ID)
	printFile(filepath.Clean(dir))
	if res.Archive != "" {
		printFile(res.Archive)
	}
	printNewline()

	rows := rarityCounts(res)
	if len(rows) == 0 {
		return
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Rarity", "Bugs").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return rarityStyle(rows[row][0]).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		})
	fmt.Fprintln(stdout, t.Render())
}
