package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bugmaker/pkg/bug"
	"github.com/matzehuels/bugmaker/pkg/config"
	errs "github.com/matzehuels/bugmaker/pkg/errors"
	"github.com/matzehuels/bugmaker/pkg/render"
)

// historySize is the number of past rolls shown in the table.
const historySize = 8

var (
	rollHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	rollNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	rollErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// RollModel - Interactive re-rolling
// =============================================================================

// roll is one entry of the roll history.
type roll struct {
	n      int
	traits bug.Traits
}

// savedMsg reports the outcome of an export started with "s".
type savedMsg struct {
	path string
	err  error
}

// templateChangedMsg is sent when the watched template file is written.
type templateChangedMsg struct{}

// Exporter is the part of [bug.Generator] the roll model drives.
type Exporter interface {
	Regenerate()
	Traits() (bug.Traits, bool)
	Export(ctx context.Context, path, format string) error
	Close() error
}

// lockedExporter serializes Export with Close. When the program is killed
// mid-save the export goroutine keeps running, and Close must wait for it.
type lockedExporter struct {
	mu     sync.Mutex
	closed bool
	Exporter
}

func (l *lockedExporter) Export(ctx context.Context, path, format string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return errs.New(errs.ErrCodeInternal, "generator closed before %s was saved", path)
	}
	return l.Exporter.Export(ctx, path, format)
}

func (l *lockedExporter) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.Exporter.Close()
}

// RollModel is the bubbletea model for re-rolling one bug until it is worth
// keeping.
type RollModel struct {
	ctx    context.Context
	gen    Exporter
	format string
	dir    string
	// reload rebuilds the generator from the template on disk; nil when
	// the template is not watched.
	reload func() (Exporter, error)

	Rolls   int
	Current bug.Traits
	History []roll
	Saved   []string
	Saving  bool
	Reloads int
	Status  string
	Err     error

	// quitting and reloadPending hold requests that arrived mid-save.
	quitting      bool
	reloadPending bool
}

// NewRollModel draws the first bug and returns the model.
func NewRollModel(ctx context.Context, gen Exporter, format, dir string) RollModel {
	m := RollModel{ctx: ctx, gen: gen, format: format, dir: dir}
	return m.reroll()
}

func (m RollModel) reroll() RollModel {
	m.gen.Regenerate()
	m.Rolls++
	m.Current, _ = m.gen.Traits()
	m.History = append([]roll{{n: m.Rolls, traits: m.Current}}, m.History...)
	if len(m.History) > historySize {
		m.History = m.History[:historySize]
	}
	m.Status = ""
	m.Err = nil
	return m
}

// path returns the file the current roll is saved to.
func (m RollModel) path() string {
	return filepath.Join(m.dir, fmt.Sprintf("roll_%d%s", m.Rolls, render.Extension(m.format)))
}

func (m RollModel) save() tea.Cmd {
	gen, ctx, path, format := m.gen, m.ctx, m.path(), m.format
	return func() tea.Msg {
		return savedMsg{path: path, err: gen.Export(ctx, path, format)}
	}
}

func (m RollModel) Init() tea.Cmd {
	return nil
}

func (m RollModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.Saving {
				m.quitting = true
				m.Status = "finishing save..."
				return m, nil
			}
			return m, tea.Quit
		case "r", " ", "enter":
			// The generator is busy until the export finishes.
			if m.Saving {
				return m, nil
			}
			return m.reroll(), nil
		case "s":
			if m.Saving {
				return m, nil
			}
			m.Saving = true
			m.Status = "saving " + m.path() + "..."
			return m, m.save()
		}
	case templateChangedMsg:
		if m.reload == nil {
			return m, nil
		}
		if m.Saving {
			m.reloadPending = true
			return m, nil
		}
		return m.applyReload(), nil
	case savedMsg:
		m.Saving = false
		if msg.err != nil {
			m.Err = msg.err
			m.Status = ""
		} else {
			m.Saved = append(m.Saved, msg.path)
			m.Status = iconSuccess + " saved " + msg.path
		}
		if m.quitting {
			return m, tea.Quit
		}
		if m.reloadPending {
			m.reloadPending = false
			m = m.applyReload()
		}
	}
	return m, nil
}

// applyReload swaps in a generator built from the template on disk. The
// generator must not be exporting.
func (m RollModel) applyReload() RollModel {
	gen, err := m.reload()
	if err != nil {
		// Keep drawing from the last good template.
		m.Err = err
		return m
	}
	m.gen.Close()
	m.gen = gen
	m.Reloads++
	m = m.reroll()
	m.Status = "template reloaded"
	return m
}

func (m RollModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Bugmaker"))
	b.WriteString("\n")
	b.WriteString(rollHelpStyle.Render("r/space re-roll  s save  q quit"))
	b.WriteString("\n\n")

	t := m.Current
	b.WriteString(rollNameStyle.Render(t.Name))
	b.WriteString("  ")
	b.WriteString(rarityStyle(t.Rarity).Render(t.Rarity))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  score %d", t.Score.Total())))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("body %s  wings %s  background %s\n", swatch(t.Body), swatch(t.Wings), swatch(t.Background)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("pose %d° × %.2f", t.Rotation, t.Scale)))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.History))
	for i, r := range m.History {
		rows[i] = []string{fmt.Sprint(r.n), r.traits.Name, r.traits.Rarity, r.traits.Base, r.traits.Scenery}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Name", "Rarity", "Color", "Scenery").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 2 {
				return rarityStyle(rows[row][2]).Padding(0, 1)
			}
			if row == 0 {
				return base.Foreground(colorWhite)
			}
			return base.Foreground(colorDim)
		})
	b.WriteString(tbl.Render())
	b.WriteString("\n")

	switch {
	case m.Err != nil:
		b.WriteString(rollErrorStyle.Render(iconError + " " + errs.UserMessage(m.Err)))
	case m.Status != "":
		b.WriteString(StyleSuccess.Render(m.Status))
	default:
		b.WriteString(rollHelpStyle.Render(fmt.Sprintf("  [%d rolls, %d saved]", m.Rolls, len(m.Saved))))
	}
	b.WriteString("\n")

	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// rollOpts holds the flags of the roll command.
type rollOpts struct {
	renderFlags
	dir   string
	watch bool
}

// rollCommand creates the interactive re-roll command.
func (c *CLI) rollCommand() *cobra.Command {
	var opts rollOpts

	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Re-roll a bug interactively and save the ones you like",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd, &opts.renderFlags)
			if err != nil {
				return err
			}
			return c.runRoll(cmd.Context(), cfg, opts.dir, opts.watch)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.dir, "output", "o", ".", "directory for saved bugs")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload the template when its file changes")

	return cmd
}

func (c *CLI) runRoll(ctx context.Context, cfg config.Config, dir string, watch bool) error {
	raster, err := c.newRasterizer(cfg)
	if err != nil {
		return err
	}
	defer c.closeRasterizer(raster)

	opts := []bug.Option{bug.WithRand(bug.NewRand(c.seed(cfg))), bug.WithLogger(c.Logger)}
	if raster != nil {
		opts = append(opts, bug.WithRasterizer(raster))
	}
	load := func() (Exporter, error) {
		tmpl, source, err := loadTemplate(cfg.Template)
		if err != nil {
			return nil, err
		}
		g, err := bug.NewFromBytes(tmpl, opts...)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", source, err)
		}
		return &lockedExporter{Exporter: g}, nil
	}
	g, err := load()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logging would corrupt the screen.
	level := c.Logger.GetLevel()
	c.Logger.SetLevel(log.FatalLevel)
	defer c.Logger.SetLevel(level)

	model := NewRollModel(ctx, g, strings.ToLower(cfg.Render.Format), dir)
	var changes <-chan struct{}
	if watch && cfg.Template != "" {
		w, err := watchTemplate(cfg.Template)
		if err != nil {
			g.Close()
			return err
		}
		defer w.Close()
		model.reload = load
		changes = w.Changes
	}

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if changes != nil {
		go func() {
			for range changes {
				p.Send(templateChangedMsg{})
			}
		}()
	}

	final, err := p.Run()
	m, ok := final.(RollModel)
	if !ok {
		g.Close()
		return err
	}
	// Waits for an export still running after a kill.
	m.gen.Close()
	if err != nil {
		return err
	}

	if len(m.Saved) > 0 {
		printSuccess("Saved %d of %d rolls", len(m.Saved), m.Rolls)
		for _, p := range m.Saved {
			printFile(p)
		}
	}
	return nil
}
