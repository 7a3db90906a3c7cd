package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bugmaker/pkg/bug"
	"github.com/matzehuels/bugmaker/pkg/traits"
)

// stdout is where human-readable output goes. Tests swap it.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette & Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleHighlight for names and other emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleNumber for counts and seeds.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleSuccess for completed actions.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	// StyleWarning for warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFresh       = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Lines
// =============================================================================

func status(icon string, iconColor lipgloss.TerminalColor, msg string) {
	fmt.Fprintln(stdout, lipgloss.NewStyle().Foreground(iconColor).Render(icon)+" "+msg)
}

func printSuccess(format string, args ...any) {
	status(iconSuccess, colorGreen, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status(iconError, colorRed, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(iconWarning, colorYellow, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(iconInfo, colorGray, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints an output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

// =============================================================================
// Bugs
// =============================================================================

// rarityStyle colors a rarity label by band.
func rarityStyle(rarity string) lipgloss.Style {
	switch rarity {
	case traits.Epic:
		return lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	case traits.Rare:
		return lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	case traits.Uncommon:
		return lipgloss.NewStyle().Foreground(colorGreen)
	default:
		return lipgloss.NewStyle().Foreground(colorGray)
	}
}

// swatch renders a hex color as a colored block followed by its value.
func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██") + " " + hex
}

// printTraits prints the drawn traits of one bug.
func printTraits(t bug.Traits, seed uint64) {
	printKeyValue("Name", t.Name)
	printKeyValue("Rarity", rarityStyle(t.Rarity).Render(t.Rarity)+StyleDim.Render(fmt.Sprintf(" (score %d)", t.Score.Total())))
	printKeyValue("Body", swatch(t.Body)+StyleDim.Render(fmt.Sprintf(" %s/%d", t.Base, t.Tone)))
	printKeyValue("Wings", swatch(t.Wings))
	printKeyValue("Background", swatch(t.Background)+StyleDim.Render(" "+t.Scenery))
	printKeyValue("Pose", fmt.Sprintf("%d° × %.2f", t.Rotation, t.Scale))
	printKeyValue("Seed", StyleNumber.Render(strconv.FormatUint(seed, 10)))
}

// printCacheStats prints artifact cache hits and misses on one line.
func printCacheStats(hits, misses int) {
	if hits == 0 && misses == 0 {
		return
	}
	fmt.Fprintln(stdout, "  "+
		styleCached.Render(fmt.Sprintf("%d cached", hits))+
		StyleDim.Render(" · ")+
		styleFresh.Render(fmt.Sprintf("%d fresh", misses)))
}
