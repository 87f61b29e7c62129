package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/placeviz/placeviz/pkg/gui"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan    = lipgloss.Color("36")  // Teal - primary actions
	colorGreen   = lipgloss.Color("35")  // Green - success
	colorYellow  = lipgloss.Color("220") // Amber - selection, warnings
	colorRed     = lipgloss.Color("167") // Soft red - errors
	colorMagenta = lipgloss.Color("133") // Magenta - fillers
	colorWhite   = lipgloss.Color("255") // Bright white - values
	colorGray    = lipgloss.Color("245") // Gray - secondary text
	colorDim     = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim       = lipgloss.NewStyle().Foreground(colorDim)
	styleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
	styleInstance  = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleInternal  = lipgloss.NewStyle().Foreground(colorMagenta)
	styleKey       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleHeader    = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleIconOK    = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo  = lipgloss.NewStyle().Foreground(colorGray)
	styleSpinner   = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconOK.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints a dim, indented detail line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+styleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints counts on a single dim line: "  12 cells · 64 bins".
func printStats(w io.Writer, parts ...string) {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, styleDim.Render(p))
		}
	}
	fmt.Fprintln(w, "  "+strings.Join(kept, styleDim.Render(" · ")))
}

// =============================================================================
// Selection Display
// =============================================================================

// selectedLabel colors a pick result by kind.
func selectedLabel(s gui.Selected) string {
	switch s.Kind {
	case gui.SelectedInstance:
		return styleInstance.Render(s.String())
	case gui.SelectedInternal:
		return styleInternal.Render(s.String())
	default:
		return styleDim.Render(s.String())
	}
}
