package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Colors are assigned by catalog role: platform versions and framework
// versions each get their own hue so bindings read at a glance.
var (
	colorPlatform  = lipgloss.Color("36")  // teal
	colorFramework = lipgloss.Color("141") // violet
	colorOK        = lipgloss.Color("35")
	colorWarn      = lipgloss.Color("220")
	colorLink      = lipgloss.Color("75")
	colorText      = lipgloss.Color("255")
	colorLabel     = lipgloss.Color("245")
	colorMuted     = lipgloss.Color("240")
)

var (
	// StyleTitle renders project names and screen titles.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorPlatform)

	// StylePlatform renders platform version ids.
	StylePlatform = lipgloss.NewStyle().Foreground(colorPlatform)

	// StyleFramework renders framework version ids.
	StyleFramework = lipgloss.NewStyle().Foreground(colorFramework)

	StyleLink    = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue   = lipgloss.NewStyle().Foreground(colorText)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleLabel   = lipgloss.NewStyle().Foreground(colorLabel).Width(labelWidth)
	styleSpinner = lipgloss.NewStyle().Foreground(colorPlatform)
	styleBorder  = lipgloss.NewStyle().Foreground(colorMuted)
	styleHeader  = lipgloss.NewStyle().Foreground(colorLabel).Bold(true).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
	styleIDCell  = styleCell.Foreground(colorPlatform)
)

// labelWidth fits the longest descriptor label ("Application").
const labelWidth = 14

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
)

// printKeyValue prints one "label value" line of a descriptor. Empty values
// are skipped.
func printKeyValue(w io.Writer, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintln(w, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, StyleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, StyleDim.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written artifact.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// newTable returns a rounded table whose first column holds catalog ids.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return styleIDCell
			default:
				return styleCell
			}
		})
}

// defaultMark flags the default element of a version table.
func defaultMark(isDefault bool) string {
	if isDefault {
		return StyleSuccess.Render(iconSuccess + " default")
	}
	return ""
}
