package ui

import (
	"github.com/charmbracelet/lipgloss"

	"vidgrab/internal/model"
)

type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Panel    lipgloss.Style
	Button   lipgloss.Style
	Focused  lipgloss.Style
	Disabled lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Faint    lipgloss.Style
	Spinner  lipgloss.Style
}

type palette struct {
	accent, text, muted, border, focusBg, focusFg, success, danger, warn, info string
}

var (
	lightPalette = palette{
		accent: "#7D56F4", text: "#1F2937", muted: "#6B7280", border: "#D1D5DB",
		focusBg: "#7D56F4", focusFg: "#FFFFFF",
		success: "#15803D", danger: "#B91C1C", warn: "#B45309", info: "#1D4ED8",
	}
	darkPalette = palette{
		accent: "#A78BFA", text: "#E5E7EB", muted: "#9CA3AF", border: "#4B5563",
		focusBg: "#A78BFA", focusFg: "#111827",
		success: "#22C55E", danger: "#EF4444", warn: "#F59E0B", info: "#60A5FA",
	}
)

func stylesFor(t model.Theme) Styles {
	p := lightPalette
	if t == model.ThemeDark {
		p = darkPalette
	}
	base := lipgloss.NewStyle()
	return Styles{
		Title:    base.Bold(true).Foreground(lipgloss.Color(p.accent)),
		Subtitle: base.Foreground(lipgloss.Color(p.muted)),
		Label:    base.Bold(true).Foreground(lipgloss.Color(p.text)),
		Value:    base.Foreground(lipgloss.Color(p.text)),
		Panel: base.Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),
		Button:   base.Foreground(lipgloss.Color(p.text)).Padding(0, 1),
		Focused:  base.Bold(true).Foreground(lipgloss.Color(p.focusFg)).Background(lipgloss.Color(p.focusBg)).Padding(0, 1),
		Disabled: base.Faint(true).Foreground(lipgloss.Color(p.muted)).Padding(0, 1),
		Success:  base.Foreground(lipgloss.Color(p.success)),
		Error:    base.Foreground(lipgloss.Color(p.danger)),
		Warning:  base.Foreground(lipgloss.Color(p.warn)),
		Info:     base.Foreground(lipgloss.Color(p.info)),
		Faint:    base.Faint(true),
		Spinner:  base.Foreground(lipgloss.Color(p.accent)),
	}
}
