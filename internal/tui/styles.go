package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the set of styles for one color scheme.
type Theme struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Summary   lipgloss.Style
	Synopsis  lipgloss.Style
	Error     lipgloss.Style
	Dim       lipgloss.Style
	PostTitle lipgloss.Style
	Link      lipgloss.Style
	Bar       lipgloss.Style
	Spinner   lipgloss.Style
	FooterKey lipgloss.Style
}

var lightTheme = Theme{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
	Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1),
	TabActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")).Padding(0, 1),
	Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	Value:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
	Summary:   lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
	Synopsis:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("60")),
	Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
	Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	PostTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("236")),
	Link:      lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("26")),
	Bar:       lipgloss.NewStyle().Foreground(lipgloss.Color("31")),
	Spinner:   lipgloss.NewStyle().Foreground(lipgloss.Color("127")),
	FooterKey: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("130")),
}

var darkTheme = Theme{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Padding(0, 1),
	TabActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")).Padding(0, 1),
	Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
	Value:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
	Summary:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	Synopsis:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("147")),
	Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	PostTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
	Link:      lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("75")),
	Bar:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	Spinner:   lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	FooterKey: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
}

// ThemeFor returns the dark or light theme.
func ThemeFor(dark bool) Theme {
	if dark {
		return darkTheme
	}
	return lightTheme
}
