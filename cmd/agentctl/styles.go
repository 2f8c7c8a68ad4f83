package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	accentColor = lipgloss.Color("#7D56F4")

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func okMark() string {
	return okStyle.Render("✓")
}

func failMark() string {
	return failStyle.Render("✗")
}

// link renders url as a terminal hyperlink labelled text when enabled.
func link(enabled bool, url string, text string) string {
	if !enabled || url == "" {
		return text
	}
	return termenv.Hyperlink(url, text)
}
