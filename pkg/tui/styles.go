// Package tui provides the interactive menus and terminal styling for hydecli.
package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme returns the custom theme for the TUI forms.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(lipgloss.Color("39"))            // Cyan
	t.Focused.Description = t.Focused.Description.Foreground(lipgloss.Color("8")) // Gray
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(lipgloss.Color("40")).Bold(true)

	return t
}

// Styles for various TUI components
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

// Success prints a green status line.
func Success(format string, args ...interface{}) {
	fmt.Println(SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints a red status line.
func Error(format string, args ...interface{}) {
	fmt.Println(ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// Warning prints an orange status line.
func Warning(format string, args ...interface{}) {
	fmt.Println(WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// Info prints a cyan status line.
func Info(format string, args ...interface{}) {
	fmt.Println(InfoStyle.Render(fmt.Sprintf(format, args...)))
}
