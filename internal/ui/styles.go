// Package ui holds the terminal presentation layer: severity styles,
// confirm prompts and logger setup.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")

	// Styles
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	warningStyle = lipgloss.NewStyle().Foreground(colorYellow)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(20)

	sensitiveStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Italic(true)
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
	warnMark  = "[??]"
)

// Success prints a green success line.
func Success(msg string) {
	fmt.Println(successStyle.Render(checkMark + " " + msg))
}

// Warning prints a yellow warning line to stderr.
func Warning(msg string) {
	fmt.Fprintln(os.Stderr, warningStyle.Render(warnMark+" "+msg))
}

// Error prints a red error line to stderr.
func Error(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(crossMark+" "+msg))
}

// Section prints a bold section heading.
func Section(title string) {
	fmt.Println(sectionStyle.Render(title))
}

// Field prints an aligned label/value pair.
func Field(label, value string) {
	fmt.Println(labelStyle.Render(label) + value)
}

// SensitiveField prints an aligned label/value pair styled as sensitive.
// The value is shown once and should not appear anywhere else.
func SensitiveField(label, value string) {
	fmt.Println(labelStyle.Render(label) + sensitiveStyle.Render(value))
}
