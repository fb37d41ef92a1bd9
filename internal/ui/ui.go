// Package ui renders the installer's human-readable status lines. All
// rendering is stateless: fixed style values and pure functions from
// (category, text) to a styled string. Nothing here mutates shared
// state, and color is degraded automatically on non-TTY output by
// lipgloss's profile detection.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Category classifies a status line for styling purposes.
type Category int

const (
	// CategoryHeader is a section banner.
	CategoryHeader Category = iota
	// CategorySuccess is a completed step.
	CategorySuccess
	// CategoryWarning is a recoverable problem.
	CategoryWarning
	// CategoryError is a fatal problem.
	CategoryError
	// CategoryInfo is neutral progress information.
	CategoryInfo
)

// bannerWidth is the width of the header rule lines.
const bannerWidth = 60

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// Render returns text styled for the given category. Header text is
// framed by rule lines; the other categories carry a status glyph.
func Render(c Category, text string) string {
	switch c {
	case CategoryHeader:
		return Header(text)
	case CategorySuccess:
		return Success(text)
	case CategoryWarning:
		return Warning(text)
	case CategoryError:
		return Error(text)
	case CategoryInfo:
		return Info(text)
	default:
		return text
	}
}

// Header renders a banner framed by rule lines.
func Header(text string) string {
	rule := strings.Repeat("=", bannerWidth)
	return headerStyle.Render(rule) + "\n" +
		headerStyle.Render(text) + "\n" +
		headerStyle.Render(rule)
}

// Success renders a completed-step line.
func Success(text string) string {
	return successStyle.Render("✓ " + text)
}

// Warning renders a recoverable-problem line.
func Warning(text string) string {
	return warningStyle.Render("⚠ " + text)
}

// Error renders a fatal-problem line.
func Error(text string) string {
	return errorStyle.Render("✗ " + text)
}

// Info renders a neutral progress line.
func Info(text string) string {
	return infoStyle.Render("ℹ " + text)
}
