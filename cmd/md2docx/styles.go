package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// ANSI 256 color codes for terminal output.
const (
	colorGreen = "42"
	colorRed   = "196"
	colorGray  = "241"
	colorPink  = "212"
)

// styles renders terminal output for one writer. Colors are dropped when
// the writer is not a terminal.
type styles struct {
	success lipgloss.Style
	failure lipgloss.Style
	dim     lipgloss.Style
	title   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		success: r.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		failure: r.NewStyle().Foreground(lipgloss.Color(colorRed)).Bold(true),
		dim:     r.NewStyle().Foreground(lipgloss.Color(colorGray)),
		title:   r.NewStyle().Foreground(lipgloss.Color(colorPink)).Bold(true),
	}
}

// failedStyle highlights a non-zero failure count.
func failedStyle(s styles, failed int) lipgloss.Style {
	if failed > 0 {
		return s.failure
	}
	return s.dim
}
