package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/buttception/RagdollEngine-sub001/pool/printer"
)

var (
	// Color palette
	headColor    = lipgloss.Color("#7D56F4")
	runColor     = lipgloss.Color("#04B575")
	mutedColor   = lipgloss.Color("#666666")
	errorColor   = lipgloss.Color("#FF4B4B")
	successColor = lipgloss.Color("#00D7FF")

	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(headColor)
	runStyle   = lipgloss.NewStyle().Foreground(runColor)
	freeStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	refStyle   = lipgloss.NewStyle().Foreground(successColor)
)

// styleMap colors a block map symbol by symbol.
func styleMap(m string) string {
	if noColor {
		return m
	}
	var sb strings.Builder
	for _, c := range m {
		s := string(c)
		switch c {
		case printer.SymbolHead:
			sb.WriteString(headStyle.Render(s))
		case printer.SymbolContinuation:
			sb.WriteString(runStyle.Render(s))
		case printer.SymbolFree:
			sb.WriteString(freeStyle.Render(s))
		default:
			sb.WriteString(s)
		}
	}
	return sb.String()
}

// styled renders s with st unless colors are disabled.
func styled(st lipgloss.Style, s string) string {
	if noColor {
		return s
	}
	return st.Render(s)
}
