package intro

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const menuWidth = 40

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	Width(menuWidth).
	Align(lipgloss.Center).
	MarginLeft(4)

// MakeBox centres each line inside a double-line box.
func MakeBox(lines ...string) string {
	return boxStyle.Render(strings.Join(lines, "\n"))
}
