package cli

import "github.com/charmbracelet/lipgloss"

var styles = struct {
	ok, err, muted, key lipgloss.Style
}{
	ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")).Bold(true),
	err:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true),
	muted: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	key:   lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
}
