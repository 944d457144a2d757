package ui

import "github.com/charmbracelet/lipgloss"

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Slide       lipgloss.Style
	ActiveSlide lipgloss.Style
	SlideTitle  lipgloss.Style
	Dim         lipgloss.Style
	Dot         lipgloss.Style
	ActiveDot   lipgloss.Style
	FocusedDot  lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Playing     lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Slide: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		ActiveSlide: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		SlideTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Dot:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		ActiveDot:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		FocusedDot:  lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Playing:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Help:        lipgloss.NewStyle().Faint(true),
	}
}
