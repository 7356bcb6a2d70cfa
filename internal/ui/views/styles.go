package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
	Loading       lipgloss.Style
	Error         lipgloss.Style
	Warning       lipgloss.Style
	Result        lipgloss.Style
	ResultFocused lipgloss.Style
	Link          lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	Dialog        lipgloss.Style
	DialogTitle   lipgloss.Style
	Help          lipgloss.Style
	Status        lipgloss.Style
	Backdrop      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Loading:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Warning:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Result:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ResultFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true).Background(lipgloss.Color("238")),
		Link:          lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		Button:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")),
		ButtonFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("99")).Bold(true),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Help:        lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Backdrop:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
