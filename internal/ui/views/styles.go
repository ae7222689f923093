package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Prompt        lipgloss.Style
	Query         lipgloss.Style
	Main          lipgloss.Style
	Help          lipgloss.Style
	Scroll        lipgloss.Style
	Tile          lipgloss.Style
	TileSelected  lipgloss.Style
	TileHeader    lipgloss.Style
	TileMeta      lipgloss.Style
	LoadMore      lipgloss.Style
	Modal         lipgloss.Style
	ModalTitle    lipgloss.Style
	InfoBox       lipgloss.Style
	LogBox        lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Query:  lipgloss.NewStyle().Bold(true),
		Main:   lipgloss.NewStyle().Padding(1, 2),
		Help:   lipgloss.NewStyle().Faint(true),
		Scroll: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Tile: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1).
			Width(TileWidth - 2),
		TileSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1).
			Width(TileWidth - 2),
		TileHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		TileMeta:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		LoadMore:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true), // green
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		ModalTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		LogBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			Width(80).
			BorderForeground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
