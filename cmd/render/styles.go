package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/karaoke/cmd/common/config"
)

// Styles are the lipgloss styles used for each kind of text on screen.
type Styles struct {
	Title    lipgloss.Style
	Inactive lipgloss.Style // lines not being sung
	Sung     lipgloss.Style // syllables already sung in an active line
	Current  lipgloss.Style // the syllable being sung
	Upcoming lipgloss.Style // syllables not sung yet in an active line
	Error    lipgloss.Style
}

// DefaultStyles uses the default config palette.
func DefaultStyles() Styles {
	return NewStyles(config.DefaultColors())
}

// NewStyles builds styles from a configured palette.
func NewStyles(c *config.Colors) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Title)),
		Inactive: lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color(c.Inactive)),
		Sung:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color(c.Sung)),
		Current:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Current)),
		Upcoming: lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color(c.Upcoming)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.Error)),
	}
}

func (s Styles) forClass(c Class) lipgloss.Style {
	switch c {
	case ClassSung:
		return s.Sung
	case ClassCurrent:
		return s.Current
	case ClassUpcoming:
		return s.Upcoming
	default:
		return s.Inactive
	}
}
