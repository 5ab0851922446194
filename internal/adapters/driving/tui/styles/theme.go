// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI. The defaults follow a
// printed missal: red rubrics and gold titles on a dark page.
type Theme struct {
	// Rubric colours section headings, as rubrics are printed in red.
	Rubric lipgloss.Color

	// Gold is the accent for titles and the selection bar.
	Gold lipgloss.Color

	// Page is the background of highlighted rows.
	Page lipgloss.Color

	// Ink is the default text colour.
	Ink lipgloss.Color

	// Faded is for hints and secondary text.
	Faded lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Rubric:  lipgloss.Color("#C0392B"),
		Gold:    lipgloss.Color("#D4AC0D"),
		Page:    lipgloss.Color("#2C2416"),
		Ink:     lipgloss.Color("#EDE6D6"),
		Faded:   lipgloss.Color("#8A8170"),
		Success: lipgloss.Color("#7DCEA0"),
		Warning: lipgloss.Color("#F5B041"),
		Error:   lipgloss.Color("#EC7063"),
		Border:  lipgloss.Color("#5D5340"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title renders a feast name or view title.
	Title lipgloss.Style

	// Heading renders a proper's heading, e.g. "Collect".
	Heading lipgloss.Style

	Normal lipgloss.Style
	Muted  lipgloss.Style

	// Selected highlights the row under the cursor.
	Selected lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// InputField frames the filter input.
	InputField lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Gold),

		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Rubric),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Ink),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Faded),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Gold).
			Background(theme.Page),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Faded).
			Background(theme.Page).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Faded),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
