// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/pew/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewFeasts lists the feasts.
	ViewFeasts
	// ViewPropers shows the propers of one feast.
	ViewPropers
	// ViewHymns lists the hymnal index.
	ViewHymns
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewFeasts:
		return "feasts"
	case ViewPropers:
		return "propers"
	case ViewHymns:
		return "hymns"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// FeastsLoaded carries the feasts table.
type FeastsLoaded struct {
	Feasts []domain.Feast
	Err    error
}

// FeastSelected signals a feast was chosen from the list.
type FeastSelected struct {
	Name string
}

// FeastLoaded carries a single feast looked up by name.
type FeastLoaded struct {
	Feast *domain.Feast
	Err   error
}

// HymnsLoaded carries the hymnal index.
type HymnsLoaded struct {
	Hymns []domain.Music
	Err   error
}

// ExportCompleted signals a document was written to disk.
type ExportCompleted struct {
	Path string
	Err  error
}
