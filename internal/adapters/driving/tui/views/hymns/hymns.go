// Package hymns provides the hymnal index view for the TUI.
package hymns

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pew/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pew/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/pew/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pew/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pew/internal/core/ports/driving"
)

// View lists the hymnal index by first line.
type View struct {
	styles  *styles.Styles
	records driving.RecordService

	list    *list.ItemList
	filter  *input.FilterInput
	err     error
	loading bool
}

// NewView creates a new hymn list view.
func NewView(s *styles.Styles, records driving.RecordService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		records: records,
		list:    list.NewItemList(s, "Hymns"),
		filter:  input.NewFilterInput(s, "words of the first line"),
	}
}

// Init loads the hymns.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return func() tea.Msg {
		if v.records == nil {
			return messages.HymnsLoaded{Err: errors.New("record service not available")}
		}
		hymns, err := v.records.Hymns(context.Background())
		return messages.HymnsLoaded{Hymns: hymns, Err: err}
	}
}

// Update handles messages for the hymn list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.HymnsLoaded:
		v.loading = false
		v.err = msg.Err
		items := make([]list.Item, len(msg.Hymns))
		for i, h := range msg.Hymns {
			items[i] = list.Item{Title: h.Title, Detail: h.Ref}
		}
		v.list.SetItems(items)

	case tea.KeyMsg:
		if v.filter.Focused() {
			switch msg.String() {
			case "enter":
				v.filter.Blur()
			case "esc":
				v.filter.Reset()
				v.list.SetFilter("")
			default:
				var cmd tea.Cmd
				v.filter, cmd = v.filter.Update(msg)
				v.list.SetFilter(v.filter.Value())
				return v, cmd
			}
			return v, nil
		}

		switch msg.String() {
		case "/":
			return v, v.filter.Focus()
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		}
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

// View renders the hymn list.
func (v *View) View() string {
	var b strings.Builder

	if v.filter.Focused() || v.list.Filter() != "" {
		b.WriteString(v.filter.View())
		b.WriteString("\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading hymns..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	default:
		b.WriteString(v.list.View())
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.list.SetDimensions(width, max(height-6, 3))
	v.filter.SetWidth(width)
}

// Filtering reports whether key presses go to the filter input.
func (v *View) Filtering() bool {
	return v.filter.Focused()
}
