// Package feasts provides the feast list view for the TUI.
package feasts

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

// View lists the feasts and lets the user filter and open one.
type View struct {
	styles  *styles.Styles
	records driving.RecordService

	list    *list.ItemList
	filter  *input.FilterInput
	err     error
	loading bool
}

// NewView creates a new feast list view.
func NewView(s *styles.Styles, records driving.RecordService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		records: records,
		list:    list.NewItemList(s, "Feasts"),
		filter:  input.NewFilterInput(s, "part of a feast name"),
	}
}

// Init loads the feasts.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.records == nil {
			return messages.FeastsLoaded{Err: errors.New("record service not available")}
		}
		feasts, err := v.records.Feasts(context.Background())
		return messages.FeastsLoaded{Feasts: feasts, Err: err}
	}
}

// Update handles messages for the feast list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.FeastsLoaded:
		v.loading = false
		v.err = msg.Err
		items := make([]list.Item, len(msg.Feasts))
		for i := range msg.Feasts {
			items[i] = list.Item{Title: msg.Feasts[i].Name}
		}
		v.list.SetItems(items)

	case tea.KeyMsg:
		if v.filter.Focused() {
			return v.handleFilterKey(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.filter.Blur()
		return v, nil
	case "esc":
		v.filter.Reset()
		v.list.SetFilter("")
		return v, nil
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	v.list.SetFilter(v.filter.Value())
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "/":
		return v, v.filter.Focus()
	case "enter":
		item := v.list.SelectedItem()
		if item == nil {
			return v, nil
		}
		name := item.Title
		return v, func() tea.Msg { return messages.FeastSelected{Name: name} }
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// View renders the feast list.
func (v *View) View() string {
	var b strings.Builder

	if v.filter.Focused() || v.list.Filter() != "" {
		b.WriteString(v.filter.View())
		b.WriteString("\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading feasts..."))
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

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
