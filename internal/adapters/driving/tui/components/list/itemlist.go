// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pew/internal/adapters/driving/tui/styles"
)

// Item is one row of a list.
type Item struct {
	// Title is the row text and the value filtered on.
	Title string

	// Detail is shown muted after the title. Optional.
	Detail string
}

// ItemList displays items in a navigable, filterable list.
type ItemList struct {
	label    string
	items    []Item
	visible  []int
	filter   string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewItemList creates a list headed by label, e.g. "Feasts".
func NewItemList(s *styles.Styles, label string) *ItemList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ItemList{
		label:  label,
		styles: s,
		width:  80,
		height: 20,
	}
}

// Update handles list navigation messages.
func (l *ItemList) Update(msg tea.Msg) (*ItemList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if n := len(l.visible); n > 0 {
				l.selected = n - 1
			}
		}
	}
	return l, nil
}

// View renders the visible window of the list.
func (l *ItemList) View() string {
	header := fmt.Sprintf("%s (%d)", l.label, len(l.visible))
	if l.filter != "" {
		header = fmt.Sprintf("%s (%d of %d matching %q)", l.label, len(l.visible), len(l.items), l.filter)
	}

	lines := []string{l.styles.Title.Render(header), ""}
	if len(l.visible) == 0 {
		lines = append(lines, l.styles.Muted.Render("Nothing to show"))
		return strings.Join(lines, "\n")
	}

	rows := max(l.height-2, 1)
	start := 0
	if l.selected >= rows {
		start = l.selected - rows + 1
	}
	end := min(start+rows, len(l.visible))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i == l.selected, l.items[l.visible[i]]))
	}
	return strings.Join(lines, "\n")
}

func (l *ItemList) renderItem(selected bool, item Item) string {
	title := truncate(item.Title, max(l.width-4, 10))
	if selected {
		return l.styles.Selected.Render("> " + title)
	}
	line := l.styles.Normal.Render("  " + title)
	if item.Detail != "" {
		line += l.styles.Muted.Render("  " + item.Detail)
	}
	return line
}

// SetItems replaces the items and reapplies the current filter.
func (l *ItemList) SetItems(items []Item) {
	l.items = items
	l.applyFilter()
}

// SetFilter shows only items whose title contains filter, ignoring case.
func (l *ItemList) SetFilter(filter string) {
	l.filter = strings.TrimSpace(filter)
	l.applyFilter()
}

func (l *ItemList) applyFilter() {
	needle := strings.ToLower(l.filter)
	l.visible = l.visible[:0]
	for i, item := range l.items {
		if needle == "" || strings.Contains(strings.ToLower(item.Title), needle) {
			l.visible = append(l.visible, i)
		}
	}
	l.selected = 0
}

// Filter returns the current filter text.
func (l *ItemList) Filter() string {
	return l.filter
}

// SelectedItem returns the item under the cursor, or nil if the list is empty.
func (l *ItemList) SelectedItem() *Item {
	if l.selected < 0 || l.selected >= len(l.visible) {
		return nil
	}
	return &l.items[l.visible[l.selected]]
}

// Selected returns the cursor position among the visible items.
func (l *ItemList) Selected() int {
	return l.selected
}

// MoveUp moves selection up.
func (l *ItemList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ItemList) MoveDown() {
	if l.selected < len(l.visible)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ItemList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of visible items.
func (l *ItemList) Count() int {
	return len(l.visible)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
