package list

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feastItems() []Item {
	return []Item{
		{Title: "Christmas Day"},
		{Title: "St Stephen"},
		{Title: "St John the Evangelist"},
		{Title: "Holy Innocents"},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestItemList_Navigation(t *testing.T) {
	l := NewItemList(nil, "Feasts")
	l.SetItems(feastItems())

	l.Update(key("down"))
	l.Update(key("j"))
	assert.Equal(t, 2, l.Selected())

	l.Update(key("G"))
	assert.Equal(t, 3, l.Selected())
	l.Update(key("j"))
	assert.Equal(t, 3, l.Selected())

	l.Update(key("up"))
	l.Update(key("k"))
	assert.Equal(t, 1, l.Selected())

	l.Update(key("g"))
	assert.Equal(t, 0, l.Selected())
	l.Update(key("k"))
	assert.Equal(t, 0, l.Selected())
}

func TestItemList_Filter(t *testing.T) {
	l := NewItemList(nil, "Feasts")
	l.SetItems(feastItems())
	l.MoveDown()

	l.SetFilter(" st ")

	assert.Equal(t, "st", l.Filter())
	assert.Equal(t, 3, l.Count())
	assert.Equal(t, 0, l.Selected())
	require.NotNil(t, l.SelectedItem())
	assert.Equal(t, "Christmas Day", l.SelectedItem().Title)

	l.MoveDown()
	assert.Equal(t, "St Stephen", l.SelectedItem().Title)
	assert.Contains(t, l.View(), `3 of 4 matching "st"`)

	l.SetFilter("")
	assert.Equal(t, 4, l.Count())
}

func TestItemList_Empty(t *testing.T) {
	l := NewItemList(nil, "Hymns")

	assert.Nil(t, l.SelectedItem())
	assert.Contains(t, l.View(), "Nothing to show")

	l.SetItems(feastItems())
	l.SetFilter("Epiphany")
	assert.Nil(t, l.SelectedItem())
}

func TestItemList_ViewWindow(t *testing.T) {
	l := NewItemList(nil, "Feasts")
	l.SetItems(feastItems())
	l.SetDimensions(40, 4)

	view := l.View()
	assert.Contains(t, view, "Feasts (4)")
	assert.Contains(t, view, "Christmas Day")
	assert.NotContains(t, view, "Holy Innocents")

	l.Update(key("G"))
	view = l.View()
	assert.Contains(t, view, "Holy Innocents")
	assert.NotContains(t, view, "Christmas Day")
}

func TestItemList_Detail(t *testing.T) {
	l := NewItemList(nil, "Hymns")
	l.SetItems([]Item{{Title: "A", Detail: "NEH: 1"}, {Title: "B", Detail: "NEH: 2"}})

	view := l.View()
	assert.Contains(t, view, "NEH: 2")
	assert.Equal(t, 4, len(strings.Split(view, "\n")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Saint Étienne", truncate("Saint Étienne", 20))
	assert.Equal(t, "Sain…", truncate("Saint Étienne", 5))
}
