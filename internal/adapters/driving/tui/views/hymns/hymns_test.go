package hymns

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pew/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pew/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/services"
)

func TestView_LoadAndFilter(t *testing.T) {
	records := services.NewRecordService(memory.NewRecordStore(&domain.Tables{
		Hymns: []domain.HymnRow{
			{Number: 30, FirstLine: "Hark! the herald-angels sing"},
			{Number: 24, FirstLine: "A great and mighty wonder"},
		},
	}))
	v := NewView(nil, records)

	v.Update(v.Init()())
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	view := v.View()
	assert.Contains(t, view, "Hymns (2)")
	assert.Contains(t, view, "NEH: 30")

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, v.Filtering())
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("wonder")})

	assert.Contains(t, v.View(), `1 of 2 matching "wonder"`)
}

func TestView_Esc(t *testing.T) {
	v := NewView(nil, nil)
	v.Update(messages.HymnsLoaded{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_NoRecords(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(v.Init()())

	assert.Contains(t, v.View(), "record service not available")
}
