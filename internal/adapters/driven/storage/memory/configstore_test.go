package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pew/internal/core/ports/driven"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)

	_, ok := store.Get("server.addr")
	assert.False(t, ok)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seed(t *testing.T) {
	seed := map[string]any{"server.addr": ":8080"}
	store := NewConfigStore(seed, map[string]any{"log.verbose": true})

	assert.Equal(t, ":8080", store.GetString("server.addr"))
	assert.True(t, store.GetBool("log.verbose"))

	// The seed is copied.
	seed["server.addr"] = ":9090"
	assert.Equal(t, ":8080", store.GetString("server.addr"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"str":     "value",
		"int":     42,
		"int64":   int64(60),
		"float64": float64(7),
		"bool":    true,
	})

	assert.Equal(t, "value", store.GetString("str"))
	assert.Equal(t, "", store.GetString("int"))
	assert.Equal(t, 42, store.GetInt("int"))
	assert.Equal(t, 60, store.GetInt("int64"))
	assert.Equal(t, 7, store.GetInt("float64"))
	assert.Equal(t, 0, store.GetInt("str"))
	assert.True(t, store.GetBool("bool"))
	assert.False(t, store.GetBool("str"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_SetSaveLoad(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("converter.command", "libreoffice"))
	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, "libreoffice", store.GetString("converter.command"))
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("converter.burst", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("converter.burst")
		}()
	}
	wg.Wait()

	_, ok := store.Get("converter.burst")
	assert.True(t, ok)
}

func TestConfigStore_InterfaceCompliance(t *testing.T) {
	var _ driven.ConfigStore = NewConfigStore()
}
