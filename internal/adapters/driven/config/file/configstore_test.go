package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".pew", "config.toml"), store.Path())
	assert.DirExists(t, filepath.Join(home, ".pew"))
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "deep")

	store, err := NewConfigStore(nestedPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nestedPath, "config.toml"), store.Path())

	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("server.addr", "0.0.0.0:8080"))
	require.NoError(t, store.Set("converter.timeout", 90))
	require.NoError(t, store.Set("log.verbose", true))

	assert.Equal(t, "0.0.0.0:8080", store.GetString("server.addr"))
	assert.Equal(t, 90, store.GetInt("converter.timeout"))
	assert.True(t, store.GetBool("log.verbose"))

	// Wrong types and missing keys yield zero values
	assert.Equal(t, "", store.GetString("converter.timeout"))
	assert.Equal(t, 0, store.GetInt("server.addr"))
	assert.False(t, store.GetBool("server.addr"))
	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence_NestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("data.dir", "/srv/pew/data"))
	require.NoError(t, store.Set("data.source", "sqlite"))
	require.NoError(t, store.Set("converter.burst", 4))

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(content), "[data]")
	assert.Contains(t, string(content), "[converter]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/pew/data", reloaded.GetString("data.dir"))
	assert.Equal(t, "sqlite", reloaded.GetString("data.source"))
	assert.Equal(t, 4, reloaded.GetInt("converter.burst"))
}

func TestConfigStore_Load_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[server]
addr = ":5001"

[converter]
command = "libreoffice"
timeout = 30
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, ":5001", store.GetString("server.addr"))
	assert.Equal(t, "libreoffice", store.GetString("converter.command"))
	assert.Equal(t, 30, store.GetInt("converter.timeout"))
}

func TestConfigStore_Load_CommentOnly(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# Just a comment\n\n"), 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	_, ok := store.Get("server.addr")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("server.addr", ":5000"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Set_WriteFileError(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("server.addr", ":5000"))

	// Replace the file with a directory to cause write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("server.addr", ":5001"))
}

func TestConfigStore_Set_UnmarshallableValue(t *testing.T) {
	store := newTestStore(t)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
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

func TestEnvKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		ok   bool
	}{
		{"PEW_DATA_DIR", "data.dir", true},
		{"PEW_DATA_SQLITE_PATH", "data.sqlite_path", true},
		{"PEW_CONVERTER_VERIFY_COMMAND", "converter.verify_command", true},
		{"PEW_LOG_VERBOSE", "log.verbose", true},
		{"PEW_DATA", "", false},
		{"PEW_", "", false},
		{"HOME", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := EnvKey(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestConfigStore_ApplyEnv(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("server.addr", ":5000"))
	require.NoError(t, store.Set("converter.timeout", 60))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"PEW_SERVER_ADDR=:7000\nPEW_CONVERTER_TIMEOUT=15\nPEW_LOG_VERBOSE=true\nOTHER=ignored\n"), 0600))
	t.Setenv("PEW_SERVER_ADDR", ":8000")

	require.NoError(t, store.ApplyEnv(envFile, filepath.Join(t.TempDir(), "missing.env")))

	// Process environment beats the .env file, which beats the config file
	assert.Equal(t, ":8000", store.GetString("server.addr"))
	assert.Equal(t, 15, store.GetInt("converter.timeout"))
	assert.True(t, store.GetBool("log.verbose"))

	_, ok := store.Get("other.")
	assert.False(t, ok)
}

func TestConfigStore_ApplyEnv_NotPersisted(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	t.Setenv("PEW_DATA_DIR", "/from/env")
	require.NoError(t, store.ApplyEnv())
	require.NoError(t, store.Set("data.source", "csv"))

	assert.Equal(t, "/from/env", store.GetString("data.dir"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := reloaded.Get("data.dir")
	assert.False(t, ok)
	assert.Equal(t, "csv", reloaded.GetString("data.source"))
}

func TestConfigStore_ApplyEnv_BadFile(t *testing.T) {
	store := newTestStore(t)

	// A directory cannot be parsed as a .env file
	err := store.ApplyEnv(t.TempDir())

	assert.Error(t, err)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"data.dir":    "data",
		"data.source": "csv",
		"top":         1,
	})

	assert.Equal(t, map[string]any{
		"data": map[string]any{"dir": "data", "source": "csv"},
		"top":  1,
	}, nested)
	assert.Equal(t, map[string]any{"data.dir": "data", "data.source": "csv", "top": 1}, flattenMap(nested, ""))
}
