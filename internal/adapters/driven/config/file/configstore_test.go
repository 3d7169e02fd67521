package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("server.port", 8080))
	require.NoError(t, store.Set("ai.provider", "openai"))
	require.NoError(t, store.Set("server.cors", true))

	assert.Equal(t, 8080, store.GetInt("server.port"))
	assert.Equal(t, "openai", store.GetString("ai.provider"))
	assert.True(t, store.GetBool("server.cors"))
}

func TestConfigStore_GetMissingKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("chunking.size", 1000))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 1000, reopened.GetInt("chunking.size"))
}

func TestConfigStore_LoadsNestedTOMLAsDotKeys(t *testing.T) {
	dir := t.TempDir()
	content := "[retrieval]\ntop_k = 5\n\n[ai]\nprovider = \"ollama\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, store.GetInt("retrieval.top_k"))
	assert.Equal(t, "ollama", store.GetString("ai.provider"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	dir := t.TempDir()
	content := "[ingest]\nextensions = [\".txt\", \".md\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{".txt", ".md"}, store.GetStringSlice("ingest.extensions"))
}
