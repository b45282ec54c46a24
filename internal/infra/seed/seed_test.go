package infra_seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/humanbelnik/jukebox/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "blue-danube", "title": "The Blue Danube", "composer": "Johann Strauss II", "category": "waltz", "order": 1},
		{"id": "radetzky", "title": "Radetzky March", "categoryId": "march", "order": 1, "enabled": false},
		{"id": "emperor", "title": "Emperor Waltz", "section": "waltz", "order": 2, "hasWon": true}
	]`), 0o600))

	options, err := LoadOptions(path)
	require.NoError(t, err)
	require.Len(t, options, 3)

	assert.Equal(t, model.Option{
		ID: "blue-danube", Title: "The Blue Danube", Composer: "Johann Strauss II",
		Category: "waltz", Order: 1, Enabled: true,
	}, options[0])
	assert.Equal(t, "march", options[1].Category)
	assert.False(t, options[1].Enabled)
	assert.Equal(t, "waltz", model.CategoryOf(options[2]))
	assert.False(t, options[2].HasWon)
}

func TestLoadOptionsErrors(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":`), 0o600))
	_, err = LoadOptions(path)
	assert.Error(t, err)
}
