package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/dastan/game/engine"
)

const smallYAML = `
name: small
description: Tiny board
rows: 4
cols: 4
pieces_per_side: 2
starting_score: 40
seed: 11
`

const classicJSON = `{
  "name": "classic",
  "description": "Standard board",
  "rows": 6,
  "cols": 6,
  "pieces_per_side": 4,
  "queue_one": ["ryott", "chowkidar", "cuirassier", "faujdar", "jazair"],
  "queue_two": ["ryott", "chowkidar", "jazair", "faujdar", "cuirassier"],
  "offer": ["jazair", "chowkidar", "cuirassier", "ryott", "faujdar"]
}`

const wideTOML = `
name = "wide"
rows = 5
cols = 9
pieces_per_side = 8
player_one = "North"
player_two = "South"
`

const brokenJSON = `{"name": "broken", "rows": 12, "cols": 6, "pieces_per_side": 4}`

func writeConfigFile(t *testing.T, dir, filename, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644))
}

func createTestConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic.json", classicJSON)
	writeConfigFile(t, dir, "small.yaml", smallYAML)
	writeConfigFile(t, dir, "wide.toml", wideTOML)
	writeConfigFile(t, dir, "broken.json", brokenJSON)
	writeConfigFile(t, dir, "notes.txt", "not a config")
	return dir
}

func TestNewManager_MissingDir(t *testing.T) {
	_, err := NewManager(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestManager_LoadConfigFormats(t *testing.T) {
	m, err := NewManager(createTestConfigDir(t))
	require.NoError(t, err)

	tests := []struct {
		name    string
		rows    int
		cols    int
		pieces  int
		score   int
		players [2]string
	}{
		{"classic", 6, 6, 4, engine.DefaultStartingScore, [2]string{"Player One", "Player Two"}},
		{"small", 4, 4, 2, 40, [2]string{"Player One", "Player Two"}},
		{"small.yaml", 4, 4, 2, 40, [2]string{"Player One", "Player Two"}},
		{"wide", 5, 9, 8, engine.DefaultStartingScore, [2]string{"North", "South"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := m.LoadConfig(test.name)
			require.NoError(t, err)
			assert.Equal(t, test.rows, cfg.Rows)
			assert.Equal(t, test.cols, cfg.Cols)
			assert.Equal(t, test.pieces, cfg.PiecesPerSide)
			assert.Equal(t, test.score, cfg.StartingScore)
			assert.Equal(t, test.players[0], cfg.PlayerOne)
			assert.Equal(t, test.players[1], cfg.PlayerTwo)
			assert.Len(t, cfg.QueueOne, engine.QueueLength, "queues default when omitted")
			assert.Len(t, cfg.Offer, engine.QueueLength)
		})
	}

	small, err := m.LoadConfig("small")
	require.NoError(t, err)
	assert.Equal(t, int64(11), small.Seed)
}

func TestManager_LoadConfigErrors(t *testing.T) {
	m, err := NewManager(createTestConfigDir(t))
	require.NoError(t, err)

	_, err = m.LoadConfig("missing")
	assert.ErrorIs(t, err, ErrConfigNotFound)

	_, err = m.LoadConfig("missing.yaml")
	assert.ErrorIs(t, err, ErrConfigNotFound)

	_, err = m.LoadConfig("broken")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestManager_LoadConfigCaches(t *testing.T) {
	dir := createTestConfigDir(t)
	m, err := NewManager(dir)
	require.NoError(t, err)

	first, err := m.LoadConfig("small")
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "small.yaml")))
	second, err := m.LoadConfig("small")
	require.NoError(t, err)
	assert.Same(t, first, second)

	fresh, err := NewManager(dir)
	require.NoError(t, err)
	_, err = fresh.LoadConfig("small")
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestManager_ListConfigs(t *testing.T) {
	m, err := NewManager(createTestConfigDir(t))
	require.NoError(t, err)

	configs, err := m.ListConfigs()
	require.NoError(t, err)

	var ids []string
	for _, c := range configs {
		ids = append(ids, c.ConfigID)
	}
	assert.Equal(t, []string{"classic", "small", "wide"}, ids, "invalid and unsupported files are skipped")

	small := configs[1]
	assert.Equal(t, "small.yaml", small.Filename)
	assert.Equal(t, "Tiny board", small.Description)
	assert.Equal(t, 4, small.Rows)
	assert.Equal(t, 2, small.PiecesPerSide)
	assert.Equal(t, 40, small.StartingScore)
}

func TestManager_Default(t *testing.T) {
	t.Run("classic file", func(t *testing.T) {
		m, err := NewManager(createTestConfigDir(t))
		require.NoError(t, err)
		assert.Equal(t, "classic", m.GetDefault().Name)
		assert.Equal(t, "Standard board", m.GetDefault().Description)
	})

	t.Run("first valid file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "b_small.yaml", smallYAML)
		writeConfigFile(t, dir, "a_broken.json", brokenJSON)
		m, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, "small", m.GetDefault().Name)
	})

	t.Run("built in", func(t *testing.T) {
		m, err := NewManager(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, engine.DefaultGameConfig(), m.GetDefault())
	})
}

func TestLoadFile_ShippedConfigs(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "configs", "*"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			cfg, err := LoadFile(file)
			require.NoError(t, err)
			_, err = engine.NewEngine(cfg)
			assert.NoError(t, err)
		})
	}
}

func TestManager_ConcurrentLoad(t *testing.T) {
	m, err := NewManager(createTestConfigDir(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.LoadConfig("wide")
			assert.NoError(t, err)
			_, err = m.ListConfigs()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
