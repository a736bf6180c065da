package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/wricardo/dastan/game/engine"
	"github.com/wricardo/dastan/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Extensions lists the file types the manager reads, in lookup order
var Extensions = []string{".json", ".yaml", ".yml", ".toml"}

// DefaultConfigName is used as the default when such a file exists
const DefaultConfigName = "classic"

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if info, err := os.Stat(configDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
	}

	m.loadDefaultConfig()
	return m, nil
}

// LoadFile reads, defaults and validates one configuration file
func LoadFile(path string) (*engine.GameConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config engine.GameConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	config.ApplyDefaults()

	if err := engine.ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, filepath.Base(path), err)
	}
	return &config, nil
}

// LoadConfig loads a configuration by name. The name may carry an extension;
// without one every supported extension is tried.
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	id := configID(name)

	m.mu.RLock()
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[id]; exists {
		return config, nil
	}

	path, err := m.findFile(name)
	if err != nil {
		return nil, err
	}

	config, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	m.configs[id] = config
	log.Debug().Str("config", id).Str("path", path).Msg("config loaded")
	return config, nil
}

func (m *Manager) findFile(name string) (string, error) {
	if isSupported(name) {
		path := filepath.Join(m.configDir, name)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, name)
		}
		return path, nil
	}
	for _, ext := range Extensions {
		path := filepath.Join(m.configDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrConfigNotFound, name)
}

// ListConfigs returns information about all valid configurations in the
// directory, sorted by id. Invalid files are skipped.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	files, err := m.Files()
	if err != nil {
		return nil, err
	}

	var configs []*service.ConfigInfo
	seen := make(map[string]bool)

	for _, file := range files {
		filename := filepath.Base(file)
		id := configID(filename)
		if seen[id] {
			continue
		}

		config, err := m.LoadConfig(filename)
		if err != nil {
			log.Warn().Err(err).Str("file", filename).Msg("skipping config")
			continue
		}
		seen[id] = true

		configs = append(configs, &service.ConfigInfo{
			Filename:      filename,
			ConfigID:      id,
			Name:          config.Name,
			Description:   config.Description,
			Rows:          config.Rows,
			Cols:          config.Cols,
			PiecesPerSide: config.PiecesPerSide,
			StartingScore: config.StartingScore,
		})
	}

	return configs, nil
}

// Files returns the paths of every supported file in the directory, sorted
func (m *Manager) Files() ([]string, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isSupported(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(m.configDir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// loadDefaultConfig prefers classic, then the first valid file, then the
// built-in game.
func (m *Manager) loadDefaultConfig() {
	config, err := m.LoadConfig(DefaultConfigName)
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			config = engine.DefaultGameConfig()
		} else if config, err = m.LoadConfig(configs[0].Filename); err != nil {
			config = engine.DefaultGameConfig()
		}
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

func isSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func configID(name string) string {
	if isSupported(name) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
