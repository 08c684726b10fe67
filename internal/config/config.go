package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the trove configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Search  SearchConfig  `yaml:"search"`
	Picker  PickerConfig  `yaml:"picker"`
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // State database path (empty = default)
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	MaxResults    int    `yaml:"max_results"`    // Default result limit (0 = unlimited)
	DefaultSort   string `yaml:"default_sort"`   // relevance, newest, oldest
	DefaultWindow string `yaml:"default_window"` // all, 24h, 7d, 30d
	RecentQueries int    `yaml:"recent_queries"` // Recent-search list cap shown in the picker
}

// TabDef defines one picker tab.
type TabDef struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Type  string `yaml:"type"` // Entity kind filter (empty = all kinds)
}

// PickerConfig holds interactive picker settings.
type PickerConfig struct {
	PageSize   int      `yaml:"page_size"`   // Results requested per refresh
	DebounceMs int      `yaml:"debounce_ms"` // Keystroke debounce before re-searching
	Tabs       []TabDef `yaml:"tabs"`        // Tab layout (empty = default tabs)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath: "", // Use default from paths
		},
		Search: SearchConfig{
			MaxResults:    50,
			DefaultSort:   "relevance",
			DefaultWindow: "all",
			RecentQueries: 10,
		},
		Picker: PickerConfig{
			PageSize:   100,
			DebounceMs: 100,
			Tabs: []TabDef{
				{ID: "all", Label: "All", Type: ""},
				{ID: "threads", Label: "Threads", Type: "thread"},
				{ID: "spaces", Label: "Spaces", Type: "space"},
				{ID: "files", Label: "Files", Type: "file"},
			},
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	return LoadFromFile(DefaultPaths().ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveToFile(DefaultPaths().ConfigFile())
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TROVE_DB_PATH"); v != "" {
		c.Storage.DBPath = v
	}
	if v := os.Getenv("TROVE_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Search.MaxResults = n
		}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !isValidSort(c.Search.DefaultSort) {
		return fmt.Errorf("invalid search.default_sort: %q (must be relevance, newest, or oldest)", c.Search.DefaultSort)
	}
	if !isValidWindow(c.Search.DefaultWindow) {
		return fmt.Errorf("invalid search.default_window: %q (must be all, 24h, 7d, or 30d)", c.Search.DefaultWindow)
	}
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("invalid search.max_results: %d (must be >= 0)", c.Search.MaxResults)
	}
	if c.Search.RecentQueries < 0 {
		return fmt.Errorf("invalid search.recent_queries: %d (must be >= 0)", c.Search.RecentQueries)
	}
	if c.Picker.PageSize <= 0 {
		return fmt.Errorf("invalid picker.page_size: %d (must be > 0)", c.Picker.PageSize)
	}
	if c.Picker.DebounceMs < 0 {
		return fmt.Errorf("invalid picker.debounce_ms: %d (must be >= 0)", c.Picker.DebounceMs)
	}
	return nil
}

// DatabasePath resolves the configured database path, falling back to
// the default data directory.
func (c *Config) DatabasePath() string {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath
	}
	return DefaultPaths().DBFile()
}

func isValidSort(s string) bool {
	switch s {
	case "relevance", "newest", "oldest":
		return true
	}
	return false
}

func isValidWindow(w string) bool {
	switch w {
	case "all", "24h", "7d", "30d":
		return true
	}
	return false
}
