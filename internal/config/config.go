package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// GeocodeKeyEnv overrides geocode.api_key when set
const GeocodeKeyEnv = "NPISEARCH_GEOCODE_KEY"

// Config represents the application configuration
type Config struct {
	Version   int              `toml:"version"`
	API       APISettings      `toml:"api"`
	Proxy     ProxySettings    `toml:"proxy"`
	Geocode   GeocodeSettings  `toml:"geocode"`
	Map       MapSettings      `toml:"map"`
	Log       LogSettings      `toml:"log"`
	Dropdowns []DropdownConfig `toml:"dropdowns"`
}

// APISettings describes how the provider directory is reached
type APISettings struct {
	BaseURL        string `toml:"base_url"`
	Version        string `toml:"version"`
	Limit          int    `toml:"limit"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration
func (a APISettings) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// ProxySettings configures `npisearch proxy`
type ProxySettings struct {
	Addr      string `toml:"addr"`
	Port      int    `toml:"port"`
	Upstream  string `toml:"upstream"`
	StaticDir string `toml:"static_dir"`
}

// ListenAddr joins addr and port
func (p ProxySettings) ListenAddr() string {
	return fmt.Sprintf("%s:%d", p.Addr, p.Port)
}

// GeocodeSettings configures the address geocoder
type GeocodeSettings struct {
	BaseURL     string  `toml:"base_url"`
	APIKey      string  `toml:"api_key"`
	RPS         float64 `toml:"rps"`
	Concurrency int     `toml:"concurrency"`
}

// MapSettings toggles the map view
type MapSettings struct {
	Enabled bool `toml:"enabled"`
}

// LogSettings configures the rotating log file
type LogSettings struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// DropdownConfig declares one typeahead widget on the search page
type DropdownConfig struct {
	Name              string `toml:"name"`
	InputID           string `toml:"input_id"`
	SelectedDisplayID string `toml:"selected_display_id"`
	// Param is the registry criterion the selection fills, e.g. "state"
	// or "taxonomy_description". Empty keeps the widget out of searches.
	Param string `toml:"param"`
	// Builtin names an embedded list ("states" or "specialties").
	// It is used as inline data when SourceURL is empty and as fallback otherwise.
	Builtin       string `toml:"builtin"`
	SourceURL     string `toml:"source_url"`
	DataPath      string `toml:"data_path"`
	KeyID         string `toml:"key_id"`
	KeyTitle      string `toml:"key_title"`
	KeySubtitle   string `toml:"key_subtitle"`
	Placeholder   string `toml:"placeholder"`
	NoResultsText string `toml:"no_results_text"`
	DisplayOrder  string `toml:"display_order"` // "title" or "subtitle_first"
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted at the user config directory
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceAt creates a config service bound to an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/npisearch/config.toml or its platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "npisearch", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, returning defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		cfg.applyEnv()
		return cfg, nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path.
// Values absent from the file keep their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	defaultDropdowns := cfg.Dropdowns
	cfg.Dropdowns = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(cfg.Dropdowns) == 0 {
		cfg.Dropdowns = defaultDropdowns
	}

	cfg.applyEnv()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() {
	if key := os.Getenv(GeocodeKeyEnv); key != "" {
		c.Geocode.APIKey = key
	}
}

// Dropdown returns the dropdown declaration with the given name
func (c *Config) Dropdown(name string) (DropdownConfig, bool) {
	for _, d := range c.Dropdowns {
		if d.Name == name {
			return d, true
		}
	}
	return DropdownConfig{}, false
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			BaseURL:        "http://localhost:3001",
			Version:        "2.1",
			Limit:          99,
			TimeoutSeconds: 15,
		},
		Proxy: ProxySettings{
			Addr:      "127.0.0.1",
			Port:      3001,
			Upstream:  "https://npiregistry.cms.hhs.gov",
			StaticDir: ".",
		},
		Geocode: GeocodeSettings{
			BaseURL:     "https://maps.googleapis.com/maps/api/geocode/json",
			RPS:         10,
			Concurrency: 4,
		},
		Log: LogSettings{
			File:       filepath.Join(os.TempDir(), "npisearch.log"),
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
		Dropdowns: []DropdownConfig{
			{
				Name:              "state",
				InputID:           "state",
				SelectedDisplayID: "selected-state",
				Param:             "state",
				Builtin:           "states",
				KeyID:             "id",
				KeyTitle:          "abbreviation",
				KeySubtitle:       "title",
				Placeholder:       "US State",
				NoResultsText:     "No matching states found",
				DisplayOrder:      "title",
			},
			{
				Name:              "specialty",
				InputID:           "specialty",
				SelectedDisplayID: "selected-specialty",
				Param:             "taxonomy_description",
				Builtin:           "specialties",
				DataPath:          "specialties",
				KeyID:             "id",
				KeyTitle:          "specialty",
				KeySubtitle:       "classification",
				Placeholder:       "Medical specialties",
				NoResultsText:     "No matching specialties found",
				DisplayOrder:      "subtitle_first",
			},
		},
	}
}
