package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/panelcut/panelcut/internal/model"
)

// AppConfig holds application-wide preferences and the default sheet geometry
// applied to new jobs.
type AppConfig struct {
	DefaultSheetWidth  float64 `json:"default_sheet_width"`
	DefaultSheetHeight float64 `json:"default_sheet_height"`
	DefaultTrimMargin  float64 `json:"default_trim_margin"`
	DefaultKerf        float64 `json:"default_kerf"`

	ExportDir  string   `json:"export_dir"`
	RecentJobs []string `json:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig matching model.DefaultGlobalConfig.
func DefaultAppConfig() AppConfig {
	defaults := model.DefaultGlobalConfig()
	return AppConfig{
		DefaultSheetWidth:  defaults.SheetWidth,
		DefaultSheetHeight: defaults.SheetHeight,
		DefaultTrimMargin:  defaults.TrimMargin,
		DefaultKerf:        defaults.Kerf,
		ExportDir:          "",
		RecentJobs:         []string{},
	}
}

// GlobalConfig converts the saved defaults into a planning config.
func (c AppConfig) GlobalConfig() model.GlobalConfig {
	return model.GlobalConfig{
		SheetWidth:  c.DefaultSheetWidth,
		SheetHeight: c.DefaultSheetHeight,
		TrimMargin:  c.DefaultTrimMargin,
		Kerf:        c.DefaultKerf,
	}
}

// AddRecentJob prepends a job path to the recent list, de-duplicating and
// keeping at most 10 entries.
func (c *AppConfig) AddRecentJob(path string) {
	recents := []string{path}
	for _, r := range c.RecentJobs {
		if r != path {
			recents = append(recents, r)
		}
	}
	if len(recents) > 10 {
		recents = recents[:10]
	}
	c.RecentJobs = recents
}

// DefaultConfigDir returns the configuration directory, ~/.panelcut on all
// platforms.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".panelcut")
}

// DefaultConfigPath returns the default path of the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists the config to the given path as indented JSON.
func SaveAppConfig(path string, config AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads the config from the given path. A missing file yields
// the defaults with no error.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAppConfig(), nil
		}
		return AppConfig{}, err
	}
	var config AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return AppConfig{}, err
	}
	if config.RecentJobs == nil {
		config.RecentJobs = []string{}
	}
	return config, nil
}
