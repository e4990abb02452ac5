package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Export   ExportConfig   `mapstructure:"export"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	UI       UIConfig       `mapstructure:"ui"`
	Practice PracticeConfig `mapstructure:"practice"`
	Log      LogConfig      `mapstructure:"log"`
}

// ExportConfig says where generated PDFs go.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// ArchiveConfig holds sqlite settings for the submission archive.
type ArchiveConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Locale         string `mapstructure:"locale"`
}

// PracticeConfig is printed in the PDF header.
type PracticeConfig struct {
	Name       string `mapstructure:"name"`
	TaxYearEnd string `mapstructure:"tax_year_end"`
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

const envPrefix = "TAXSHEET"

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

func dataDir() string {
	return filepath.Join(home(), ".local", "share", "taxsheet")
}

// Path returns the config file location, honouring TAXSHEET_CONFIG.
func Path() string {
	if p := os.Getenv(envPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(home(), ".config", "taxsheet", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("export.dir", filepath.Join(home(), "Documents", "taxsheet"))
	v.SetDefault("archive.enabled", true)
	v.SetDefault("archive.path", filepath.Join(dataDir(), "taxsheet.db"))
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.locale", "en-AU")
	v.SetDefault("practice.name", "")
	v.SetDefault("practice.tax_year_end", "30 June 2022")
	v.SetDefault("log.path", filepath.Join(dataDir(), "taxsheet.log"))
	v.SetDefault("log.level", "info")
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Load reads configuration from file and env. Env var overrides use prefix TAXSHEET_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config %s: %w", Path(), err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes cfg to Path(), creating the config directory if needed.
func Save(cfg Config) (string, error) {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("export.dir", cfg.Export.Dir)
	v.Set("archive.enabled", cfg.Archive.Enabled)
	v.Set("archive.path", cfg.Archive.Path)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("practice.name", cfg.Practice.Name)
	v.Set("practice.tax_year_end", cfg.Practice.TaxYearEnd)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
