package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"setup-checklist/internal/store"

	"github.com/spf13/viper"
)

// Config is everything the checklist binary reads from config.yaml and CHECKLIST_* env.
// CLI flags are applied on top by the caller.
type Config struct {
	Backend string
	Format  string

	Provider ProviderConfig
	Log      LogConfig
	UI       UIConfig

	// File is the config file that was read, or "" when defaults and env were enough.
	File string
}

type ProviderConfig struct {
	Source            string
	Token             string
	RequestsPerSecond float64
}

type LogConfig struct {
	Level string
	File  string
}

type UIConfig struct {
	Title       string
	Celebration string
	// BaseURL resolves relative item hrefs before they are opened.
	BaseURL string
	// Opener is a command line used to open links; "{url}" marks the link position.
	Opener string
}

const envPrefix = "CHECKLIST"

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", "sqlite")
	v.SetDefault("format", "json")

	v.SetDefault("provider.source", "")
	v.SetDefault("provider.token", "")
	v.SetDefault("provider.requests_per_second", 2.0)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")

	v.SetDefault("ui.title", "Setup checklist")
	v.SetDefault("ui.celebration", "You've finished every setup step. **Nice work!** :tada:")
	v.SetDefault("ui.base_url", "")
	v.SetDefault("ui.opener", "")
}

// Load reads config.yaml from dir (when set), $XDG_CONFIG_HOME/checklist, then ".".
// A missing file is not an error.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range searchPaths(dir) {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Backend: v.GetString("backend"),
		Format:  v.GetString("format"),
		Provider: ProviderConfig{
			Source:            v.GetString("provider.source"),
			Token:             v.GetString("provider.token"),
			RequestsPerSecond: v.GetFloat64("provider.requests_per_second"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
		UI: UIConfig{
			Title:       v.GetString("ui.title"),
			Celebration: v.GetString("ui.celebration"),
			BaseURL:     v.GetString("ui.base_url"),
			Opener:      v.GetString("ui.opener"),
		},
		File: v.ConfigFileUsed(),
	}

	// Short env names.
	if s := strings.TrimSpace(os.Getenv(envPrefix + "_SOURCE")); s != "" {
		cfg.Provider.Source = s
	}
	if s := strings.TrimSpace(os.Getenv(envPrefix + "_TOKEN")); s != "" {
		cfg.Provider.Token = s
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// searchPaths lists config dirs in priority order: --dir, the state dir, the XDG dir, ".".
func searchPaths(dir string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(p string) {
		p = strings.TrimSpace(p)
		if p == "" {
			return
		}
		p = filepath.Clean(p)
		if seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}
	add(dir)
	if d, err := store.DefaultDir(); err == nil {
		add(d)
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		add(filepath.Join(xdg, "checklist"))
	}
	add(".")
	return out
}

func (c *Config) Validate() error {
	switch c.Backend {
	case "sqlite", "json", "none":
	default:
		return fmt.Errorf("invalid backend %q (want sqlite, json or none)", c.Backend)
	}
	if c.Provider.RequestsPerSecond < 0 {
		return fmt.Errorf("provider.requests_per_second must be >= 0")
	}
	return nil
}
