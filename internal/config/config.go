package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// AutoExpandFiles expands every file diff on startup and refresh.
	AutoExpandFiles bool `mapstructure:"auto_expand_files"`
	// AutoExpandHunks expands every hunk on startup and refresh.
	AutoExpandHunks bool `mapstructure:"auto_expand_hunks"`
	// LookaheadLines is the number of context lines kept visible above and
	// below the cursor when scrolling.
	LookaheadLines int `mapstructure:"lookahead_lines"`
	// TruncateLines cuts lines at the terminal width instead of wrapping.
	TruncateLines bool `mapstructure:"truncate_lines"`
	// SyntaxHighlight enables per-language highlighting of diff lines.
	SyntaxHighlight bool `mapstructure:"syntax_highlight"`
	// WatchFilesystem refreshes automatically when the repository changes.
	WatchFilesystem bool `mapstructure:"watch_filesystem"`
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// Editor to use for commit messages (falls back to $EDITOR).
	Editor string `mapstructure:"editor"`
}

// Load reads configuration from ~/.config/twig/config.yaml (or TOML/JSON).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configDir := configDirectory()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("TWIG")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is fine — use defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("auto_expand_files", false)
	v.SetDefault("auto_expand_hunks", true)
	v.SetDefault("lookahead_lines", 5)
	v.SetDefault("truncate_lines", true)
	v.SetDefault("syntax_highlight", false)
	v.SetDefault("watch_filesystem", true)
	v.SetDefault("theme", "dark")
	v.SetDefault("editor", "")
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "twig")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "twig")
}
