/*
Copyright © 2025 Meera Pillai <meera@renokit.dev>
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/renokit/reno/models"
)

// Config represents the structure of the config.json file
// Example at project root: config.json
//
//	{
//	  "api_base": "https://reno.example.com",
//	  "room_aliases": {"K": "Kitchen", ...}
//	}
//
// Add fields here as config grows.
type Config struct {
	ApiBase       string            `json:"api_base"`
	ApiUser       string            `json:"api_user"`
	ApiPassword   string            `json:"api_password"`
	Currency      string            `json:"currency"`
	RoomAliases   map[string]string `json:"room_aliases"`
	SelectionsDir string            `json:"selections_dir"`
	CacheDb       string            `json:"cache_db"`
	MqttBroker    string            `json:"mqtt_broker"`
}

// Cfg holds the loaded configuration and is available to all commands.
var Cfg *Config

// cfgFile is set from -c/--config flag.
var cfgFile string

// noColor toggles ANSI color output off when set via --no-color flag.
var noColor bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "reno",
	Short: "Reno is a command line tool for managing renovation project materials",
	Long:  `Reno is a command line tool for managing renovation project materials.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Apply color preference as early as possible, but only disable if the flag is set
		if noColor {
			color.NoColor = true
		}

		// Load config only once; subsequent subcommands in the chain need not reload
		if Cfg != nil {
			applyDisplayConfig()
			return nil
		}
		// Determine path: explicit flag takes precedence; else try merge from standard locations
		if cfgFile != "" {
			cfg, err := LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config from %s: %w", cfgFile, err)
			}
			Cfg = cfg
			applyDisplayConfig()

			return nil
		}

		cfg, err := LoadMergedConfig()
		if err != nil {
			return fmt.Errorf("unable to load config: %w", err)
		}
		// Config is optional; only set if any file existed
		if cfg != nil {
			Cfg = cfg
		}
		applyDisplayConfig()

		return nil
	},
}

// applyDisplayConfig pushes display settings into the models package.
func applyDisplayConfig() {
	if Cfg != nil && Cfg.Currency != "" {
		models.CurrencySymbol = Cfg.Currency
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// LoadConfig reads and parses JSON config from the given path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("json config parsing error: %w", err)
	}

	return &c, nil
}

func exists(path string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return !errors.Is(err, fs.ErrNotExist)
	}

	return !info.IsDir()
}

//nolint:gochecknoinits
func init() {
	// Global config flag for all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (config.json)")
	// Global color toggle
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color output")
}

// LoadMergedConfig attempts to load and merge configs from standard locations when no explicit --config is provided.
// Precedence (later overrides earlier):
//  1. $HOME/.config/reno/config.json
//  2. $XDG_CONFIG_HOME/reno/config.json
//  3. ./config.json (current working directory)
//
// If none exist, returns (nil, nil).
func LoadMergedConfig() (*Config, error) {
	paths := discoverConfigPaths()
	if len(paths) == 0 {
		return nil, nil
	}

	merged := &Config{}

	for _, p := range paths {
		c, err := LoadConfig(p)
		if err != nil {
			return nil, fmt.Errorf("failed loading %s: %w", p, err)
		}

		mergeInto(merged, c)
	}

	return merged, nil
}

// discoverConfigPaths returns existing config paths in merge order.
func discoverConfigPaths() []string {
	var out []string
	// 1) HOME
	if home, _ := os.UserHomeDir(); home != "" {
		p := filepath.Join(home, ".config", "reno", "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}
	// 2) XDG
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		p := filepath.Join(xdg, "reno", "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}
	// 3) CWD
	if cwd, _ := os.Getwd(); cwd != "" {
		p := filepath.Join(cwd, "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}

	return out
}

// mergeInto copies non-zero values and maps from src into dst.
// Maps are merged by keys; src keys override dst.
func mergeInto(dst, src *Config) {
	if src == nil || dst == nil {
		return
	}

	if src.ApiBase != "" {
		dst.ApiBase = src.ApiBase
	}

	if src.ApiUser != "" {
		dst.ApiUser = src.ApiUser
	}

	if src.ApiPassword != "" {
		dst.ApiPassword = src.ApiPassword
	}

	if src.Currency != "" {
		dst.Currency = src.Currency
	}

	if src.SelectionsDir != "" {
		dst.SelectionsDir = src.SelectionsDir
	}

	if src.CacheDb != "" {
		dst.CacheDb = src.CacheDb
	}

	if src.MqttBroker != "" {
		dst.MqttBroker = src.MqttBroker
	}
	// maps
	if src.RoomAliases != nil {
		if dst.RoomAliases == nil {
			dst.RoomAliases = map[string]string{}
		}

		for k, v := range src.RoomAliases {
			dst.RoomAliases[k] = v
		}
	}
}
