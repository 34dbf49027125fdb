package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Display struct {
	ShowPID  bool `mapstructure:"show_pid"`
	ShowPath bool `mapstructure:"show_path"`
	ShowArgs bool `mapstructure:"show_args"`
	Sort     bool `mapstructure:"sort"`
}

type Config struct {
	Display        Display `mapstructure:"display"`
	Color          string  `mapstructure:"color"`
	Source         string  `mapstructure:"source"`
	Workers        int     `mapstructure:"workers"`
	RefreshSeconds int     `mapstructure:"refresh_seconds"`
	LogLevel       string  `mapstructure:"log_level"`
	LogFormat      string  `mapstructure:"log_format"`
}

func Default() *Config {
	return &Config{
		Color:          ColorAuto,
		Source:         "auto",
		Workers:        8,
		RefreshSeconds: 2,
		LogLevel:       "warn",
		LogFormat:      "text",
	}
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"pid":        "display.show_pid",
	"path":       "display.show_path",
	"args":       "display.show_args",
	"sort":       "display.sort",
	"color":      "color",
	"source":     "source",
	"workers":    "workers",
	"refresh":    "refresh_seconds",
	"log-level":  "log_level",
	"log-format": "log_format",
}

// Load layers defaults, the config file, PIDTREE_* environment variables
// and any flags in flags that were set on the command line. A missing
// default config file is not an error; a missing explicit one is.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pidtree")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PIDTREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("display.show_pid", d.Display.ShowPID)
	v.SetDefault("display.show_path", d.Display.ShowPath)
	v.SetDefault("display.show_args", d.Display.ShowArgs)
	v.SetDefault("display.sort", d.Display.Sort)
	v.SetDefault("color", d.Color)
	v.SetDefault("source", d.Source)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("refresh_seconds", d.RefreshSeconds)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
}

// ColorEnabled resolves the color mode; auto follows whether stdout is a terminal.
func (c *Config) ColorEnabled(isTerminal bool) bool {
	switch strings.ToLower(c.Color) {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal && os.Getenv("NO_COLOR") == ""
	}
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "pidtree")
}
