// Summary: Application configuration model and loader; merges defaults, an
// optional config file under $XDG_CONFIG_HOME/emmet-ls and EMMET_LS_* variables.
package appconfig

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. EMMET_LS_INDENT.
const EnvPrefix = "EMMET_LS"

// App holds user-configurable settings.
type App struct {
	LogPreviewLimit     int      `mapstructure:"log_preview_limit"`
	TriggerCharacters   []string `mapstructure:"trigger_characters"`
	ExcludeLanguages    []string `mapstructure:"exclude_languages"`
	StylesheetLanguages []string `mapstructure:"stylesheet_languages"`
	JSXLanguages        []string `mapstructure:"jsx_languages"`
	Indent              string   `mapstructure:"indent"`
	ProfileCacheSize    int      `mapstructure:"profile_cache_size"`
}

// Options select where configuration is read from.
type Options struct {
	// ConfigFile overrides the XDG lookup; it must exist when set.
	ConfigFile string
	// EnvFile is a dotenv file loaded into the environment before overrides
	// are read.
	EnvFile string
}

// Constructor: defaults for App (kept first among functions)
func newDefaultConfig() App {
	return App{
		LogPreviewLimit:     100,
		StylesheetLanguages: []string{"css", "scss"},
		JSXLanguages:        []string{"typescriptreact", "javascriptreact", "typescript.tsx", "typescript.jsx"},
		Indent:              "\t",
		ProfileCacheSize:    64,
	}
}

// Load reads the configuration and falls back to defaults on any error,
// reporting it to logger when one is given.
func Load(logger *log.Logger, opts Options) App {
	cfg, err := Read(opts)
	if err != nil {
		if logger != nil {
			logger.Printf("config: %v", err)
		}
		return newDefaultConfig()
	}
	return cfg
}

// Read layers defaults, the config file and the environment.
func Read(opts Options) (App, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return App{}, fmt.Errorf("load env file %s: %w", opts.EnvFile, err)
		}
	}
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnv(v); err != nil {
		return App{}, err
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return App{}, err
		}
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return App{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg App
	if err := v.Unmarshal(&cfg); err != nil {
		return App{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := newDefaultConfig()
	v.SetDefault("log_preview_limit", d.LogPreviewLimit)
	v.SetDefault("trigger_characters", d.TriggerCharacters)
	v.SetDefault("exclude_languages", d.ExcludeLanguages)
	v.SetDefault("stylesheet_languages", d.StylesheetLanguages)
	v.SetDefault("jsx_languages", d.JSXLanguages)
	v.SetDefault("indent", d.Indent)
	v.SetDefault("profile_cache_size", d.ProfileCacheSize)
}

func bindEnv(v *viper.Viper) error {
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

// configKeys lists every key that can be overridden from the environment.
var configKeys = []string{
	"log_preview_limit",
	"trigger_characters",
	"exclude_languages",
	"stylesheet_languages",
	"jsx_languages",
	"indent",
	"profile_cache_size",
}

// normalize trims list entries and repairs values that would break the server.
func (a *App) normalize() {
	d := newDefaultConfig()
	a.TriggerCharacters = cleanList(a.TriggerCharacters)
	a.ExcludeLanguages = cleanList(a.ExcludeLanguages)
	a.StylesheetLanguages = cleanList(a.StylesheetLanguages)
	a.JSXLanguages = cleanList(a.JSXLanguages)
	if len(a.StylesheetLanguages) == 0 {
		a.StylesheetLanguages = d.StylesheetLanguages
	}
	if len(a.JSXLanguages) == 0 {
		a.JSXLanguages = d.JSXLanguages
	}
	if a.Indent == "" {
		a.Indent = d.Indent
	}
	if a.ProfileCacheSize <= 0 {
		a.ProfileCacheSize = d.ProfileCacheSize
	}
	if a.LogPreviewLimit < 0 {
		a.LogPreviewLimit = 0
	}
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func configDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "emmet-ls"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot find user home directory: %w", err)
	}
	return filepath.Join(home, ".config", "emmet-ls"), nil
}
