// Package config reads the plugin's ambient options from the environment.
//
// The autosave interval itself lives in autosaver.json (see package
// setting); these options only tune diagnostics and are read once at init.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every recognised environment variable.
const EnvPrefix = "AUTOSAVER_"

// Options are the ambient plugin options.
type Options struct {
	// LogLevel is trace, debug, info, warn, error or off.
	LogLevel string `koanf:"log_level"`
	// LogFile, when set, sends logs to this file. Relative paths are
	// resolved against the plugin directory.
	LogFile string `koanf:"log_file"`
}

// Defaults returns the options used when nothing is set.
func Defaults() Options {
	return Options{LogLevel: "info"}
}

// Load reads AUTOSAVER_* variables over the defaults, e.g.
// AUTOSAVER_LOG_LEVEL=debug -> LogLevel.
func Load() (Options, error) {
	k := koanf.New(".")

	provider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(provider, nil); err != nil {
		return Defaults(), fmt.Errorf("load env: %w", err)
	}

	opts := Defaults()
	if err := k.Unmarshal("", &opts); err != nil {
		return Defaults(), fmt.Errorf("unmarshal options: %w", err)
	}
	if opts.LogLevel == "" {
		opts.LogLevel = Defaults().LogLevel
	}
	return opts, nil
}

// LogPath returns LogFile resolved against dir, or "" when no file is set.
func (o Options) LogPath(dir string) string {
	if o.LogFile == "" {
		return ""
	}
	if filepath.IsAbs(o.LogFile) {
		return o.LogFile
	}
	return filepath.Join(dir, o.LogFile)
}
