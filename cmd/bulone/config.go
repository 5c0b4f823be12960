package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.eggybyte.com/bulone/configx"
	"go.eggybyte.com/bulone/core/errors"
	"go.eggybyte.com/bulone/core/log"
	"go.eggybyte.com/bulone/logx"
)

// envPrefix prefixes every environment variable and flattened YAML key.
const envPrefix = "BULONE_"

// Config holds CLI defaults. YAML keys are the lower-cased variable names
// without the prefix, e.g. template_dir for BULONE_TEMPLATE_DIR.
type Config struct {
	TemplateDir string `env:"BULONE_TEMPLATE_DIR"`
	Extension   string `env:"BULONE_EXTENSION" default:"swift" validate:"required,alphanum"`
	DateLayout  string `env:"BULONE_DATE_LAYOUT" default:"1/2/06" validate:"required"`
	Strict      bool   `env:"BULONE_STRICT" default:"false"`
	LogLevel    string `env:"BULONE_LOG_LEVEL" default:"warn" validate:"oneof=debug info warn error"`
	LogFormat   string `env:"BULONE_LOG_FORMAT" default:"logfmt" validate:"oneof=logfmt json"`
	PrefsFile   string `env:"BULONE_PREFS_FILE"`
}

// defaultConfigPath returns <user config dir>/bulone/config.yaml, or "" when
// the user config directory is unknown.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bulone", "config.yaml")
}

// loadConfig merges the YAML file and BULONE_* environment variables, later
// sources winning. An explicit path must exist; the default path is optional.
func loadConfig(ctx context.Context, path string) (Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	optional := path == ""
	if optional {
		path = defaultConfigPath()
	}

	var sources []configx.Source
	if path != "" {
		sources = append(sources, configx.NewFileSource(path, configx.FileOptions{KeyPrefix: envPrefix, Optional: optional}))
	}
	sources = append(sources, configx.NewEnvSource(configx.EnvOptions{Prefix: envPrefix}))

	mgr, err := configx.NewManager(ctx, configx.Options{Sources: sources})
	if err != nil {
		return Config{}, errors.Wrapf(errors.CodeInvalidArgument, "config.Load", err, "loading configuration")
	}

	var c Config
	if err := mgr.Bind(&c); err != nil {
		return Config{}, errors.Wrapf(errors.CodeInvalidArgument, "config.Bind", err, "invalid configuration")
	}
	return c, nil
}

// newLogger builds the diagnostic logger. Verbose mode forces debug level.
func newLogger(c Config, verbose bool, w io.Writer) log.Logger {
	level, err := logx.ParseLevel(c.LogLevel)
	if err != nil {
		level, _ = logx.ParseLevel("warn")
	}
	if verbose {
		level, _ = logx.ParseLevel("debug")
	}
	return logx.New(
		logx.WithFormat(logx.Format(c.LogFormat)),
		logx.WithLevel(level),
		logx.WithWriter(w),
	)
}
