package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"

	"protogen/internal/header"
)

// Verbose enables debug output when true
var Verbose bool

// Debugf logs a debug message; it is only shown when Verbose is set or the
// log level is raised through the environment.
func Debugf(format string, args ...any) {
	log.Debug().Msgf(format, args...)
}

const (
	// FileName is the config file looked up in the project root.
	FileName = "protogen.toml"

	DefaultInput  = "alti-protocol/protocol.json"
	DefaultOutput = "src/include/bluetooth_protocol.h"
)

// ErrConfig marks a config file that could not be loaded.
var ErrConfig = errors.New("config error")

// Config holds the paths and header layout for one run.
type Config struct {
	Root   string
	Input  string
	Output string
	Layout header.Layout
}

// fileConfig is the protogen.toml key mapping.
type fileConfig struct {
	Input      string `toml:"input"`
	Output     string `toml:"output"`
	Namespace  string `toml:"namespace"`
	Include    string `toml:"include"`
	CharPrefix string `toml:"char_prefix"`
	CharSuffix string `toml:"char_suffix"`
}

// Default returns the config for the firmware repo's standard layout.
func Default() Config {
	return Config{
		Root:   ".",
		Input:  DefaultInput,
		Output: DefaultOutput,
		Layout: header.DefaultLayout(),
	}
}

// Load builds the config for root. When path is empty, root/protogen.toml is
// used if present; an explicit path must exist.
func Load(root, path string) (Config, error) {
	cfg := Default()
	if root != "" {
		cfg.Root = root
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.Root, FileName)
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	switch {
	case err == nil:
		Debugf("loaded config %s", path)
	case !explicit && errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	default:
		return Config{}, fmt.Errorf("%w: load %s: %w", ErrConfig, path, err)
	}

	if meta.IsDefined("input") {
		cfg.Input = strings.TrimSpace(raw.Input)
		cfg.Layout.Source = cfg.Input
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.TrimSpace(raw.Output)
	}
	if meta.IsDefined("namespace") {
		cfg.Layout.Namespace = strings.TrimSpace(raw.Namespace)
	}
	if meta.IsDefined("include") {
		cfg.Layout.Include = strings.TrimSpace(raw.Include)
	}
	if meta.IsDefined("char_prefix") {
		cfg.Layout.CharPrefix = raw.CharPrefix
	}
	if meta.IsDefined("char_suffix") {
		cfg.Layout.CharSuffix = raw.CharSuffix
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: %s: unknown key %q", ErrConfig, path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	return cfg, nil
}

// Validate checks that the layout can produce a header.
func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is required")
	}
	if c.Output == "" {
		return errors.New("output is required")
	}
	if c.Layout.Namespace == "" {
		return errors.New("namespace is required")
	}
	if c.Layout.Include == "" {
		return errors.New("include is required")
	}
	return nil
}

// WithInput overrides the input path, keeping the provenance comment in sync.
func (c Config) WithInput(input string) Config {
	if input != "" {
		c.Input = input
		c.Layout.Source = input
	}
	return c
}

// WithOutput overrides the output path.
func (c Config) WithOutput(output string) Config {
	if output != "" {
		c.Output = output
	}
	return c
}

// InputPath is the input resolved against Root.
func (c Config) InputPath() string {
	return c.resolve(c.Input)
}

// OutputPath is the output resolved against Root.
func (c Config) OutputPath() string {
	return c.resolve(c.Output)
}

func (c Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}
