// Package project loads deob.toml, the optional per-directory settings file.
package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	ErrBadPoolSize = errors.New("[normalize].pool_size must not be negative")
	ErrBadPrefix   = errors.New("[normalize].prefix is not an identifier prefix")
	ErrBadIndent   = errors.New("[format].indent must be between 0 and 8")
)

type NormalizeConfig struct {
	Prefix   string `toml:"prefix"`
	PoolSize int    `toml:"pool_size"`
	// Wordlist replaces the prefix/pool_size sequence when set. Relative
	// paths are resolved against the manifest directory.
	Wordlist string `toml:"wordlist"`
	Cache    bool   `toml:"cache"`
}

type FormatConfig struct {
	Indent int  `toml:"indent"`
	Tabs   bool `toml:"tabs"`
}

type QueryConfig struct {
	MaxResults int `toml:"max_results"`
}

// Config is the decoded manifest. Zero-valued sections keep their defaults.
type Config struct {
	Normalize NormalizeConfig `toml:"normalize"`
	Format    FormatConfig    `toml:"format"`
	Query     QueryConfig     `toml:"query"`
}

// Manifest is a loaded deob.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the settings used when no manifest exists.
func Default() Config {
	return Config{
		Normalize: NormalizeConfig{Prefix: "_t", PoolSize: 100000, Cache: true},
		Format:    FormatConfig{Indent: 2},
	}
}

// Load finds deob.toml above startDir and decodes it over Default. ok is
// false when there is no manifest.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadFile(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadFile decodes the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	root := filepath.Dir(path)
	if w := strings.TrimSpace(cfg.Normalize.Wordlist); w != "" && !filepath.IsAbs(w) {
		cfg.Normalize.Wordlist = filepath.Join(root, filepath.FromSlash(w))
	}
	return &Manifest{Path: path, Root: root, Config: cfg}, nil
}

func (c *Config) validate() error {
	if c.Normalize.PoolSize < 0 {
		return ErrBadPoolSize
	}
	if p := c.Normalize.Prefix; p == "" || strings.ContainsAny(p, " \t.-") {
		return ErrBadPrefix
	}
	if c.Format.Indent < 0 || c.Format.Indent > 8 {
		return ErrBadIndent
	}
	if c.Query.MaxResults < 0 {
		c.Query.MaxResults = 0
	}
	return nil
}
