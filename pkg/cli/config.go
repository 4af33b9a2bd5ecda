// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/bingdl/pkg/cmdline"
	"golang.org/x/text/cases"
)

const ConfigName = "bingdl.toml"

// Config holds option defaults read from bingdl.toml.
type Config struct {
	Destination string   `toml:"destination,omitempty"`
	Locales     []string `toml:"locales,omitempty"`
	Format      string   `toml:"format,omitempty"`
	Verbose     bool     `toml:"verbose,omitempty"`
}

type ConfigLocation struct {
	Path   string
	Dir    string
	Config *Config
}

// LoadConfig decodes the nearest bingdl.toml in startDir or one of its
// parents. It returns nil when there is none.
func LoadConfig(startDir string) (*ConfigLocation, error) {
	path, err := FindConfig(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &ConfigLocation{Path: path, Dir: filepath.Dir(path), Config: &cfg}, nil
}

func FindConfig(startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		path := filepath.Join(dir, ConfigName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// Apply copies the values set in the config onto opts. A relative
// destination is resolved against the config file's folder.
func (l *ConfigLocation) Apply(opts *Options) error {
	if l == nil || l.Config == nil {
		return nil
	}
	c := l.Config
	if c.Destination != "" {
		opts.Destination = resolveDestination(l.Dir, cmdline.ExpandEnv(c.Destination))
	}
	var locales []string
	for _, loc := range c.Locales {
		if loc = strings.TrimSpace(loc); loc != "" {
			locales = append(locales, loc)
		}
	}
	if len(locales) > 0 {
		opts.Locales = locales
	}
	if c.Format != "" {
		v, err := cmdline.Coerce(reflect.TypeOf(Format(0)), &c.Format)
		if err != nil {
			return fmt.Errorf("format: %w", err)
		}
		opts.Format = v.(Format)
	}
	if c.Verbose {
		opts.Verbose = true
	}
	return nil
}

func resolveDestination(configDir, dest string) string {
	if dest == "" || filepath.IsAbs(dest) {
		return dest
	}
	return filepath.Join(configDir, dest)
}

func equalFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}
