// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yeetrun/bingdl/pkg/cmdline"
)

// ErrShown is returned by ParseOptions after usage text was written, either
// because help was requested or because the command line was invalid.
var ErrShown = errors.New("usage shown")

// Format selects how the download plan is printed.
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
)

func (Format) EnumMembers() []string {
	return []string{"Text", "JSON", "YAML"}
}

func (f Format) String() string {
	members := f.EnumMembers()
	if f < 0 || int(f) >= len(members) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return members[f]
}

// Options are the command line options of bingdl.
type Options struct {
	Destination string    `flag:"destination" help:"Folder to save the downloaded files, will use the binary folder by default"`
	Locales     []string  `flag:"locales" help:"Markets to include; every market found in the pages when empty"`
	Format      Format    `flag:"format" help:"How the download plan is printed"`
	Since       time.Time `flag:"since" help:"Ignore pages saved before this date"`
	Duplicates  bool      `flag:"duplicates" short:"" help:"List smaller copies of images already in the destination folder"`
	Verbose     bool      `flag:"verbose" help:"Print the input parameters and trace progress"`
	Pages       []string  `flag:"pages" pos:"" arg:"required,unique" help:"Saved Bing pages to read"`
}

// DefaultOptions returns the options used when neither the config file nor
// the command line set a value.
func DefaultOptions() Options {
	opts := Options{Format: FormatText}
	if exe, err := os.Executable(); err == nil {
		opts.Destination = filepath.Dir(exe)
	}
	return opts
}

// ParseOptions builds the options from the defaults, then the bingdl.toml
// found from dir upwards, then args. It returns ErrShown when usage text was
// written instead.
func ParseOptions(args []string, dir string, usage cmdline.UsageConfig) (Options, error) {
	opts := DefaultOptions()
	loc, err := LoadConfig(dir)
	if err != nil {
		return opts, err
	}
	if loc != nil {
		if err := loc.Apply(&opts); err != nil {
			return opts, fmt.Errorf("failed to apply %s: %w", loc.Path, err)
		}
	}
	if !cmdline.ParseArgumentsWithUsage(args, &opts, usage) {
		return opts, ErrShown
	}
	return opts, nil
}

// WantLocale reports whether pages for locale are included.
func (o Options) WantLocale(locale string) bool {
	if len(o.Locales) == 0 {
		return true
	}
	for _, l := range o.Locales {
		if equalFold(l, locale) {
			return true
		}
	}
	return false
}
