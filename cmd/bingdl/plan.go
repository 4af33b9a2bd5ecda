// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/yeetrun/bingdl/pkg/bing"
	"github.com/yeetrun/bingdl/pkg/cli"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Plan lists the images that would be downloaded for a set of saved pages.
type Plan struct {
	Destination string           `json:"destination" yaml:"destination"`
	Markets     []string         `json:"markets,omitempty" yaml:"markets,omitempty"`
	Images      []Image          `json:"images" yaml:"images"`
	Skipped     []Skip           `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Duplicates  []bing.Duplicate `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
}

type Image struct {
	Page   string `json:"page" yaml:"page"`
	Locale string `json:"locale,omitempty" yaml:"locale,omitempty"`
	Market string `json:"market,omitempty" yaml:"market,omitempty"` // home page query for Locale
	URL    string `json:"url" yaml:"url"`
	File   string `json:"file" yaml:"file"`
	Exists bool   `json:"exists" yaml:"exists"`
}

type Skip struct {
	Page   string `json:"page" yaml:"page"`
	Reason string `json:"reason" yaml:"reason"`
}

type planner struct {
	opts cli.Options
	logf func(format string, args ...any)
}

// maxReaders caps how many pages are read at once.
const maxReaders = 8

type pageFile struct {
	info os.FileInfo
	text string
	err  error
}

// load stats and reads every page concurrently. Failures are kept per page.
func (p *planner) load() []pageFile {
	out := make([]pageFile, len(p.opts.Pages))
	var g errgroup.Group
	g.SetLimit(maxReaders)
	for i, name := range p.opts.Pages {
		g.Go(func() error {
			info, err := os.Stat(name)
			if err != nil {
				out[i].err = err
				return nil
			}
			b, err := os.ReadFile(name)
			if err != nil {
				out[i].err = err
				return nil
			}
			out[i] = pageFile{info: info, text: string(b)}
			return nil
		})
	}
	// Per-page errors are kept in out[i].err; the group itself never fails.
	_ = g.Wait()
	return out
}

func (p *planner) build() (*Plan, error) {
	plan := &Plan{Destination: p.opts.Destination}
	markets := make(map[string]bool)
	planned := make(map[string]string)

	loaded := p.load()
	for i, page := range p.opts.Pages {
		skip := func(format string, args ...any) {
			reason := fmt.Sprintf(format, args...)
			p.logf("skipping %s: %s", page, reason)
			plan.Skipped = append(plan.Skipped, Skip{Page: page, Reason: reason})
		}

		pd := loaded[i]
		if pd.err != nil {
			skip("%v", pd.err)
			continue
		}
		if !p.opts.Since.IsZero() && pd.info.ModTime().Before(p.opts.Since) {
			skip("saved before %s", p.opts.Since.Format("2006-01-02"))
			continue
		}
		text := pd.text

		for _, m := range bing.ExtractLocales(text) {
			if !markets[m] {
				markets[m] = true
				plan.Markets = append(plan.Markets, m)
			}
		}

		imagePath, err := bing.ExtractImagePath(text)
		if err != nil {
			if errors.Is(err, bing.ErrNoImage) {
				p.logf("%s: no image of the day", page)
			}
			skip("%v", err)
			continue
		}
		file, locale := bing.TargetFile(imagePath, p.opts.Destination)
		p.logf("loc %s image %s file %s", locale, imagePath, file)
		if file == "" {
			skip("image %s has no file name", imagePath)
			continue
		}
		if !p.opts.WantLocale(locale) {
			skip("market %q not selected", locale)
			continue
		}
		if prev, ok := planned[file]; ok {
			skip("same image as %s", prev)
			continue
		}
		planned[file] = page

		img := Image{
			Page:   page,
			Locale: locale,
			URL:    bing.ImageURL(imagePath),
			File:   file,
		}
		if locale != "" {
			img.Market = bing.MarketQuery(locale)
		}
		_, statErr := os.Stat(file)
		img.Exists = statErr == nil
		plan.Images = append(plan.Images, img)
	}

	if p.opts.Duplicates {
		dups, err := bing.FindDuplicates(p.opts.Destination)
		if err != nil {
			return nil, fmt.Errorf("failed to look for duplicates: %w", err)
		}
		plan.Duplicates = dups
	}
	return plan, nil
}

func writePlan(w io.Writer, plan *Plan, format cli.Format) error {
	switch format {
	case cli.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	case cli.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return err
		}
		return enc.Close()
	case cli.FormatText:
		return writePlanText(w, plan)
	}
	return fmt.Errorf("unknown format %v", format)
}

func writePlanText(w io.Writer, plan *Plan) error {
	fmt.Fprintf(w, "Destination: %s\n", plan.Destination)
	if len(plan.Markets) > 0 {
		fmt.Fprintf(w, "Markets: %s\n", strings.Join(plan.Markets, ", "))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "LOCALE\tSTATUS\tFILE\tURL")
	for _, img := range plan.Images {
		status := "download"
		if img.Exists {
			status = "exists"
		}
		locale := img.Locale
		if locale == "" {
			locale = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", locale, status, img.File, img.URL)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(plan.Duplicates) > 0 {
		fmt.Fprintln(w, "\nSmaller duplicates:")
		for _, d := range plan.Duplicates {
			fmt.Fprintf(w, "  %s (%s)\n", d.File, d.Resolution)
		}
	}
	return nil
}
