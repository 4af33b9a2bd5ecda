// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bing

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

var imageExts = []string{"jpg", "png", "gif"}

// Duplicate is a saved image that has a copy at a larger resolution.
type Duplicate struct {
	Prefix     string `json:"prefix" yaml:"prefix"`
	File       string `json:"file" yaml:"file"`
	Resolution string `json:"resolution" yaml:"resolution"`
}

type candidate struct {
	file string
	res  string
	area int
}

// FindDuplicates looks for images in dir named prefix_WxH.ext that share a
// prefix, and returns the smallest resolution of each such group. Groups
// with fewer than two distinct resolutions are ignored. Results are sorted by
// prefix.
func FindDuplicates(dir string) ([]Duplicate, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a valid folder", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]candidate)
	for _, e := range entries {
		if e.IsDir() || !isImage(e.Name()) {
			continue
		}
		parts := strings.FieldsFunc(e.Name(), func(r rune) bool { return r == '_' || r == '.' })
		if len(parts) <= 2 {
			continue
		}
		area, ok := resolutionArea(parts[1])
		if !ok {
			continue
		}
		groups[parts[0]] = append(groups[parts[0]], candidate{
			file: filepath.Join(dir, e.Name()),
			res:  parts[1],
			area: area,
		})
	}

	var out []Duplicate
	for prefix, cands := range groups {
		areas := make(map[int]bool)
		for _, c := range cands {
			areas[c.area] = true
		}
		if len(areas) < 2 {
			continue
		}
		smallest := slices.MinFunc(cands, func(a, b candidate) int { return a.area - b.area })
		out = append(out, Duplicate{Prefix: prefix, File: smallest.file, Resolution: smallest.res})
	}
	slices.SortFunc(out, func(a, b Duplicate) int { return strings.Compare(a.Prefix, b.Prefix) })
	return out, nil
}

func isImage(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range imageExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// resolutionArea parses WxH and returns W*H.
func resolutionArea(res string) (int, bool) {
	w, h, ok := strings.Cut(res, "x")
	if !ok {
		return 0, false
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return 0, false
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return 0, false
	}
	return width * height, true
}
