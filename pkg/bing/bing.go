// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bing extracts image information from saved Bing home pages.
package bing

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// BaseURL is the host that relative image paths are resolved against.
const BaseURL = "http://www.bing.com"

// ErrNoImage is returned when a page does not reference an image of the day.
var ErrNoImage = errors.New("no image found in page")

var (
	marketRE = regexp.MustCompile(`mkt=([a-zA-Z\-]*)`)

	imageURLREs = []*regexp.Regexp{
		regexp.MustCompile(`g_img=\{url:\s?'(?P<url>.*?)',\s?id`),
		regexp.MustCompile(`background-image: url\((?P<url>[^)]+)\)`),
	}

	fileNameRE = regexp.MustCompile(`(?P<name>[a-zA-Z0-9]+)_(?P<locale>[a-zA-Z\-]{5})*(?P<suffix>.*)\.(?P<ext>.*)`)
)

// MarketQuery returns the query that selects a market on the home page.
func MarketQuery(locale string) string {
	return "scope=web&setmkt=" + url.QueryEscape(locale)
}

// ExtractLocales returns the market codes referenced by mkt= parameters in
// page, without duplicates, in the order they first appear.
func ExtractLocales(page string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range marketRE.FindAllStringSubmatch(page, -1) {
		loc := m[1]
		if loc == "" || seen[loc] {
			continue
		}
		seen[loc] = true
		out = append(out, loc)
	}
	return out
}

// ExtractImagePath returns the path of the image of the day referenced by
// page, with JavaScript and URL escapes removed.
func ExtractImagePath(page string) (string, error) {
	for _, re := range imageURLREs {
		m := re.FindStringSubmatch(page)
		if m == nil {
			continue
		}
		return unescape(m[re.SubexpIndex("url")])
	}
	return "", ErrNoImage
}

func unescape(s string) (string, error) {
	s = strings.ReplaceAll(s, `\/`, "/")
	if strings.Contains(s, `\`) {
		u, err := strconv.Unquote(`"` + s + `"`)
		if err != nil {
			return "", fmt.Errorf("unescape %q: %w", s, err)
		}
		s = u
	}
	p, err := url.PathUnescape(s)
	if err != nil {
		return "", fmt.Errorf("unescape %q: %w", s, err)
	}
	return p, nil
}

// ImageURL returns the absolute URL of an image path.
func ImageURL(imagePath string) string {
	if strings.HasPrefix(imagePath, "http://") || strings.HasPrefix(imagePath, "https://") {
		return imagePath
	}
	return BaseURL + "/" + strings.TrimPrefix(imagePath, "/")
}

// FileName returns the name an image is saved under and the market encoded
// in its original name. A name like Foo_EN-US123_1920x1080.jpg becomes
// Foo.jpg. Names that do not follow that pattern are kept as they are.
func FileName(imagePath string) (name, locale string) {
	if imagePath == "" {
		return "", ""
	}
	base := path.Base(imagePath)
	if u, err := url.Parse(imagePath); err == nil {
		if id := u.Query().Get("id"); id != "" {
			base = id
		} else if u.Path != "" {
			base = path.Base(u.Path)
		}
	}
	m := fileNameRE.FindStringSubmatch(base)
	if m == nil {
		return base, ""
	}
	return m[fileNameRE.SubexpIndex("name")] + "." + m[fileNameRE.SubexpIndex("ext")],
		m[fileNameRE.SubexpIndex("locale")]
}

// TargetFile returns where the image at imagePath is saved under dir, and
// the market encoded in its name. It returns an empty path when the image
// has no usable name.
func TargetFile(imagePath, dir string) (file, locale string) {
	name, locale := FileName(imagePath)
	if name == "" || name == "." || name == "/" {
		return "", locale
	}
	return filepath.Join(dir, name), locale
}
