// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"os"
	"strings"
)

// ExpandEnv expands environment variable references in s using the
// conventions of the host: %NAME% on Windows, $NAME and ${NAME} elsewhere.
// Option values and string defaults pass through it before coercion.
func ExpandEnv(s string) string {
	return expandEnvironment(s, os.LookupEnv)
}

// expandPercent replaces %NAME% references. Undefined names and unpaired
// '%' characters are left as they are, matching cmd.exe.
func expandPercent(s string, lookup func(string) (string, bool)) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	for {
		start := strings.IndexByte(s, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(s[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1
		name := s[start+1 : end]
		if v, ok := lookup(name); ok && name != "" {
			b.WriteString(s[:start])
			b.WriteString(v)
			s = s[end+1:]
			continue
		}
		// Keep the first '%' and retry from the second one, which may open
		// a valid reference.
		b.WriteString(s[:end])
		s = s[end:]
	}
	b.WriteString(s)
	return b.String()
}

// expandDollar replaces $NAME and ${NAME} references. Undefined names expand
// to the empty string, matching the shell.
func expandDollar(s string, lookup func(string) (string, bool)) string {
	return os.Expand(s, func(name string) string {
		v, _ := lookup(name)
		return v
	})
}
