// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdline binds command-line tokens onto the fields of a struct and
// renders usage text for it.
//
// The fields of the destination struct define the arguments. Each exported
// field becomes one argument whose long name defaults to the lower-cased field
// name and whose short name defaults to the first character of the long name:
//
//	type Options struct {
//	    Lines bool     `help:"Print line counts" default:"false"`
//	    Out   string   `flag:"output" short:"o" help:"Write results here"`
//	    Files []string `pos:"" arg:"required,unique" help:"Files to read"`
//	}
//
//	var opts Options
//	if !cmdline.ParseArgumentsWithUsage(os.Args[1:], &opts, cmdline.UsageConfig{Name: "wc"}) {
//	    os.Exit(1)
//	}
//
// # Struct Tags
//
//   - flag:"name"   explicit long name; flag:"-" skips the field
//   - short:"x"     explicit short name; short:"" suppresses it
//   - arg:"..."     cardinality: required, unique, multiple, atmostonce,
//     lastwins, multipleunique (comma separated)
//   - default:"v"   default value, comma separated for slices
//   - help:"text"   help text
//   - pos:""        the positional argument (at most one per struct)
//
// Explicit short names always win over derived ones. A derived short name
// that collides with a long name or another short name is silently dropped.
//
// # Token Syntax
//
// Options start with '-' or '/'. A value follows a ':' (/out:file.txt).
// Boolean options accept a bare form (/lines) and the +/- shorthand
// (/lines+, /lines-). Tokens that start with '@' name a response file whose
// contents are lexed like a native command line and spliced in place. Any
// other token goes to the positional argument.
//
// # Supported Types
//
// string, int, int8-int64, uint, uint8-uint64, bool, time.Time, named types
// implementing Enumeration, and slices of any of those. Slices are
// collection arguments that accept repeated occurrences.
//
// User errors never stop a parse. Every problem is sent to a Reporter and the
// parse reports failure at the end. Malformed struct declarations are
// programming errors and make the entry points panic.
package cmdline
