// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"golang.org/x/term"
)

// DefaultWidth is the output width used when the terminal width is unknown.
const DefaultWidth = 80

const (
	columnGap          = 2
	minColumnTwoIndex  = 5
	minColumnTwoChars  = 10
	minimumScreenWidth = minColumnTwoIndex + minColumnTwoChars
)

// UsageConfig controls usage rendering and ParseArgumentsWithUsage.
type UsageConfig struct {
	Name        string    // Program name; defaults to the executable's base name
	Description string    // One-line description shown after the name
	Width       int       // Output width; 0 means TerminalWidth(Output)
	Output      io.Writer // Where usage is written; nil means standard output
	Errors      Reporter  // Where parse problems go; nil means standard error
}

func (c UsageConfig) output() io.Writer {
	if c.Output == nil {
		return os.Stdout
	}
	return c.Output
}

func (c UsageConfig) errors() Reporter {
	if c.Errors == nil {
		return NewConsoleReporter(os.Stderr)
	}
	return c.Errors
}

func (c UsageConfig) width() int {
	if c.Width > 0 {
		return c.Width
	}
	return TerminalWidth(c.output())
}

// TerminalWidth returns the width of the terminal behind w, or DefaultWidth
// if w is not a terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return DefaultWidth
	}
	return cols
}

// Usage returns the usage text for the struct type of dest.
func Usage(dest any, cfg UsageConfig) string {
	return mustSpecification(dest).Usage(cfg)
}

// Usage renders the specification as a header followed by a two-column
// list of switches and their help text.
func (s *Specification) Usage(cfg UsageConfig) string {
	width := cfg.width()
	name := cfg.Name
	if name == "" {
		name = filepath.Base(os.Args[0])
	}
	header := name
	if cfg.Description != "" {
		header = formatColumns([]row{{strings.TrimSpace(name) + " -", strings.TrimSpace(cfg.Description)}}, width)
	}

	rows := make([]row, 0, len(s.all)+1)
	for _, a := range s.named {
		rows = append(rows, row{"  " + a.Syntax(), a.FullHelp()})
	}
	rows = append(rows, row{"  @<file>", "Read response file for more options"})
	if s.positional != nil {
		rows = append(rows, row{"  " + s.positional.Syntax(), s.positional.FullHelp()})
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(header)
	b.WriteString("\nSwitches:\n")
	b.WriteString(formatColumns(rows, width))
	b.WriteString("\n")
	return b.String()
}

// Syntax returns the usage syntax of the argument, such as /out:<string>.
func (a *Argument) Syntax() string {
	if a.Positional {
		return "<" + a.LongName + ">"
	}
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(a.LongName)
	switch a.kind {
	case KindInt:
		b.WriteString(":<int>")
	case KindUint:
		b.WriteString(":<uint>")
	case KindBool:
		b.WriteString("[true|false]")
	case KindString:
		b.WriteString(":<string>")
	case KindDateTime:
		b.WriteString(":<date>")
	case KindEnum:
		b.WriteString(":{")
		b.WriteString(strings.Join(enumMembers(a.ElemType()), "|"))
		b.WriteString("}")
	}
	return b.String()
}

// FullHelp returns the help text followed by the default value and the
// short form, when present.
func (a *Argument) FullHelp() string {
	var parts []string
	if a.Help != "" {
		parts = append(parts, a.Help)
	}
	if a.HasDefault() {
		parts = append(parts, "Default value:'"+formatValue(a.resolveDefault())+"'")
	}
	if a.ShortName != "" {
		parts = append(parts, "(short form /"+a.ShortName+")")
	}
	return strings.Join(parts, " ")
}

type row struct {
	left, right string
}

// formatColumns lays rows out in two columns. The second column starts two
// spaces after the widest left cell, or at a small fixed indent when that
// would leave too little room. Right cells wrap at spaces; a word longer
// than the line is split. Lines are separated, not terminated, by '\n'.
func formatColumns(rows []row, screenWidth int) string {
	maxLeft := 0
	for _, r := range rows {
		maxLeft = max(maxLeft, len([]rune(r.left)))
	}
	screenWidth = max(screenWidth, minimumScreenWidth)
	colTwo := maxLeft + columnGap
	if screenWidth < colTwo+minColumnTwoChars {
		colTwo = minColumnTwoIndex
	}
	perLine := screenWidth - colTwo

	var b strings.Builder
	for i, r := range rows {
		last := i == len(rows)-1
		left := []rune(r.left)
		right := []rune(r.right)

		b.WriteString(r.left)
		cur := len(left)
		if cur >= colTwo && len(right) > 0 {
			b.WriteString("\n")
			cur = 0
		}
		if len(right) == 0 && !last {
			b.WriteString("\n")
			continue
		}

		for idx := 0; idx < len(right); {
			b.WriteString(strings.Repeat(" ", colTwo-cur))
			end := idx + perLine
			if end >= len(right) {
				end = len(right)
			} else if sp := lastSpace(right, idx, end); sp > idx {
				end = sp
			}
			b.WriteString(string(right[idx:end]))
			idx = end
			if !last || idx != len(right) {
				b.WriteString("\n")
			}
			cur = 0
			for idx < len(right) && right[idx] == ' ' {
				idx++
			}
		}
	}
	return b.String()
}

// lastSpace returns the index of the last space in s[from:to], or -1.
func lastSpace(s []rune, from, to int) int {
	for i := to - 1; i >= from; i-- {
		if s[i] == ' ' {
			return i
		}
	}
	return -1
}

// WriteParameters writes the bound values of dest as a two-column listing.
// Collections list one value per line; empty collections are omitted.
func WriteParameters(w io.Writer, dest any, width int) error {
	s := mustSpecification(dest)
	v := reflect.Indirect(reflect.ValueOf(dest))
	var rows []row
	for _, a := range s.all {
		field := v.FieldByIndex(a.field)
		if !a.IsCollection() {
			rows = append(rows, row{a.LongName, formatValue(field)})
			continue
		}
		for i := 0; i < field.Len(); i++ {
			name := ""
			if i == 0 {
				name = a.LongName
			}
			rows = append(rows, row{name, formatValue(field.Index(i))})
		}
	}
	const rule = "----------------------------------------"
	_, err := fmt.Fprintf(w, "%s\nInput parameters\n%s\n%s\n%s\n", rule, rule, formatColumns(rows, width), rule)
	return err
}
