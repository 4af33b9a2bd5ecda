// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"io"

	"github.com/fatih/color"
)

// Reporter receives one human-readable message per problem found while
// parsing. Parsing continues after a report.
type Reporter interface {
	Report(message string)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(message string)

func (f ReporterFunc) Report(message string) {
	f(message)
}

// NullReporter discards every message.
var NullReporter Reporter = ReporterFunc(func(string) {})

// ConsoleReporter writes each message on its own line, highlighted when the
// output supports color.
type ConsoleReporter struct {
	w     io.Writer
	color *color.Color
}

// NewConsoleReporter returns a ConsoleReporter that writes to w.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w, color: color.New(color.FgRed)}
}

func (r *ConsoleReporter) Report(message string) {
	r.color.Fprintln(r.w, message)
}

// Messages collects reported messages in order.
type Messages []string

func (m *Messages) Report(message string) {
	*m = append(*m, message)
}
