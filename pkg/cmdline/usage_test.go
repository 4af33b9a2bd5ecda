// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type usageArgs struct {
	Lines bool     `default:"false" help:"Count lines"`
	Out   string   `flag:"output" help:"Write results to this file"`
	Files []string `pos:"" help:"Input files"`
}

func TestUsage(t *testing.T) {
	got := Usage(&usageArgs{}, UsageConfig{Name: "wc", Width: 80})
	want := "\nwc\nSwitches:\n" +
		fmt.Sprintf("%-22s%s\n", "  /lines[true|false]", "Count lines Default value:'false' (short form /l)") +
		fmt.Sprintf("%-22s%s\n", "  /output:<string>", "Write results to this file (short form /o)") +
		fmt.Sprintf("%-22s%s\n", "  @<file>", "Read response file for more options") +
		fmt.Sprintf("%-22s%s", "  <files>", "Input files") +
		"\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Usage mismatch (-want +got):\n%s", diff)
	}
}

func TestUsageDescription(t *testing.T) {
	got := Usage(&usageArgs{}, UsageConfig{Name: "wc", Description: "Counts words", Width: 80})
	if !strings.HasPrefix(got, "\nwc -  Counts words\nSwitches:\n") {
		t.Errorf("Usage header = %q", got)
	}
}

func TestSyntax(t *testing.T) {
	s, err := NewSpecification(reflect.TypeOf(struct {
		Count int
		Size  uint
		Quiet bool
		Name  string
		Since time.Time
		Shade shade
		Tags  []string
		Files []string `pos:""`
	}{}))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, a := range s.Arguments() {
		got = append(got, a.Syntax())
	}
	want := []string{
		"/count:<int>",
		"/size:<uint>",
		"/quiet[true|false]",
		"/name:<string>",
		"/since:<date>",
		"/shade:{Red|Green|Blue}",
		"/tags:<string>",
		"<files>",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Syntax mismatch (-want +got):\n%s", diff)
	}
}

func TestFullHelp(t *testing.T) {
	s, err := NewSpecification(reflect.TypeOf(struct {
		Tags  []string `default:"a,b" help:"Labels"`
		Quiet bool     `short:""`
		Level level    `default:"medium" short:"L"`
	}{}))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, a := range s.Arguments() {
		got = append(got, a.FullHelp())
	}
	want := []string{
		"Labels Default value:'a, b' (short form /t)",
		"",
		"Default value:'Medium' (short form /L)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FullHelp mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatColumns(t *testing.T) {
	tests := []struct {
		name  string
		rows  []row
		width int
		want  string
	}{
		{
			name:  "fits",
			rows:  []row{{"a", "one"}, {"bcd", "two"}},
			width: 80,
			want:  "a    one\nbcd  two",
		},
		{
			name:  "wraps at spaces",
			rows:  []row{{"ab", "one two three four"}},
			width: 20,
			want:  "ab  one two three\n    four",
		},
		{
			name:  "splits long words",
			rows:  []row{{"x", "abcdefghijklmnopqrstuvwxyz"}},
			width: 15,
			want:  "x  abcdefghijkl\n   mnopqrstuvwx\n   yz",
		},
		{
			name:  "continuation skips spaces",
			rows:  []row{{"ab", "aaaaaaa     bbbbbbb"}},
			width: 15,
			want:  "ab  aaaaaaa   \n    bbbbbbb",
		},
		{
			name:  "narrow screen uses fixed indent",
			rows:  []row{{"averyveryverylongleft", "help text"}},
			width: 20,
			want:  "averyveryverylongleft\n     help text",
		},
		{
			name:  "width below minimum",
			rows:  []row{{"x", "abcdefghijklmnopqrstuvwxyz"}},
			width: 3,
			want:  "x  abcdefghijkl\n   mnopqrstuvwx\n   yz",
		},
		{
			name:  "empty help in the middle",
			rows:  []row{{"a", ""}, {"b", "x"}},
			width: 80,
			want:  "a\nb  x",
		},
		{
			name:  "empty help last",
			rows:  []row{{"a", "x"}, {"b", ""}},
			width: 80,
			want:  "a  x\nb",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatColumns(tt.rows, tt.width)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("formatColumns mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteParameters(t *testing.T) {
	d := struct {
		Name  string
		Tags  []string
		Count int
	}{Name: "x", Tags: []string{"a", "b"}, Count: 3}
	var b strings.Builder
	if err := WriteParameters(&b, &d, 80); err != nil {
		t.Fatal(err)
	}
	rule := strings.Repeat("-", 40)
	want := rule + "\nInput parameters\n" + rule + "\n" +
		"name   x\ntags   a\n       b\ncount  3\n" +
		rule + "\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("WriteParameters mismatch (-want +got):\n%s", diff)
	}
}

func TestTerminalWidthNotATerminal(t *testing.T) {
	if got := TerminalWidth(&strings.Builder{}); got != DefaultWidth {
		t.Errorf("TerminalWidth = %d, want %d", got, DefaultWidth)
	}
}
