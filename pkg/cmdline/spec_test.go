// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type names struct {
	name, short string
}

func argumentNames(s *Specification) []names {
	var out []names
	for _, a := range s.Arguments() {
		out = append(out, names{a.LongName, a.ShortName})
	}
	return out
}

func TestSpecificationNames(t *testing.T) {
	tests := []struct {
		name string
		typ  any
		want []names
	}{
		{
			name: "derived names",
			typ: struct {
				Lines bool
				Out   string
			}{},
			want: []names{{"lines", "l"}, {"out", "o"}},
		},
		{
			name: "first derived short wins",
			typ: struct {
				Lines bool
				Label string
			}{},
			want: []names{{"lines", "l"}, {"label", ""}},
		},
		{
			name: "explicit short beats derived",
			typ: struct {
				Lines bool
				Debug bool `short:"l"`
			}{},
			want: []names{{"lines", ""}, {"debug", "l"}},
		},
		{
			name: "suppressed short",
			typ: struct {
				Verbose bool `short:""`
			}{},
			want: []names{{"verbose", ""}},
		},
		{
			name: "derived short colliding with a long name",
			typ: struct {
				D   bool `flag:"d"`
				Dir string
			}{},
			want: []names{{"d", ""}, {"dir", ""}},
		},
		{
			name: "renamed and skipped fields",
			typ: struct {
				Out      string `flag:"destination"`
				Internal string `flag:"-"`
				hidden   string
			}{},
			want: []names{{"destination", "d"}},
		},
		{
			name: "positional is last and has no short name",
			typ: struct {
				Files []string `pos:""`
				Quiet bool
			}{},
			want: []names{{"quiet", "q"}, {"files", ""}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSpecification(reflect.TypeOf(tt.typ))
			if err != nil {
				t.Fatalf("NewSpecification error = %v", err)
			}
			if diff := cmp.Diff(tt.want, argumentNames(s), cmp.AllowUnexported(names{})); diff != "" {
				t.Errorf("names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSpecificationLookup(t *testing.T) {
	s, err := NewSpecification(reflect.TypeOf(struct {
		Lines bool
		Label string
		Files []string `pos:""`
	}{}))
	if err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]string{"lines": "lines", "l": "lines", "label": "label"} {
		a, ok := s.Lookup(name)
		if !ok || a.LongName != want {
			t.Errorf("Lookup(%q) = %v, %v; want %q", name, a, ok, want)
		}
	}
	if _, ok := s.Lookup("files"); ok {
		t.Error("Lookup(files) found the positional argument")
	}
	if p := s.Positional(); p == nil || p.LongName != "files" {
		t.Errorf("Positional() = %v, want files", p)
	}
}

func TestSpecificationFlags(t *testing.T) {
	s, err := NewSpecification(reflect.TypeOf(struct {
		Name  string
		Tags  []string
		Last  int      `arg:"lastwins"`
		Paths []string `arg:"required"`
		Must  string   `arg:"required"`
	}{}))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]Flags{
		"name":  AtMostOnce,
		"tags":  MultipleUnique,
		"last":  LastOccurrenceWins,
		"paths": Required | Multiple,
		"must":  Required,
	}
	for _, a := range s.Arguments() {
		if a.Flags != want[a.LongName] {
			t.Errorf("%s flags = %v, want %v", a.LongName, a.Flags, want[a.LongName])
		}
	}
}

func TestArgumentTypes(t *testing.T) {
	s, err := NewSpecification(reflect.TypeOf(struct {
		Count  uint16
		Shades []shade
		When   time.Time
		Files  []string `pos:""`
	}{}))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		arg        *Argument
		kind       Kind
		elem       reflect.Type
		collection bool
	}{
		{s.Arguments()[0], KindUint, reflect.TypeOf(uint16(0)), false},
		{s.Arguments()[1], KindEnum, reflect.TypeOf(shade("")), true},
		{s.Arguments()[2], KindDateTime, reflect.TypeOf(time.Time{}), false},
		{s.Positional(), KindString, reflect.TypeOf(""), true},
	}
	for _, tt := range tests {
		a := tt.arg
		if a.Kind() != tt.kind {
			t.Errorf("%s Kind() = %v, want %v", a.LongName, a.Kind(), tt.kind)
		}
		if a.ElemType() != tt.elem {
			t.Errorf("%s ElemType() = %v, want %v", a.LongName, a.ElemType(), tt.elem)
		}
		if a.IsCollection() != tt.collection {
			t.Errorf("%s IsCollection() = %v, want %v", a.LongName, a.IsCollection(), tt.collection)
		}
	}
}

func TestSpecificationDefaults(t *testing.T) {
	s, err := NewSpecification(reflect.TypeOf(struct {
		Count int       `default:"3"`
		Tags  []string  `default:"a,b"`
		Since time.Time `default:"2024-01-02"`
		Shade shade     `default:"blue"`
		Plain string
	}{}))
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]any{}
	for _, a := range s.Arguments() {
		got[a.LongName] = a.Default()
	}
	if got["count"] != 3 {
		t.Errorf("count default = %v, want 3", got["count"])
	}
	if diff := cmp.Diff([]string{"a", "b"}, got["tags"]); diff != "" {
		t.Errorf("tags default mismatch (-want +got):\n%s", diff)
	}
	if since, ok := got["since"].(time.Time); !ok || since.Year() != 2024 || since.Day() != 2 {
		t.Errorf("since default = %v, want 2024-01-02", got["since"])
	}
	if got["shade"] != shade("Blue") {
		t.Errorf("shade default = %v, want Blue", got["shade"])
	}
	if got["plain"] != nil {
		t.Errorf("plain default = %v, want nil", got["plain"])
	}
}

func TestSpecificationErrors(t *testing.T) {
	tests := []struct {
		name string
		typ  any
	}{
		{"not a struct", 42},
		{"duplicate long name", struct {
			A bool `flag:"x"`
			B bool `flag:"x"`
		}{}},
		{"two positionals", struct {
			A []string `pos:""`
			B []string `pos:""`
		}{}},
		{"explicit short collides with long name", struct {
			Lines bool
			Debug bool `short:"lines"`
		}{}},
		{"explicit shorts collide", struct {
			A bool `short:"x"`
			B bool `short:"x"`
		}{}},
		{"positional with short", struct {
			Files []string `pos:"" short:"f"`
		}{}},
		{"required with default", struct {
			Name string `arg:"required" default:"x"`
		}{}},
		{"unique scalar", struct {
			Name string `arg:"unique"`
		}{}},
		{"unknown cardinality", struct {
			Name string `arg:"sometimes"`
		}{}},
		{"unsupported type", struct {
			Ratio float64
		}{}},
		{"unsupported slice type", struct {
			Pairs []map[string]string
		}{}},
		{"bad default", struct {
			Count int `default:"many"`
		}{}},
		{"bad enum default", struct {
			Shade shade `default:"purple"`
		}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpecification(reflect.TypeOf(tt.typ))
			var specErr *SpecError
			if !errors.As(err, &specErr) {
				t.Fatalf("NewSpecification error = %v, want *SpecError", err)
			}
		})
	}
}

func TestParseArgumentsPanicsOnBadDeclaration(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("ParseArguments did not panic")
		}
		if err, ok := r.(error); !ok || !errors.As(err, new(*SpecError)) {
			t.Errorf("panic value = %v, want *SpecError", r)
		}
	}()
	var dest struct {
		A bool `flag:"x"`
		B bool `flag:"x"`
	}
	ParseArgumentsWith(nil, &dest, NullReporter)
}
