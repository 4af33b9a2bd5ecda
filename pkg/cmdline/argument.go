// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"reflect"
	"strings"
)

// Flags control how often an argument may occur and whether it must.
type Flags int

const (
	// Required arguments must be given at least once.
	Required Flags = 1 << iota
	// Unique collection arguments reject a value that was already given.
	Unique
	// Multiple arguments may be given more than once.
	Multiple
	// AtMostOnce is the default for scalar arguments.
	AtMostOnce

	// LastOccurrenceWins lets a scalar argument repeat; the last value is kept.
	LastOccurrenceWins = Multiple
	// MultipleUnique is the default for collection arguments.
	MultipleUnique = Multiple | Unique
)

var flagWords = map[string]Flags{
	"required":       Required,
	"unique":         Unique,
	"multiple":       Multiple,
	"atmostonce":     AtMostOnce,
	"lastwins":       LastOccurrenceWins,
	"multipleunique": MultipleUnique,
}

func (f Flags) String() string {
	var parts []string
	for _, w := range []string{"required", "unique", "multiple", "atmostonce"} {
		if f&flagWords[w] != 0 {
			parts = append(parts, w)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// parseFlags parses the value of an `arg` struct tag.
func parseFlags(tag string) (Flags, error) {
	var f Flags
	for _, w := range strings.Split(tag, ",") {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		bit, ok := flagWords[w]
		if !ok {
			return 0, fmt.Errorf("unknown cardinality %q", w)
		}
		f |= bit
	}
	return f, nil
}

// Argument describes one bindable field of a destination struct.
type Argument struct {
	LongName   string
	ShortName  string // Empty when the field has no short form
	Flags      Flags
	Help       string
	Positional bool

	index         int   // position in Specification.all
	field         []int // reflect field index
	typ           reflect.Type
	elem          reflect.Type
	kind          Kind
	explicitShort bool
	defaultText   string
	defaultValue  reflect.Value
}

// IsCollection reports whether the argument binds to a slice field.
func (a *Argument) IsCollection() bool { return a.typ.Kind() == reflect.Slice }

// Kind returns the kind of the argument's values.
func (a *Argument) Kind() Kind { return a.kind }

// ElemType returns the type of one value of the argument.
func (a *Argument) ElemType() reflect.Type { return a.elem }

// HasDefault reports whether the argument declares a default value.
func (a *Argument) HasDefault() bool { return a.defaultValue.IsValid() }

// Default returns the declared default value, or nil. String defaults are
// environment-expanded.
func (a *Argument) Default() any {
	if !a.HasDefault() {
		return nil
	}
	return a.resolveDefault().Interface()
}

func (a *Argument) required() bool { return a.Flags&Required != 0 }
func (a *Argument) multiple() bool { return a.Flags&Multiple != 0 }
func (a *Argument) unique() bool   { return a.Flags&Unique != 0 }

// displayName is the name used in messages about the argument.
func (a *Argument) displayName() string {
	if a.Positional {
		return "<" + a.LongName + ">"
	}
	return "/" + a.LongName
}

// coerceDefault converts the declared default text into a value of the
// field's type.
func (a *Argument) coerceDefault(expand func(string) string) (reflect.Value, error) {
	if !a.IsCollection() {
		text := a.defaultText
		if a.kind == KindString {
			text = expand(text)
		}
		return coerce(a.elem, &text)
	}
	out := reflect.MakeSlice(a.typ, 0, 0)
	for _, part := range strings.Split(a.defaultText, ",") {
		if part == "" {
			continue
		}
		if a.kind == KindString {
			part = expand(part)
		}
		v, err := coerce(a.elem, &part)
		if err != nil {
			return reflect.Value{}, err
		}
		out = reflect.Append(out, v)
	}
	return out, nil
}

// resolveDefault returns the default value with string parts expanded
// against the current environment.
func (a *Argument) resolveDefault() reflect.Value {
	if a.kind != KindString {
		return a.defaultValue
	}
	v, err := a.coerceDefault(ExpandEnv)
	if err != nil {
		// The expansion produced an empty string; fall back to the text as
		// declared, which was validated when the specification was built.
		return a.defaultValue
	}
	return v
}

// argState is the per-parse state of one argument.
type argState struct {
	seen     bool
	rejected bool          // a value was given but could not be coerced
	values   reflect.Value // accumulated collection values
}

// bind coerces token and stores it. It reports false after sending a
// message to r.
func (a *Argument) bind(st *argState, dest reflect.Value, token *string, r Reporter) bool {
	if st.seen && !a.multiple() {
		r.Report(fmt.Sprintf("Duplicate '%s' argument", a.LongName))
		return false
	}
	v, err := coerce(a.elem, token)
	if err != nil {
		r.Report(fmt.Sprintf("'%s' is not a valid value for the '%s' command line option", tokenText(token), a.LongName))
		st.rejected = true
		return false
	}
	if !a.IsCollection() {
		dest.FieldByIndex(a.field).Set(v)
		st.seen = true
		return true
	}
	if !st.values.IsValid() {
		st.values = reflect.MakeSlice(a.typ, 0, 1)
	}
	if a.unique() {
		for i := 0; i < st.values.Len(); i++ {
			if sameValue(st.values.Index(i), v) {
				r.Report(fmt.Sprintf("Duplicate '%s' argument '%s'", a.LongName, tokenText(token)))
				return false
			}
		}
	}
	st.values = reflect.Append(st.values, v)
	st.seen = true
	return true
}

// finish applies the default, stores collection values and checks that a
// required argument was seen. An argument whose only values were rejected
// already has its message and is not reported as missing. It reports false
// after sending a message to r.
func (a *Argument) finish(st *argState, dest reflect.Value, r Reporter) bool {
	field := dest.FieldByIndex(a.field)
	switch {
	case st.seen && a.IsCollection():
		field.Set(st.values)
	case !st.seen && a.HasDefault():
		field.Set(a.resolveDefault())
	}
	if a.required() && !st.seen {
		if st.rejected {
			return false
		}
		r.Report(fmt.Sprintf("Missing required argument '%s'.", a.displayName()))
		return false
	}
	return true
}
