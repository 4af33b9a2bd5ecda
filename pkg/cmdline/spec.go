// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"
)

// SpecError describes a destination struct that cannot be used as a
// specification. It indicates a programming error, not bad user input.
type SpecError struct {
	Type   reflect.Type
	Field  string // Empty for errors about the struct as a whole
	Reason string
}

func (e *SpecError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cmdline: %s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("cmdline: %s.%s: %s", e.Type, e.Field, e.Reason)
}

// Specification is the set of arguments declared by one struct type.
// It is immutable once built.
type Specification struct {
	typ        reflect.Type
	named      []*Argument // declaration order
	positional *Argument
	all        []*Argument // named followed by positional
	names      map[string]*Argument
}

// NewSpecification builds the specification for struct type t, or a
// pointer to it.
func NewSpecification(t reflect.Type) (*Specification, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, &SpecError{Type: t, Reason: "destination must be a struct"}
	}

	s := &Specification{
		typ:   t,
		names: make(map[string]*Argument),
	}
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		if f.Tag.Get("flag") == "-" {
			continue
		}
		arg, err := newArgument(t, f)
		if err != nil {
			return nil, err
		}
		if arg.Positional {
			if s.positional != nil {
				return nil, &SpecError{Type: t, Field: f.Name, Reason: fmt.Sprintf("more than one positional argument (already have %q)", s.positional.LongName)}
			}
			s.positional = arg
			continue
		}
		s.named = append(s.named, arg)
	}

	// Long names first, then explicit short names, then derived short
	// names that do not collide with anything registered so far.
	for _, a := range s.named {
		if _, dup := s.names[a.LongName]; dup {
			return nil, &SpecError{Type: t, Field: a.LongName, Reason: "duplicate argument name"}
		}
		s.names[a.LongName] = a
	}
	for _, a := range s.named {
		if !a.explicitShort || a.ShortName == "" {
			continue
		}
		if other, dup := s.names[a.ShortName]; dup {
			return nil, &SpecError{Type: t, Field: a.LongName, Reason: fmt.Sprintf("short name %q collides with %q", a.ShortName, other.LongName)}
		}
		s.names[a.ShortName] = a
	}
	for _, a := range s.named {
		if a.explicitShort {
			continue
		}
		if _, taken := s.names[a.ShortName]; taken || a.ShortName == "" {
			a.ShortName = ""
			continue
		}
		s.names[a.ShortName] = a
	}

	s.all = append(s.all, s.named...)
	if s.positional != nil {
		s.all = append(s.all, s.positional)
	}
	for i, a := range s.all {
		a.index = i
	}
	return s, nil
}

func newArgument(t reflect.Type, f reflect.StructField) (*Argument, error) {
	fail := func(format string, args ...any) (*Argument, error) {
		return nil, &SpecError{Type: t, Field: f.Name, Reason: fmt.Sprintf(format, args...)}
	}

	a := &Argument{
		LongName: f.Tag.Get("flag"),
		Help:     f.Tag.Get("help"),
		field:    f.Index,
		typ:      f.Type,
		elem:     f.Type,
	}
	if a.LongName == "" {
		a.LongName = strings.ToLower(f.Name)
	}
	if a.IsCollection() {
		a.elem = f.Type.Elem()
	}
	if a.kind = KindOf(a.elem); a.kind == KindInvalid {
		return fail("unsupported type %s", f.Type)
	}

	_, a.Positional = f.Tag.Lookup("pos")
	short, explicit := f.Tag.Lookup("short")
	if a.Positional {
		if explicit {
			return fail("positional argument cannot have a short name")
		}
	} else {
		a.explicitShort = explicit
		if explicit {
			a.ShortName = short
		} else {
			r, _ := utf8.DecodeRuneInString(a.LongName)
			a.ShortName = string(r)
		}
	}

	if tag, ok := f.Tag.Lookup("arg"); ok {
		flags, err := parseFlags(tag)
		if err != nil {
			return fail("%v", err)
		}
		a.Flags = flags
	} else if a.IsCollection() {
		a.Flags = MultipleUnique
	} else {
		a.Flags = AtMostOnce
	}
	if a.IsCollection() && !a.multiple() {
		a.Flags |= Multiple
	}
	if a.unique() && !a.IsCollection() {
		return fail("unique only applies to collection arguments")
	}

	if def := f.Tag.Get("default"); def != "" {
		if a.required() {
			return fail("required arguments cannot have a default value")
		}
		a.defaultText = def
		v, err := a.coerceDefault(func(s string) string { return s })
		if err != nil {
			return fail("bad default value %q: %v", def, err)
		}
		a.defaultValue = v
	}
	return a, nil
}

// Arguments returns the named arguments in declaration order followed by
// the positional argument, if any.
func (s *Specification) Arguments() []*Argument {
	return append([]*Argument(nil), s.all...)
}

// Positional returns the positional argument, or nil.
func (s *Specification) Positional() *Argument {
	return s.positional
}

// Lookup returns the named argument registered under a long or short name.
func (s *Specification) Lookup(name string) (*Argument, bool) {
	a, ok := s.names[name]
	return a, ok
}

// mustSpecification builds the specification for the type of dest and
// panics if the declaration is malformed.
func mustSpecification(dest any) *Specification {
	if dest == nil {
		panic("cmdline: nil destination")
	}
	s, err := NewSpecification(reflect.TypeOf(dest))
	if err != nil {
		panic(err)
	}
	return s
}
