// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
)

// Kind is the scalar kind of an argument value.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindUint
	KindBool
	KindDateTime
	KindEnum
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindString:   "string",
	KindInt:      "int",
	KindUint:     "uint",
	KindBool:     "bool",
	KindDateTime: "date",
	KindEnum:     "enum",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Enumeration is implemented by named string or integer types whose values
// form a closed set of members. Tokens are matched against the members
// ignoring case. String types store the canonical member name; integer types
// store the member's index.
//
//	type Format string
//
//	func (Format) EnumMembers() []string { return []string{"Text", "JSON"} }
type Enumeration interface {
	EnumMembers() []string
}

var (
	enumerationType = reflect.TypeOf((*Enumeration)(nil)).Elem()
	timeType        = reflect.TypeOf(time.Time{})
)

// KindOf reports the Kind used to coerce tokens into values of type t.
// It returns KindInvalid for unsupported types.
func KindOf(t reflect.Type) Kind {
	if t == timeType {
		return KindDateTime
	}
	if t.Implements(enumerationType) {
		switch t.Kind() {
		case reflect.String,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return KindEnum
		}
		return KindInvalid
	}
	switch t.Kind() {
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindUint
	}
	return KindInvalid
}

// enumMembers returns the members of an enumeration type.
func enumMembers(t reflect.Type) []string {
	return reflect.Zero(t).Interface().(Enumeration).EnumMembers()
}

// ValueError is returned when a token cannot be coerced into a value.
type ValueError struct {
	Token *string // The token as given, nil when no value was supplied
	Kind  Kind
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %v", e.Kind, tokenText(e.Token), e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

func tokenText(token *string) string {
	if token == nil {
		return ""
	}
	return *token
}

// Coerce converts token into a value of type t. A nil token means the
// option was given without a value, which is only valid for bool.
func Coerce(t reflect.Type, token *string) (any, error) {
	v, err := coerce(t, token)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func coerce(t reflect.Type, token *string) (reflect.Value, error) {
	kind := KindOf(t)
	fail := func(err error) (reflect.Value, error) {
		return reflect.Value{}, &ValueError{Token: token, Kind: kind, Err: err}
	}
	if token == nil {
		if kind == KindBool {
			return reflect.ValueOf(true).Convert(t), nil
		}
		return fail(fmt.Errorf("missing value"))
	}
	s := *token
	if s == "" {
		return fail(fmt.Errorf("empty value"))
	}

	switch kind {
	case KindString:
		return reflect.ValueOf(s).Convert(t), nil

	case KindBool:
		b, ok := parseBool(s)
		if !ok {
			return fail(fmt.Errorf("expected one of +, -, true, false, 1, 0"))
		}
		return reflect.ValueOf(b).Convert(t), nil

	case KindInt, KindUint:
		// Both kinds parse as signed base-10 integers.
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fail(err)
		}
		v := reflect.New(t).Elem()
		if kind == KindInt {
			if v.OverflowInt(n) {
				return fail(fmt.Errorf("value out of range for %s", t))
			}
			v.SetInt(n)
			return v, nil
		}
		if n < 0 || v.OverflowUint(uint64(n)) {
			return fail(fmt.Errorf("value out of range for %s", t))
		}
		v.SetUint(uint64(n))
		return v, nil

	case KindDateTime:
		tm, err := dateparse.ParseLocal(s)
		if err != nil {
			return fail(err)
		}
		return reflect.ValueOf(tm), nil

	case KindEnum:
		members := enumMembers(t)
		idx := matchMember(members, s)
		if idx < 0 {
			return fail(fmt.Errorf("expected one of %s", strings.Join(members, ", ")))
		}
		v := reflect.New(t).Elem()
		switch t.Kind() {
		case reflect.String:
			v.SetString(members[idx])
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v.SetInt(int64(idx))
		default:
			v.SetUint(uint64(idx))
		}
		return v, nil
	}
	return fail(fmt.Errorf("unsupported type %s", t))
}

func parseBool(s string) (value, ok bool) {
	switch {
	case s == "+" || s == "1" || strings.EqualFold(s, "true"):
		return true, true
	case s == "-" || s == "0" || strings.EqualFold(s, "false"):
		return false, true
	}
	return false, false
}

// matchMember returns the index of the member equal to s under case
// folding, or -1.
func matchMember(members []string, s string) int {
	fold := cases.Fold()
	want := fold.String(s)
	for i, m := range members {
		if fold.String(m) == want {
			return i
		}
	}
	return -1
}

// formatValue renders a coerced value for usage and parameter listings.
func formatValue(v reflect.Value) string {
	if v.Kind() == reflect.Slice {
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = formatValue(v.Index(i))
		}
		return strings.Join(parts, ", ")
	}
	switch KindOf(v.Type()) {
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindDateTime:
		return v.Interface().(time.Time).Format(time.DateTime)
	case KindEnum:
		if v.Kind() == reflect.String {
			return v.String()
		}
		members := enumMembers(v.Type())
		var idx int
		if v.CanInt() {
			idx = int(v.Int())
		} else {
			idx = int(v.Uint())
		}
		if idx >= 0 && idx < len(members) {
			return members[idx]
		}
		return strconv.Itoa(idx)
	case KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case KindUint:
		return strconv.FormatUint(v.Uint(), 10)
	}
	return fmt.Sprint(v.Interface())
}

// sameValue reports whether two coerced values are equal.
func sameValue(a, b reflect.Value) bool {
	if a.Type() == timeType {
		return a.Interface().(time.Time).Equal(b.Interface().(time.Time))
	}
	return a.Interface() == b.Interface()
}
