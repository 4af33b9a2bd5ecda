// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
)

// MaxResponseFileDepth limits how deeply response files may reference
// other response files.
const MaxResponseFileDepth = 32

// ParseArguments binds args onto dest, which must be a pointer to a struct,
// and reports problems to standard error. It returns true if no problem was
// reported.
func ParseArguments(args []string, dest any) bool {
	return ParseArgumentsWith(args, dest, NewConsoleReporter(os.Stderr))
}

// ParseArgumentsWith is like ParseArguments but sends problems to r.
func ParseArgumentsWith(args []string, dest any, r Reporter) bool {
	return mustSpecification(dest).Parse(args, dest, r)
}

// ParseArgumentsWithUsage parses args onto dest, sending problems to
// cfg.Errors. If help was requested or parsing failed, it writes the usage
// text to cfg.Output and returns false.
func ParseArgumentsWithUsage(args []string, dest any, cfg UsageConfig) bool {
	spec := mustSpecification(dest)
	if ParseHelp(args) || !spec.Parse(args, dest, cfg.errors()) {
		fmt.Fprint(cfg.output(), spec.Usage(cfg))
		return false
	}
	return true
}

type helpArgs struct {
	Help bool `short:"?"`
}

// ParseHelp reports whether args contain the help flag (/help, -?, ...).
// Other arguments are ignored and nothing is reported.
func ParseHelp(args []string) bool {
	var h helpArgs
	mustSpecification(&h).Parse(args, &h, NullReporter)
	return h.Help
}

// Parse binds args onto dest, which must be a pointer to the specification's
// struct type. Every problem is sent to r; parsing continues after each one.
// It returns true if no problem was reported.
func (s *Specification) Parse(args []string, dest any, r Reporter) bool {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Type() != s.typ {
		panic(fmt.Sprintf("cmdline: destination must be a non-nil *%s, got %T", s.typ, dest))
	}
	if r == nil {
		r = NullReporter
	}
	p := &parser{
		spec:   s,
		dest:   v.Elem(),
		r:      r,
		states: make([]argState, len(s.all)),
	}
	ok := p.parseList(args, 0)
	for _, a := range s.all {
		if !a.finish(&p.states[a.index], p.dest, r) {
			ok = false
		}
	}
	return ok
}

// parser holds the state of one Parse call.
type parser struct {
	spec   *Specification
	dest   reflect.Value
	r      Reporter
	states []argState
}

func (p *parser) parseList(args []string, depth int) bool {
	ok := true
	for _, arg := range args {
		if arg == "" {
			continue
		}
		switch arg[0] {
		case '-', '/':
			name, value := splitOption(arg)
			if value != nil {
				expanded := ExpandEnv(*value)
				value = &expanded
			}
			a, found := p.spec.names[name]
			if !found {
				p.unrecognized(arg)
				ok = false
				continue
			}
			if !a.bind(&p.states[a.index], p.dest, value, p.r) {
				ok = false
			}

		case '@':
			if !p.responseFile(arg[1:], depth) {
				ok = false
			}

		default:
			a := p.spec.positional
			if a == nil {
				p.unrecognized(arg)
				ok = false
				continue
			}
			value := arg
			if !a.bind(&p.states[a.index], p.dest, &value, p.r) {
				ok = false
			}
		}
	}
	return ok
}

// splitOption splits an option token into its name and value. The name
// runs from after the prefix up to the first ':', '+' or '-'. A ':' starts
// the value; any other remainder (such as the boolean "+" or "-") is the
// value itself. value is nil when the token is just the name.
func splitOption(arg string) (name string, value *string) {
	rest := arg[1:]
	end := strings.IndexAny(rest, ":+-")
	if end < 0 {
		return rest, nil
	}
	name, rest = rest[:end], rest[end:]
	if rest[0] == ':' {
		rest = rest[1:]
	}
	return name, &rest
}

func (p *parser) responseFile(name string, depth int) bool {
	if depth >= MaxResponseFileDepth {
		p.r.Report(fmt.Sprintf("Error: Command line argument file '%s' is nested too deeply", name))
		return false
	}
	args, err := LexFile(name)
	if err != nil {
		var fileErr *FileError
		switch {
		case errors.As(err, &fileErr):
			p.r.Report(fmt.Sprintf("Error: Can't open command line argument file '%s' : '%s'", name, causeText(fileErr.Err)))
		case errors.Is(err, ErrUnbalancedQuote):
			p.r.Report(fmt.Sprintf("Error: Unbalanced '\"' in command line argument file '%s'", name))
		default:
			p.r.Report(fmt.Sprintf("Error: %v", err))
		}
		return false
	}
	return p.parseList(args, depth+1)
}

// causeText strips the operation and path that fs errors repeat.
func causeText(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}

func (p *parser) unrecognized(arg string) {
	p.r.Report(fmt.Sprintf("Unrecognized command line argument '%s'", arg))
}
