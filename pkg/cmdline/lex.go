// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// ErrUnbalancedQuote is returned by Lex when the input ends inside a quoted
// region.
var ErrUnbalancedQuote = errors.New(`unbalanced '"'`)

// FileError is returned when a response file cannot be opened or read.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("can't open command line argument file %q: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// LexFile reads the named response file and splits it into arguments.
func LexFile(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &FileError{Name: name, Err: err}
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, &FileError{Name: name, Err: err}
	}
	args, err := Lex(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return args, nil
}

// Lex splits the contents of a response file into arguments using the
// quoting rules of a native command line:
//
//   - arguments are separated by unquoted whitespace
//   - a '#' outside quotes starts a comment that runs to the end of the line
//   - '"' toggles quoting; whitespace inside quotes is kept
//   - 2n backslashes followed by '"' produce n backslashes and toggle quoting
//   - 2n+1 backslashes followed by '"' produce n backslashes and a literal '"'
//   - backslashes not followed by '"' are copied unchanged
//   - an argument cut off by a comment or the end of input is kept only
//     if it is non-empty
//
// Input that ends inside quotes yields ErrUnbalancedQuote and no arguments.
func Lex(contents string) ([]string, error) {
	l := lexer{in: []rune(contents)}
	return l.run()
}

type lexer struct {
	in       []rune
	pos      int
	inQuotes bool
	cur      strings.Builder
	out      []string
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.in)
}

func (l *lexer) peek() rune {
	return l.in[l.pos]
}

func (l *lexer) run() ([]string, error) {
	for {
		for !l.eof() && unicode.IsSpace(l.peek()) {
			l.pos++
		}
		if l.eof() {
			return l.out, nil
		}
		if l.peek() == '#' {
			l.skipComment()
			continue
		}
		if done := l.token(); done {
			break
		}
	}

	if l.inQuotes {
		return nil, ErrUnbalancedQuote
	}
	if l.cur.Len() > 0 {
		l.emit()
	}
	return l.out, nil
}

// token consumes one argument. It reports whether the input ran out before
// the argument was terminated.
func (l *lexer) token() (eof bool) {
	for {
		if l.eof() {
			return true
		}
		switch c := l.peek(); {
		case c == '\\':
			l.backslashes()
		case c == '"':
			l.inQuotes = !l.inQuotes
			l.pos++
		case c == '#' && !l.inQuotes:
			if l.cur.Len() > 0 {
				l.emit()
			}
			l.skipComment()
			return false
		default:
			l.cur.WriteRune(c)
			l.pos++
		}
		if !l.eof() && !l.inQuotes && unicode.IsSpace(l.peek()) {
			l.emit()
			return false
		}
	}
}

func (l *lexer) backslashes() {
	n := 0
	for !l.eof() && l.peek() == '\\' {
		n++
		l.pos++
	}
	if l.eof() || l.peek() != '"' {
		l.cur.WriteString(strings.Repeat(`\`, n))
		return
	}
	l.cur.WriteString(strings.Repeat(`\`, n/2))
	if n%2 == 1 {
		l.cur.WriteByte('"')
	} else {
		l.inQuotes = !l.inQuotes
	}
	l.pos++
}

func (l *lexer) skipComment() {
	for !l.eof() && l.peek() != '\n' {
		l.pos++
	}
}

func (l *lexer) emit() {
	l.out = append(l.out, l.cur.String())
	l.cur.Reset()
}
