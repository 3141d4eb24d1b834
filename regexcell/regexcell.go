// Package regexcell provides a compiled regular expression paired with its
// source pattern, safe to deep-copy by value. IndexTables are duplicated
// across CliTable instances (the process-wide index cache hands out copies
// so one caller's mutation of a matched row cannot affect another's), so the
// compiled matcher underneath every cell needs to travel with the struct
// rather than be shared through a pointer no one owns.
package regexcell

import (
	"regexp"

	"github.com/pkg/errors"
)

// Cell is a regular expression plus the source it was compiled from.
// The zero value is not valid; use New or MustNew.
type Cell struct {
	source   string
	compiled *regexp.Regexp
}

// New compiles pattern and returns a Cell wrapping it.
func New(pattern string) (Cell, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Cell{}, errors.Wrapf(err, "regexcell: compiling %q", pattern)
	}
	return Cell{source: pattern, compiled: re}, nil
}

// MustNew is like New but panics on error, for package-level patterns known
// to be valid at compile time.
func MustNew(pattern string) Cell {
	c, err := New(pattern)
	if err != nil {
		panic(err)
	}
	return c
}

// Source returns the pattern the Cell was compiled from.
func (c Cell) Source() string {
	return c.source
}

// Valid reports whether the Cell wraps a compiled expression.
func (c Cell) Valid() bool {
	return c.compiled != nil
}

// MatchString reports whether s contains any match of the regular expression.
func (c Cell) MatchString(s string) bool {
	if c.compiled == nil {
		return false
	}
	return c.compiled.MatchString(s)
}

// FindStringSubmatch delegates to the underlying compiled regexp.
func (c Cell) FindStringSubmatch(s string) []string {
	if c.compiled == nil {
		return nil
	}
	return c.compiled.FindStringSubmatch(s)
}

// SubexpNames delegates to the underlying compiled regexp.
func (c Cell) SubexpNames() []string {
	if c.compiled == nil {
		return nil
	}
	return c.compiled.SubexpNames()
}

// ReplaceAllString delegates to the underlying compiled regexp.
func (c Cell) ReplaceAllString(src, repl string) string {
	if c.compiled == nil {
		return src
	}
	return c.compiled.ReplaceAllString(src, repl)
}

// Clone recompiles the source pattern into a fresh Cell that shares no state
// with c. Cell is already safe to copy by value (regexp.Regexp is safe for
// concurrent use by multiple goroutines once compiled), so Clone exists for
// callers that want an independent compiled object rather than a shared
// pointer -- e.g. tests asserting that a deep-copied IndexTable doesn't
// alias the original's matchers.
func (c Cell) Clone() (Cell, error) {
	if c.compiled == nil {
		return Cell{}, nil
	}
	return New(c.source)
}
