// Package globals implements the global name table: the process-wide
// mapping that gives "bare" import names (names that are neither absolute
// nor relative) a meaning. Each name maps to one of three entry shapes: a
// path substitution, an inline module value that is already available
// without a fetch, or a resolver function that computes one of the former
// two on demand.
//
// A table is configured once, before any load begins, and is read-only for
// the duration of a loader session.
package globals

import (
	"errors"
	"fmt"
)

// ErrUnknownName is returned when a bare import name has no table entry.
var ErrUnknownName = errors.New("unknown global name")

// ErrIllegalMapping is returned when a table entry (or the result of a
// resolver entry) has no recognized shape.
var ErrIllegalMapping = errors.New("illegal global mapping")

// Kind discriminates the entry variants.
type Kind int

const (
	// KindInvalid is the zero value; a table never stores it.
	KindInvalid Kind = iota
	// KindPath substitutes the bare name with a canonical path.
	KindPath
	// KindInline carries an already-available module value.
	KindInline
	// KindResolver computes a Path or Inline entry at lookup time.
	KindResolver
)

// Entry is one tagged-variant value of the table. Exactly one of the
// payload fields is meaningful, selected by Kind.
type Entry struct {
	Kind  Kind
	Path  string
	Value any
	Fn    func(name string) (Entry, error)
}

// Path creates a path-substitution entry.
func Path(p string) Entry {
	return Entry{Kind: KindPath, Path: p}
}

// Inline creates an entry carrying an already-available module value.
func Inline(v any) Entry {
	return Entry{Kind: KindInline, Value: v}
}

// Resolver creates an entry whose meaning is computed at lookup time. The
// function must return a Path or Inline entry; returning another Resolver
// is an illegal mapping.
func Resolver(fn func(name string) (Entry, error)) Entry {
	return Entry{Kind: KindResolver, Fn: fn}
}

// Table maps bare import names to entries. The backing is either a static
// map or a live lookup function supplied by the embedding application.
type Table struct {
	static map[string]Entry
	lookup func(name string) (Entry, bool)
}

// New creates a table backed by a static mapping. The map is not copied;
// callers must not mutate it after the table is in use.
func New(entries map[string]Entry) *Table {
	return &Table{static: entries}
}

// NewFunc creates a table backed by a live lookup function.
func NewFunc(lookup func(name string) (Entry, bool)) *Table {
	return &Table{lookup: lookup}
}

// Lookup resolves a bare name to a Path or Inline entry. Resolver entries
// are invoked and their result validated; chained resolvers are rejected.
func (t *Table) Lookup(name string) (Entry, error) {
	if t == nil {
		return Entry{}, fmt.Errorf("%w: %q (no global name table configured)", ErrUnknownName, name)
	}

	var (
		e  Entry
		ok bool
	)
	if t.lookup != nil {
		e, ok = t.lookup(name)
	} else {
		e, ok = t.static[name]
	}
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}

	if e.Kind == KindResolver {
		if e.Fn == nil {
			return Entry{}, fmt.Errorf("%w: resolver entry for %q has no function", ErrIllegalMapping, name)
		}
		resolved, err := e.Fn(name)
		if err != nil {
			return Entry{}, fmt.Errorf("resolving global name %q: %w", name, err)
		}
		e = resolved
	}

	switch e.Kind {
	case KindPath, KindInline:
		return e, nil
	default:
		return Entry{}, fmt.Errorf("%w: entry for %q has kind %d", ErrIllegalMapping, name, e.Kind)
	}
}
