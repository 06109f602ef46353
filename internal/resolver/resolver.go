package resolver

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/specialistvlad/modloadgo/internal/globals"
	"github.com/specialistvlad/modloadgo/internal/modstore"
)

// ErrIllegalBaseIdentifier is returned when the base of a resolution is not
// a legal canonical identifier.
var ErrIllegalBaseIdentifier = errors.New("illegal base identifier")

// pureAscentRegex matches identifiers that consist solely of ascent
// segments, e.g. ".." or "../../..".
var pureAscentRegex = regexp.MustCompile(`^\.\.(/\.\.)*$`)

// Resolver maps raw import names to canonical identifiers. Bare names are
// looked up in the global name table; inline values found there are
// pre-seeded into the session's module store.
type Resolver struct {
	globals *globals.Table
	store   *modstore.Store
}

// New creates a resolver backed by the given table and store. The table
// may be nil, in which case every bare name fails as unknown.
func New(table *globals.Table, store *modstore.Store) *Resolver {
	return &Resolver{globals: table, store: store}
}

// Valid reports whether id is a legal canonical identifier: it must not
// start with "./" and must not end with "/".
func Valid(id string) bool {
	return !strings.HasPrefix(id, "./") && !strings.HasSuffix(id, "/")
}

// PureAscent reports whether id consists solely of ascent segments. Such
// an identifier names a directory strictly above the current one.
func PureAscent(id string) bool {
	return pureAscentRegex.MatchString(id)
}

// ascend moves one level up from name. Ascending from the synthetic root
// produces an ascent segment, and ascending from a pure-ascent identifier
// prepends another one: ascent never cancels into descent. Otherwise the
// last path segment is dropped.
func ascend(name string) string {
	if name == "" {
		return ".."
	}
	if PureAscent(name) {
		return "../" + name
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[:i]
	}
	return ""
}

// fileDir returns the directory containing the file named by id. The
// synthetic root is its own directory, as is a pure-ascent identifier
// (which already names a directory rather than a file).
func fileDir(id string) string {
	if id == "" || PureAscent(id) {
		return id
	}
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[:i]
	}
	return ""
}

// join descends from dir with rest.
func join(dir, rest string) string {
	if dir == "" {
		return rest
	}
	if rest == "" {
		return dir
	}
	return dir + "/" + rest
}

// Resolve maps a raw import name, as written in a module's source, to a
// canonical identifier, resolving relative names against base.
//
// Absolute names (leading "/") pass through unchanged. "./rest" descends
// from the base's containing directory. Each "../" ascends one level,
// starting from the base itself (the first ascent being the move from the
// file to its directory). Anything else is a bare name and is looked up in
// the global name table: a path entry substitutes the name, while an
// inline entry pre-seeds the module store and resolves to the bare name
// itself.
func (r *Resolver) Resolve(base, name string) (string, error) {
	if !Valid(base) {
		return "", fmt.Errorf("%w: %q", ErrIllegalBaseIdentifier, base)
	}

	switch {
	case strings.HasPrefix(name, "/"):
		return name, nil

	case strings.HasPrefix(name, "./"):
		return canonical(join(fileDir(base), name[len("./"):]))

	case strings.HasPrefix(name, "../"):
		dir := base
		rest := name
		for strings.HasPrefix(rest, "../") {
			rest = rest[len("../"):]
			dir = ascend(dir)
		}
		return canonical(join(dir, rest))
	}

	entry, err := r.globals.Lookup(name)
	if err != nil {
		return "", err
	}
	switch entry.Kind {
	case globals.KindPath:
		return canonical(entry.Path)
	case globals.KindInline:
		if r.store != nil {
			r.store.Seed(name, entry.Value)
		}
		return name, nil
	default:
		// Unreachable: Lookup only returns Path or Inline entries.
		return "", fmt.Errorf("%w: unexpected entry kind for %q", globals.ErrIllegalMapping, name)
	}
}

// canonical validates that a resolution result is a legal canonical
// identifier.
func canonical(id string) (string, error) {
	if !Valid(id) {
		return "", fmt.Errorf("resolution produced non-canonical identifier %q", id)
	}
	return id, nil
}
