// Package scandeps extracts direct dependency names from raw module source
// text.
//
// The scan is lexical, not syntactic: it matches every occurrence of a
// single-argument call whose argument is one quoted string literal, e.g.
// require('./util') or require("lib/ajax"). A call inside a comment or a
// string that happens to match is extracted too; that is an accepted
// limitation of the design, and tightening it would change observable
// behavior for modules that rely on it.
package scandeps

import (
	"fmt"
	"regexp"
)

// DefaultCall is the call name scanned for when none is configured.
const DefaultCall = "require"

// Scanner extracts dependency names for one configured call name.
type Scanner struct {
	re *regexp.Regexp
}

// New creates a scanner for the given call name. An empty call name means
// DefaultCall.
func New(call string) *Scanner {
	if call == "" {
		call = DefaultCall
	}
	pattern := fmt.Sprintf(`%s\s*\(\s*(?:'([^']*)'|"([^"]*)")\s*\)`, regexp.QuoteMeta(call))
	return &Scanner{re: regexp.MustCompile(pattern)}
}

// Extract returns the raw import names found in src, in order of
// appearance. Duplicates are preserved: a module that imports the same
// name twice gets the same loaded value bound to each occurrence, so the
// caller re-zips the returned names against loaded modules positionally.
func (s *Scanner) Extract(src []byte) []string {
	matches := s.re.FindAllSubmatch(src, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if m[1] != nil {
			names = append(names, string(m[1]))
		} else {
			names = append(names, string(m[2]))
		}
	}
	return names
}
