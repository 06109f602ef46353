package config

import (
	"github.com/specialistvlad/modloadgo/internal/globals"
)

// Model is the merged, format-agnostic result of loading configuration.
type Model struct {
	// Source is the module source location: a directory path or an HTTP
	// base URL.
	Source string
	// Suffix is appended to canonical identifiers to form fetch targets.
	Suffix string
	// Call is the dependency-scanner call name.
	Call string
	// Entry lists the import names loaded at startup.
	Entry []string
	// Globals maps bare import names to their configured entries.
	Globals map[string]globals.Entry
}

// Table builds the global name table from the configured entries.
func (m *Model) Table() *globals.Table {
	return globals.New(m.Globals)
}
