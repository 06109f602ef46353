package config

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/modloadgo/internal/ctxlog"
	"github.com/specialistvlad/modloadgo/internal/fsutil"
	"github.com/specialistvlad/modloadgo/internal/globals"
)

// file mirrors the top-level HCL structure of a config file.
type file struct {
	Loader  *loaderBlock  `hcl:"loader,block"`
	Globals []globalBlock `hcl:"global,block"`
}

// loaderBlock configures the loader session itself.
type loaderBlock struct {
	Source string   `hcl:"source,optional"`
	Suffix string   `hcl:"suffix,optional"`
	Call   string   `hcl:"call_name,optional"`
	Entry  []string `hcl:"entry,optional"`
}

// globalBlock declares one bare import name. Exactly one of path or value
// must be set: path substitutes the name with a canonical identifier,
// value makes the name an inline module that is never fetched.
type globalBlock struct {
	Name  string    `hcl:"name,label"`
	Path  string    `hcl:"path,optional"`
	Value cty.Value `hcl:"value,optional"`
}

// Load reads loader configuration from path, which may be a single .hcl
// file or a directory searched recursively. Multiple files merge into one
// model; at most one loader block and one declaration per global name are
// allowed across the set.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config path %q: %w", path, err)
	}

	paths := []string{path}
	if info.IsDir() {
		paths, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("searching %q for config files: %w", path, err)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .hcl config files found under %q", path)
	}
	logger.Debug("Found config files to load.", "files", paths)

	model := &Model{Globals: make(map[string]globals.Entry)}
	parser := hclparse.NewParser()
	sawLoader := false

	for _, filePath := range paths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", filePath, diags)
		}

		var f file
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &f); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", filePath, diags)
		}

		if f.Loader != nil {
			if sawLoader {
				return nil, fmt.Errorf("duplicate loader block in %s: only one loader block is allowed", filePath)
			}
			sawLoader = true
			model.Source = f.Loader.Source
			model.Suffix = f.Loader.Suffix
			model.Call = f.Loader.Call
			model.Entry = f.Loader.Entry
		}

		for _, g := range f.Globals {
			if _, ok := model.Globals[g.Name]; ok {
				return nil, fmt.Errorf("duplicate global %q in %s", g.Name, filePath)
			}
			entry, err := entryFromBlock(g)
			if err != nil {
				return nil, fmt.Errorf("global %q in %s: %w", g.Name, filePath, err)
			}
			model.Globals[g.Name] = entry
		}

		logger.Debug("Loaded config file.", "file", filePath)
	}

	logger.Info("Configuration loaded.", "globals", len(model.Globals), "entry_names", len(model.Entry))
	return model, nil
}

// entryFromBlock converts one global block into a table entry.
func entryFromBlock(g globalBlock) (globals.Entry, error) {
	hasPath := g.Path != ""
	hasValue := !g.Value.IsNull()

	switch {
	case hasPath && hasValue:
		return globals.Entry{}, fmt.Errorf("path and value are mutually exclusive")
	case hasPath:
		return globals.Path(g.Path), nil
	case hasValue:
		v, err := ctyToGo(g.Value)
		if err != nil {
			return globals.Entry{}, err
		}
		return globals.Inline(v), nil
	default:
		return globals.Entry{}, fmt.Errorf("either path or value must be set")
	}
}
