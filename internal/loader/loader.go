package loader

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/modloadgo/internal/ctxlog"
	"github.com/specialistvlad/modloadgo/internal/depgraph"
	"github.com/specialistvlad/modloadgo/internal/fetch"
	"github.com/specialistvlad/modloadgo/internal/globals"
	"github.com/specialistvlad/modloadgo/internal/modstore"
	"github.com/specialistvlad/modloadgo/internal/resolver"
	"github.com/specialistvlad/modloadgo/internal/sandbox"
	"github.com/specialistvlad/modloadgo/internal/scandeps"
)

// StartID is the synthetic identifier entry-point imports resolve against.
const StartID = ""

// DefaultSuffix is appended to a canonical identifier to form its fetch
// target when no suffix is configured.
const DefaultSuffix = ".js"

// Config assembles a session's collaborators.
type Config struct {
	// Globals resolves bare import names. May be nil, in which case every
	// bare name fails as unknown.
	Globals *globals.Table
	// Fetcher retrieves raw module source text.
	Fetcher fetch.Fetcher
	// Engine turns source text into runnable module bodies.
	Engine sandbox.Engine
	// Suffix is appended to identifiers to form fetch targets. Empty
	// means DefaultSuffix.
	Suffix string
	// Call is the call name the dependency scanner matches. Empty means
	// scandeps.DefaultCall.
	Call string
}

// Session owns the mutable state of one loading run: the module cache, the
// in-flight set, and the incrementally discovered dependency graph.
// Sessions are independent; an embedding application may run several at
// once and dispose of them separately.
type Session struct {
	store  *modstore.Store
	graph  *depgraph.Graph
	res    *resolver.Resolver
	fetch  fetch.Fetcher
	engine sandbox.Engine
	scan   *scandeps.Scanner
	suffix string
}

// NewSession creates a session from the given configuration.
func NewSession(cfg Config) *Session {
	store := modstore.New()
	suffix := cfg.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &Session{
		store:  store,
		graph:  depgraph.New(),
		res:    resolver.New(cfg.Globals, store),
		fetch:  cfg.Fetcher,
		engine: cfg.Engine,
		scan:   scandeps.New(cfg.Call),
		suffix: suffix,
	}
}

// Load resolves names against base and loads every named module, plus its
// transitive dependencies. The returned values are in request order,
// regardless of the order in which individual loads complete. A single
// failure aborts the whole group.
func (s *Session) Load(ctx context.Context, base string, names []string) ([]any, error) {
	ids, err := s.resolveAll(base, names)
	if err != nil {
		return nil, err
	}
	return s.loadAll(ctx, base, ids)
}

// Cached returns the cached module value for a canonical identifier.
func (s *Session) Cached(id string) (any, bool) {
	return s.store.Get(id)
}

// resolveAll maps raw import names to canonical identifiers against one
// base.
func (s *Session) resolveAll(base string, names []string) ([]string, error) {
	ids := make([]string, len(names))
	for i, name := range names {
		id, err := s.res.Resolve(base, name)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// loadAll forks one load per identifier and joins on all of them. Result
// order matches ids order.
func (s *Session) loadAll(ctx context.Context, parent string, ids []string) ([]any, error) {
	results := make([]any, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			v, err := s.loadOne(gctx, parent, id)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// loadOne loads a single identifier on behalf of parent. The dependency
// edge is recorded first: an edge that would close a cycle fails the load
// immediately, before any cache or in-flight bookkeeping. Otherwise a
// cached value is reported as-is, an in-flight load is joined, and an
// unclaimed identifier is fetched and materialized by this goroutine.
func (s *Session) loadOne(ctx context.Context, parent, id string) (any, error) {
	logger := ctxlog.FromContext(ctx)

	if err := s.graph.AddDependency(parent, id); err != nil {
		if errors.Is(err, depgraph.ErrCycle) {
			return nil, &CycleError{ID: id, Err: err}
		}
		return nil, err
	}

	state, v, pending := s.store.Begin(id)
	switch state {
	case modstore.Cached:
		logger.Debug("Module cache hit.", "id", id)
		return v, nil

	case modstore.Joined:
		logger.Debug("Coalescing onto in-flight load.", "id", id, "requestedBy", parent)
		select {
		case <-pending.Done():
			return pending.Result()
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	logger.Debug("Starting module load.", "id", id, "requestedBy", parent)
	value, err := s.materialize(ctx, id)
	s.store.Finish(id, value, err)
	if err != nil {
		logger.Debug("Module load failed.", "id", id, "error", err)
		return nil, err
	}
	logger.Debug("Module load complete.", "id", id)
	return value, nil
}

// materialize fetches an identifier's source, loads its dependencies, and
// executes its body. It is called exactly once per identifier per session.
func (s *Session) materialize(ctx context.Context, id string) (any, error) {
	logger := ctxlog.FromContext(ctx)

	target := id + s.suffix
	logger.Debug("Fetching module source.", "id", id, "target", target)
	src, err := s.fetch.Fetch(ctx, target)
	if err != nil {
		return nil, &FetchError{Target: target, Err: err}
	}

	names := s.scan.Extract(src)
	logger.Debug("Extracted dependency names.", "id", id, "count", len(names))

	ids, err := s.resolveAll(id, names)
	if err != nil {
		return nil, err
	}
	deps, err := s.loadAll(ctx, id, ids)
	if err != nil {
		return nil, err
	}

	require, err := bind(id, names, deps)
	if err != nil {
		return nil, err
	}

	body, err := s.engine.Compile(id, src)
	if err != nil {
		return nil, err
	}
	return execute(body, id, require)
}

// bind zips extracted raw import names against their loaded modules and
// returns the lookup function injected into the module body. The body
// looks dependencies up by the exact string literal it used in its source,
// so duplicate literals land on the same value.
func bind(id string, names []string, deps []any) (sandbox.RequireFunc, error) {
	if len(names) != len(deps) {
		return nil, fmt.Errorf("%w: %d names, %d modules for %q", ErrMismatchedZip, len(names), len(deps), id)
	}
	byName := make(map[string]any, len(names))
	for i, name := range names {
		byName[name] = deps[i]
	}
	return func(name string) (any, error) {
		v, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("module %q was not declared as a dependency of %q", name, id)
		}
		return v, nil
	}, nil
}

// execute runs a body with the three-value calling convention and returns
// the resulting module value: whatever the module descriptor's exports
// reference points at after the body returns.
func execute(body sandbox.Body, id string, require sandbox.RequireFunc) (any, error) {
	exports := make(map[string]any)
	module := &sandbox.Module{Name: id, Require: require, Exports: exports}
	if err := body.Run(require, exports, module); err != nil {
		return nil, fmt.Errorf("executing module %q: %w", id, err)
	}
	return module.Exports, nil
}
