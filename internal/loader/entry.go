package loader

import (
	"context"

	"github.com/specialistvlad/modloadgo/internal/ctxlog"
	"github.com/specialistvlad/modloadgo/internal/sandbox"
)

// Run loads names against the synthetic start identifier and invokes cont
// exactly once with the loaded values, in request order. If any load
// fails, cont is never invoked and the error is the only outcome.
func (s *Session) Run(ctx context.Context, names []string, cont func(modules ...any)) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Entry load starting.", "names", names)

	mods, err := s.Load(ctx, StartID, names)
	if err != nil {
		return err
	}
	cont(mods...)
	return nil
}

// RunSource runs a module body given directly as raw source text, without
// a fetch: its dependency names are scanned out of src, loaded against the
// start identifier, and the body is executed with them bound. cont
// receives the resulting module value.
func (s *Session) RunSource(ctx context.Context, src []byte, cont func(value any)) error {
	body, err := s.engine.Compile(StartID, src)
	if err != nil {
		return err
	}
	return s.runBody(ctx, s.scan.Extract(src), body, cont)
}

// RunBody runs an already-compiled module body. A compiled body cannot be
// re-scanned for imports, so the caller supplies the raw import names the
// body will request.
func (s *Session) RunBody(ctx context.Context, imports []string, body sandbox.Body, cont func(value any)) error {
	return s.runBody(ctx, imports, body, cont)
}

func (s *Session) runBody(ctx context.Context, names []string, body sandbox.Body, cont func(value any)) error {
	ids, err := s.resolveAll(StartID, names)
	if err != nil {
		return err
	}
	deps, err := s.loadAll(ctx, StartID, ids)
	if err != nil {
		return err
	}
	require, err := bind(StartID, names, deps)
	if err != nil {
		return err
	}
	value, err := execute(body, StartID, require)
	if err != nil {
		return err
	}
	cont(value)
	return nil
}
