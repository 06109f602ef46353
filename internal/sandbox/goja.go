package sandbox

import (
	"fmt"
	"sync"

	"github.com/dop251/goja"
)

// GojaEngine executes module bodies as JavaScript on a goja runtime. The
// source is wrapped in a function taking (require, exports, module), the
// same convention CommonJS-style preludes use.
//
// A goja runtime is not safe for concurrent use, so one engine owns one
// runtime and serializes body execution on it. Compilation is lock-free:
// goja programs are immutable and runtime-independent.
type GojaEngine struct {
	mu sync.Mutex
	rt *goja.Runtime
}

// NewGojaEngine creates an engine with a fresh runtime.
func NewGojaEngine() *GojaEngine {
	return &GojaEngine{rt: goja.New()}
}

// Compile implements Engine.
func (e *GojaEngine) Compile(name string, src []byte) (Body, error) {
	wrapped := "(function (require, exports, module) {\n" + string(src) + "\n})"
	prog, err := goja.Compile(name, wrapped, false)
	if err != nil {
		return nil, fmt.Errorf("compiling module %q: %w", name, err)
	}
	return &gojaBody{engine: e, name: name, prog: prog}, nil
}

type gojaBody struct {
	engine *GojaEngine
	name   string
	prog   *goja.Program
}

// Run implements Body. The exports map is passed to the script as a live
// object: property writes land directly in the Go map. If the script
// replaces module.exports, the replacement (exported back to Go) is stored
// into the descriptor.
func (b *gojaBody) Run(require RequireFunc, exports map[string]any, module *Module) error {
	e := b.engine
	e.mu.Lock()
	defer e.mu.Unlock()
	rt := e.rt

	v, err := rt.RunProgram(b.prog)
	if err != nil {
		return fmt.Errorf("evaluating module %q: %w", b.name, err)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return fmt.Errorf("module %q did not evaluate to a function", b.name)
	}

	requireVal := rt.ToValue(func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		dep, err := require(name)
		if err != nil {
			panic(rt.NewGoError(err))
		}
		return rt.ToValue(dep)
	})
	exportsVal := rt.ToValue(exports)
	moduleObj := rt.NewObject()
	if err := moduleObj.Set("require", requireVal); err != nil {
		return err
	}
	if err := moduleObj.Set("exports", exportsVal); err != nil {
		return err
	}

	if _, err := fn(goja.Undefined(), requireVal, exportsVal, moduleObj); err != nil {
		return fmt.Errorf("running module %q: %w", b.name, err)
	}

	module.Exports = moduleObj.Get("exports").Export()
	return nil
}
