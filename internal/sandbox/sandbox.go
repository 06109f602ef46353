// Package sandbox defines the execution boundary of the loader: how raw
// module source text becomes a runnable body, and the calling convention a
// body is invoked with.
//
// A body receives three values: a require function that maps the raw
// import names written in its source to their already-loaded module
// values, an exports container to populate, and a module descriptor
// exposing both. The body's side effect of populating the exports
// container, or replacing the descriptor's Exports reference wholesale,
// becomes the module value.
package sandbox

// RequireFunc looks up an already-loaded dependency by the raw import
// name used in the module's source, not by canonical identifier.
type RequireFunc func(name string) (any, error)

// Module is the descriptor handed to a running body.
type Module struct {
	// Name is the canonical identifier of the module being executed.
	Name string
	// Require resolves raw import names to loaded dependencies.
	Require RequireFunc
	// Exports is the module's export container. A body may replace it
	// wholesale; whatever it references after the body returns is the
	// module value.
	Exports any
}

// Body is a compiled module body, ready to run.
type Body interface {
	Run(require RequireFunc, exports map[string]any, module *Module) error
}

// Engine compiles raw source text into a runnable body.
type Engine interface {
	Compile(name string, src []byte) (Body, error)
}

// BodyFunc adapts a plain Go function to the Body interface. It serves
// the pre-compiled entry-point shape and engine-independent tests.
type BodyFunc func(require RequireFunc, exports map[string]any, module *Module) error

// Run implements Body.
func (f BodyFunc) Run(require RequireFunc, exports map[string]any, module *Module) error {
	return f(require, exports, module)
}
