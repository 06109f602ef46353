// Package loader implements the concurrent load engine. A Session ties
// together the name resolver, the module store, the dependency scanner,
// a source fetcher, and an execution engine.
//
// Loading is a fork/join recursion: a module's imports are resolved,
// loaded concurrently, and joined before the module's own body executes
// with its dependencies in hand. The store coalesces concurrent requests
// for the same identifier onto one in-flight load, and a dependency graph
// built edge by edge rejects any import that would close a cycle.
package loader
