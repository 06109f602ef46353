// Package depgraph maintains the dependency graph a loader session
// discovers as it walks module sources.
//
// Unlike a build-system graph, this one is not known up front: edges are
// recorded incrementally, as each module's source arrives and its imports
// are resolved. Cycle detection therefore happens at edge insertion — an
// edge whose reverse path already exists would close a cycle and is
// rejected.
package depgraph

import (
	"errors"
	"fmt"
	"sync"
)

// ErrCycle is wrapped by errors returned for cycle-closing edges.
var ErrCycle = errors.New("dependency cycle")

type node struct {
	id   string
	deps map[string]*node
}

// Graph is a thread-safe directed graph of canonical module identifiers.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// ensureNode returns the node for id, creating it if needed. Callers must
// hold the write lock.
func (g *Graph) ensureNode(id string) *node {
	n, ok := g.nodes[id]
	if !ok {
		n = &node{id: id, deps: make(map[string]*node)}
		g.nodes[id] = n
	}
	return n
}

// AddDependency records that fromID depends on toID. If the edge would
// close a cycle — including a self-reference — it is not added and an
// error wrapping ErrCycle is returned.
func (g *Graph) AddDependency(fromID, toID string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if fromID == toID {
		return fmt.Errorf("%w: %q depends on itself", ErrCycle, fromID)
	}

	from := g.ensureNode(fromID)
	to := g.ensureNode(toID)

	// The new edge closes a cycle exactly when toID already reaches
	// fromID through recorded dependencies.
	if g.reaches(to, fromID, make(map[string]bool)) {
		return fmt.Errorf("%w: %q is already a transitive dependent of %q", ErrCycle, fromID, toID)
	}

	from.deps[toID] = to
	return nil
}

// reaches reports whether target is reachable from n via dependency edges.
// Callers must hold at least the read lock.
func (g *Graph) reaches(n *node, target string, visited map[string]bool) bool {
	if n.id == target {
		return true
	}
	if visited[n.id] {
		return false
	}
	visited[n.id] = true
	for _, dep := range n.deps {
		if g.reaches(dep, target, visited) {
			return true
		}
	}
	return false
}

// Dependencies returns the recorded direct dependencies of id.
func (g *Graph) Dependencies(id string) []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	deps := make([]string, 0, len(n.deps))
	for depID := range n.deps {
		deps = append(deps, depID)
	}
	return deps
}

// Len reports the number of known nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}
