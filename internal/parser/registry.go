package parser

import (
	"sort"
	"sync"
)

// Element is anything built from a markup node by a registered constructor.
type Element interface {
	// Node returns the backing subtree. The element does not own it.
	Node() *Node
}

// Constructor builds the element for a node matched by tag name.
type Constructor func(n *Node, f *Factory) Element

// Registry maps tag names to element constructors.
//
// Registering a tag that is already present replaces the previous
// constructor: the last registration wins.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// DefaultRegistry is the registry shared by every document parser that
// does not supply its own.
var DefaultRegistry = NewRegistry()

// Register binds ctor to tag and reports whether an earlier binding was
// replaced.
func (r *Registry) Register(tag string, ctor Constructor) (replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, replaced = r.ctors[tag]
	r.ctors[tag] = ctor
	return replaced
}

// Lookup returns the constructor bound to tag.
func (r *Registry) Lookup(tag string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[tag]
	return ctor, ok
}

// Tags returns every registered tag, sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.ctors))
	for tag := range r.ctors {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Clone returns an independent copy, handy for tests and for parsers that
// override a few tags without touching DefaultRegistry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := NewRegistry()
	for tag, ctor := range r.ctors {
		c.ctors[tag] = ctor
	}
	return c
}
