package parser

import (
	"sort"
	"sync"

	domainErrors "github.com/thomas-vilte/gh-issues-importer/internal/errors"
)

// Registry holds the row parsers selectable by name.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]RowParser
}

// NewRegistry returns a registry preloaded with the built-in parsers.
func NewRegistry() *Registry {
	r := &Registry{
		parsers: make(map[string]RowParser),
	}
	registerBuiltins(r)
	return r
}

// Register adds a parser under name.
func (r *Registry) Register(name string, p RowParser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parsers[name]; exists {
		return domainErrors.ErrParserAlreadyRegistered.WithContext("parser", name)
	}

	r.parsers[name] = p
	return nil
}

// Lookup returns the parser registered under name. An empty name selects the
// default parser.
func (r *Registry) Lookup(name string) (RowParser, error) {
	if name == "" {
		name = DefaultName
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.parsers[name]
	if !exists {
		return nil, domainErrors.ErrUnknownParser.WithContext("parser", name)
	}
	return p, nil
}

// Names lists registered parsers in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
