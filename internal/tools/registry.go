package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kheti-ai/kheti/internal/llm"
)

// Registry holds the closed set of tools available to the assistant
type Registry struct {
	tools map[string]Tool
	mu    sync.RWMutex
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool, replacing any previous tool of the same name
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = t
}

// Get returns a tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Declarations returns the tool set in the form providers send to the
// model, ordered by name.
func (r *Registry) Declarations() []llm.ToolDecl {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	decls := make([]llm.ToolDecl, 0, len(names))
	for _, name := range names {
		t := r.tools[name]
		decls = append(decls, llm.ToolDecl{
			Name:        t.Name(),
			Description: t.Description(),
			Params:      t.Params(),
		})
	}
	return decls
}

// Dispatch routes a model-requested call to the named tool
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (string, error) {
	t, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}
	return t.Call(ctx, args)
}
