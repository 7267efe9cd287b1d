package analysis

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
	"golang.org/x/exp/maps"
)

// Versioned is the slice of the Model contract the registry needs; it lets
// models with different payload types share one listing.
type Versioned interface {
	Version() domain.ModelVersion
}

// Registry tracks the analyzers available in a deployment by name.
type Registry interface {
	Register(name string, model Versioned) error
	Get(name string) (Versioned, error)
	ListModels() []ModelInfo
}

type ModelInfo struct {
	Name    string
	Version domain.ModelVersion
}

type registry struct {
	mu     sync.RWMutex
	models map[string]Versioned
}

func NewRegistry() Registry {
	return &registry{models: make(map[string]Versioned)}
}

func (r *registry) Register(name string, model Versioned) error {
	if name == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if model == nil {
		return fmt.Errorf("model cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.models[name]; exists {
		return fmt.Errorf("model %q is already registered", name)
	}

	r.models[name] = model
	return nil
}

func (r *registry) Get(name string) (Versioned, error) {
	r.mu.RLock()
	model, exists := r.models[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("model %q is not registered", name)
	}
	return model, nil
}

func (r *registry) ListModels() []ModelInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := maps.Keys(r.models)
	sort.Strings(names)

	infos := make([]ModelInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, ModelInfo{Name: name, Version: r.models[name].Version()})
	}
	return infos
}
