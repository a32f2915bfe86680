package adapters

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddsfeed/internal/models"
)

// Constructor builds a SourceAdapter instance.
type Constructor func(logger *logrus.Logger) SourceAdapter

// Registry resolves source-type strings to adapters. Lookups are
// case-insensitive; unknown source types resolve to the generic adapter
// rather than failing.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
	logger       *logrus.Logger
}

// NewRegistry creates a registry pre-populated with the built-in adapters.
func NewRegistry(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	r := &Registry{
		constructors: make(map[string]Constructor),
		logger:       logger,
	}
	r.constructors[string(models.SourceOddsAPI)] = func(l *logrus.Logger) SourceAdapter {
		return NewOddsAPIAdapter(l)
	}
	r.constructors[string(models.SourceESPN)] = func(l *logrus.Logger) SourceAdapter {
		return NewESPNAdapter(l)
	}
	r.constructors[string(models.SourceGeneric)] = func(l *logrus.Logger) SourceAdapter {
		return NewGenericAdapter(nil, l)
	}
	return r
}

// Get resolves a source type to an adapter instance. Unknown types fall
// back to the generic adapter.
func (r *Registry) Get(sourceType string) SourceAdapter {
	key := strings.ToLower(strings.TrimSpace(sourceType))

	r.mu.RLock()
	ctor, ok := r.constructors[key]
	r.mu.RUnlock()

	if !ok {
		r.logger.WithField("source_type", sourceType).
			Warn("unknown adapter type, using generic adapter")
		return NewGenericAdapter(nil, r.logger)
	}
	return ctor(r.logger)
}

// Register adds a constructor under a new source-type name. The constructor
// must produce a non-nil SourceAdapter.
func (r *Registry) Register(name string, ctor Constructor) error {
	if name == "" {
		return fmt.Errorf("adapter name is required")
	}
	if ctor == nil {
		return fmt.Errorf("adapter constructor is required")
	}
	if ctor(r.logger) == nil {
		return fmt.Errorf("adapter constructor for %q produced nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[strings.ToLower(name)] = ctor
	r.logger.WithField("source_type", name).Info("registered adapter")
	return nil
}

// Known returns the registered source-type names in sorted order.
func (r *Registry) Known() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
