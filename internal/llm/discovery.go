package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ModelLister lists the model IDs a provider serves
type ModelLister interface {
	ListModelIDs(ctx context.Context) ([]string, error)
}

// ModelResolver returns a model name, discovering it on first use when no
// fixed model is configured. A discovered name is kept for the process
// lifetime; concurrent first calls share one discovery request.
type ModelResolver struct {
	fixed     string
	preferred []string
	lister    ModelLister

	group    singleflight.Group
	mu       sync.RWMutex
	resolved string
}

// NewFixedModel returns a resolver that always answers model
func NewFixedModel(model string) *ModelResolver {
	return &ModelResolver{fixed: model}
}

// NewDiscoveredModel returns a resolver that asks lister on first use
func NewDiscoveredModel(lister ModelLister, preferred []string) *ModelResolver {
	return &ModelResolver{lister: lister, preferred: preferred}
}

// Resolve returns the model to use for the next call
func (r *ModelResolver) Resolve(ctx context.Context) (string, error) {
	if r.fixed != "" {
		return r.fixed, nil
	}

	r.mu.RLock()
	resolved := r.resolved
	r.mu.RUnlock()
	if resolved != "" {
		return resolved, nil
	}

	v, err, _ := r.group.Do("model", func() (interface{}, error) {
		r.mu.RLock()
		cached := r.resolved
		r.mu.RUnlock()
		if cached != "" {
			return cached, nil
		}

		ids, err := r.lister.ListModelIDs(ctx)
		if err != nil {
			return "", fmt.Errorf("model discovery: %w", err)
		}

		model := pickModel(ids, r.preferred)
		if model == "" {
			return "", fmt.Errorf("model discovery: %w: provider returned no models", ErrProviderFault)
		}

		r.mu.Lock()
		r.resolved = model
		r.mu.Unlock()
		return model, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func pickModel(ids, preferred []string) string {
	for _, want := range preferred {
		for _, id := range ids {
			if id == want || strings.TrimPrefix(id, "models/") == strings.TrimPrefix(want, "models/") {
				return id
			}
		}
	}
	for _, id := range ids {
		if strings.TrimSpace(id) != "" {
			return id
		}
	}
	return ""
}
