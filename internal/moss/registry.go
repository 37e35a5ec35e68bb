package moss

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

var ErrUnknownSource = errors.New("unknown source")

// Registry maps source names to integrations. It is built once at startup.
type Registry struct {
	integrations map[string]*Integration
}

func NewRegistry(integrations ...*Integration) (*Registry, error) {
	r := &Registry{integrations: make(map[string]*Integration, len(integrations))}

	for _, i := range integrations {
		if i == nil {
			return nil, fmt.Errorf("integration is nil")
		}

		if _, ok := r.integrations[i.Source()]; ok {
			return nil, fmt.Errorf("source[%s] is registered twice", i.Source())
		}

		r.integrations[i.Source()] = i
	}

	return r, nil
}

func (r *Registry) Get(source string) (*Integration, error) {
	i, ok := r.integrations[source]
	if !ok {
		return nil, fmt.Errorf("source[%s]: %w", source, ErrUnknownSource)
	}
	return i, nil
}

// Sources returns the registered source names in sorted order.
func (r *Registry) Sources() []string {
	sources := lo.Keys(r.integrations)
	slices.Sort(sources)
	return sources
}
