package optimizer

import (
	"fmt"
	"sync"
)

// Registration associates one optimizer parameter with the factory
// that builds it. Registries for different sources (builtin vs plugin)
// are separate instances and are never merged.
type Registration struct {
	Parameter string
	New       Factory
}

// Source names identifying the two optimizer registries.
const (
	SourceBuiltin = "builtin"
	SourcePlugins = "plugins"
)

// Registry holds the optimizers discovered from one source. Discovery
// runs at most once, on first access, and the result is cached for the
// process lifetime: startup stays cheap, the first request pays the
// one-time cost, and every later access is a cache hit. Concurrent
// first accesses are safe.
type Registry struct {
	source string
	load   func() ([]Registration, error)

	once          sync.Once
	registrations []Registration
	err           error
}

// NewRegistry creates a registry over a discovery function for the
// named source. The discovery function is not invoked until the first
// call to Optimizers or Load.
func NewRegistry(source string, load func() ([]Registration, error)) *Registry {
	return &Registry{source: source, load: load}
}

// Source returns the name of the source this registry discovers from.
func (r *Registry) Source() string {
	return r.source
}

// Optimizers returns the cached registrations, running discovery on
// first use. An empty source is a valid steady state (a deployment may
// ship no plugins); a discovery error or an invalid registration is a
// configuration error and is returned on every access.
func (r *Registry) Optimizers() ([]Registration, error) {
	r.once.Do(func() {
		regs, err := r.load()
		if err != nil {
			r.err = fmt.Errorf("discovering %s optimizers: %w", r.source, err)
			return
		}
		if err := validateRegistrations(r.source, regs); err != nil {
			r.err = err
			return
		}
		r.registrations = regs
	})
	return r.registrations, r.err
}

// Load forces discovery eagerly so configuration errors surface at
// startup instead of on the first request.
func (r *Registry) Load() error {
	_, err := r.Optimizers()
	return err
}

// validateRegistrations rejects registrations with missing or
// duplicated parameters. A missing parameter means the optimizer is
// structurally broken and must fail loudly, not be skipped.
func validateRegistrations(source string, regs []Registration) error {
	seen := make(map[string]bool, len(regs))
	for _, reg := range regs {
		if reg.Parameter == "" {
			return fmt.Errorf("%s registry: optimizer registered without a parameter", source)
		}
		if reg.New == nil {
			return fmt.Errorf("%s registry: optimizer %s registered without a factory", source, reg.Parameter)
		}
		if seen[reg.Parameter] {
			return fmt.Errorf("%s registry: duplicate optimizer parameter %s", source, reg.Parameter)
		}
		seen[reg.Parameter] = true
	}
	return nil
}

// factoryIndex maps registered parameters to their factories.
func factoryIndex(regs []Registration) map[string]Factory {
	index := make(map[string]Factory, len(regs))
	for _, reg := range regs {
		index[reg.Parameter] = reg.New
	}
	return index
}

// StaticSource adapts a fixed registration list into a discovery
// function, for registries whose optimizer set is known at build time.
func StaticSource(regs []Registration) func() ([]Registration, error) {
	return func() ([]Registration, error) {
		return regs, nil
	}
}

// Register is a convenience for building a Registration from an
// optimizer prototype factory.
func Register(parameter string, factory Factory) Registration {
	return Registration{Parameter: parameter, New: factory}
}
