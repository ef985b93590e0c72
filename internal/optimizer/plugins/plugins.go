// Package plugins holds user-built optimizers. Plugins satisfy the
// same contract as the built-in rules but live in their own registry:
// the plugin pipeline runs after the built-in pipeline and sees its
// output, and a broken plugin can never take the batch endpoint down.
package plugins

import (
	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// Optimizers returns the plugin registration table. Add your own
// optimizer by appending a registration; see MyPlugin for the
// expected shape. An empty table is a valid steady state.
func Optimizers() []optimizer.Registration {
	return []optimizer.Registration{
		optimizer.Register("my-plugin", func(types.MinedAttributes) optimizer.Optimizer {
			return &MyPlugin{}
		}),
	}
}

// Registry builds the plugin registry over the static table.
func Registry() *optimizer.Registry {
	return optimizer.NewRegistry(optimizer.SourcePlugins,
		optimizer.StaticSource(Optimizers()))
}
