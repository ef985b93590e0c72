package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedtools/feed-optimizer/internal/config"
)

func TestRegistry_LoadsCleanly(t *testing.T) {
	registry := Registry(config.NewLoader(t.TempDir()), nil)

	require.NoError(t, registry.Load())

	regs, err := registry.Optimizers()
	require.NoError(t, err)
	assert.NotEmpty(t, regs)
}

func TestOptimizers_ParametersMatchTypes(t *testing.T) {
	regs := Optimizers(config.NewLoader(t.TempDir()), nil)

	for _, reg := range regs {
		opt := reg.New(nil)
		assert.Equal(t, reg.Parameter, opt.Parameter(),
			"registration parameter must match the optimizer's own parameter")
	}
}

func TestOptimizers_ContainsCoreRules(t *testing.T) {
	regs := Optimizers(config.NewLoader(t.TempDir()), nil)

	parameters := make(map[string]bool, len(regs))
	for _, reg := range regs {
		parameters[reg.Parameter] = true
	}

	for _, expected := range []string{
		"identity-optimizer",
		"title-optimizer",
		"title-length-optimizer",
		"title-word-order-optimizer",
		"description-optimizer",
		"gtin-optimizer",
		"mpn-optimizer",
		"color-length-optimizer",
		"product-type-length-optimizer",
		"size-length-optimizer",
		"invalid-chars-optimizer",
		"identifier-exists-optimizer",
		"condition-optimizer",
		"adult-optimizer",
		"free-shipping-optimizer",
		"promo-text-removal-optimizer",
		"shopping-exclusion-optimizer",
		"image-link-optimizer",
	} {
		assert.True(t, parameters[expected], "missing registration for %s", expected)
	}
}
