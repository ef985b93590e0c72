package builtin

import (
	"github.com/feedtools/feed-optimizer/internal/config"
	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// Optimizers returns the registration table for the built-in rule
// set. The table is fixed at build time: adding a rule means adding a
// registration here, which keeps discovery explicit and lets the
// registry validate the whole set on first load.
func Optimizers(cfg *config.Loader, prober ImageProber) []optimizer.Registration {
	stateless := func(opt optimizer.Optimizer) optimizer.Factory {
		return func(types.MinedAttributes) optimizer.Optimizer { return opt }
	}

	return []optimizer.Registration{
		optimizer.Register("identity-optimizer", stateless(&IdentityOptimizer{})),
		optimizer.Register("title-length-optimizer", stateless(&TitleLengthOptimizer{})),
		optimizer.Register("gtin-optimizer", stateless(&GTINOptimizer{})),
		optimizer.Register("mpn-optimizer", stateless(&MPNOptimizer{})),
		optimizer.Register("color-length-optimizer", stateless(&ColorLengthOptimizer{})),
		optimizer.Register("product-type-length-optimizer", stateless(&ProductTypeLengthOptimizer{})),
		optimizer.Register("size-length-optimizer", stateless(&SizeLengthOptimizer{})),
		optimizer.Register("invalid-chars-optimizer", stateless(&InvalidCharsOptimizer{})),
		optimizer.Register("identifier-exists-optimizer", stateless(&IdentifierExistsOptimizer{})),
		optimizer.Register("condition-optimizer", stateless(&ConditionOptimizer{cfg: cfg})),
		optimizer.Register("adult-optimizer", stateless(&AdultOptimizer{cfg: cfg})),
		optimizer.Register("free-shipping-optimizer", stateless(&FreeShippingOptimizer{cfg: cfg})),
		optimizer.Register("promo-text-removal-optimizer", stateless(&PromoTextRemovalOptimizer{cfg: cfg})),
		optimizer.Register("shopping-exclusion-optimizer", stateless(&ShoppingExclusionOptimizer{cfg: cfg})),
		optimizer.Register("title-word-order-optimizer", stateless(&TitleWordOrderOptimizer{cfg: cfg})),
		optimizer.Register("image-link-optimizer", stateless(NewImageLinkOptimizer(prober))),
		optimizer.Register("title-optimizer", func(mined types.MinedAttributes) optimizer.Optimizer {
			return &TitleOptimizer{mined: mined}
		}),
		optimizer.Register("description-optimizer", func(mined types.MinedAttributes) optimizer.Optimizer {
			return &DescriptionOptimizer{mined: mined}
		}),
	}
}

// Registry builds the builtin registry over the static table.
func Registry(cfg *config.Loader, prober ImageProber) *optimizer.Registry {
	return optimizer.NewRegistry(optimizer.SourceBuiltin,
		optimizer.StaticSource(Optimizers(cfg, prober)))
}
