package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
)

// ResolveUnitPrice returns the effective unit price for the requested
// quantity. When the product has quantity tiers, the tier with the highest
// MinQuantity not exceeding the quantity wins. Without tiers, or when the
// quantity reaches no tier, the promotional price applies if set, otherwise
// the base price.
func ResolveUnitPrice(product *models.Product, quantity int) decimal.Decimal {
	var selected *models.PriceTier
	for i := range product.PriceTiers {
		tier := &product.PriceTiers[i]
		if tier.MinQuantity > quantity {
			continue
		}
		if selected == nil || tier.MinQuantity > selected.MinQuantity {
			selected = tier
		}
	}
	if selected != nil {
		return selected.Price
	}
	return basePrice(product)
}

func basePrice(product *models.Product) decimal.Decimal {
	if product.PromotionalPrice != nil {
		return *product.PromotionalPrice
	}
	return product.Price
}
