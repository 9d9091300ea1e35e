package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

func productWithTiers(tiers ...models.PriceTier) *models.Product {
	return &models.Product{
		ID:         uuid.New(),
		Name:       "Ceramic Vase",
		Price:      dec("100.00"),
		PriceTiers: tiers,
	}
}

func TestResolveUnitPriceNoTiers(t *testing.T) {
	product := productWithTiers()
	assert.True(t, dec("100.00").Equal(ResolveUnitPrice(product, 1)))

	product.PromotionalPrice = decPtr("80.00")
	assert.True(t, dec("80.00").Equal(ResolveUnitPrice(product, 500)))
}

func TestResolveUnitPriceHighestQualifyingTierWins(t *testing.T) {
	product := productWithTiers(
		models.PriceTier{MinQuantity: 10, Price: dec("90.00")},
		models.PriceTier{MinQuantity: 50, Price: dec("75.00")},
		models.PriceTier{MinQuantity: 100, Price: dec("60.00")},
	)

	assert.True(t, dec("90.00").Equal(ResolveUnitPrice(product, 10)))
	assert.True(t, dec("90.00").Equal(ResolveUnitPrice(product, 49)))
	assert.True(t, dec("75.00").Equal(ResolveUnitPrice(product, 50)))
	assert.True(t, dec("60.00").Equal(ResolveUnitPrice(product, 1000)))
}

func TestResolveUnitPriceTierOrderIndependent(t *testing.T) {
	shuffled := productWithTiers(
		models.PriceTier{MinQuantity: 100, Price: dec("60.00")},
		models.PriceTier{MinQuantity: 10, Price: dec("90.00")},
		models.PriceTier{MinQuantity: 50, Price: dec("75.00")},
	)

	assert.True(t, dec("75.00").Equal(ResolveUnitPrice(shuffled, 60)))
}

func TestResolveUnitPriceNoQualifyingTierFallsBack(t *testing.T) {
	product := productWithTiers(
		models.PriceTier{MinQuantity: 10, Price: dec("90.00")},
	)

	assert.True(t, dec("100.00").Equal(ResolveUnitPrice(product, 9)))

	product.PromotionalPrice = decPtr("85.00")
	assert.True(t, dec("85.00").Equal(ResolveUnitPrice(product, 5)))
}

func TestResolveUnitPriceDuplicateThresholdDeterministic(t *testing.T) {
	product := productWithTiers(
		models.PriceTier{MinQuantity: 10, Price: dec("90.00")},
		models.PriceTier{MinQuantity: 10, Price: dec("85.00")},
	)

	assert.True(t, dec("90.00").Equal(ResolveUnitPrice(product, 20)))
}
