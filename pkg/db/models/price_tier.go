package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceTier captures quantity-break pricing per product. A tier applies when
// the requested quantity meets or exceeds MinQuantity.
type PriceTier struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_price_tiers_product_min_qty"`
	MinQuantity int             `gorm:"column:min_quantity;not null;uniqueIndex:idx_price_tiers_product_min_qty"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
