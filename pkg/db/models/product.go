package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog listing shown on the storefront.
type Product struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name             string           `gorm:"column:name;not null"`
	Slug             string           `gorm:"column:slug;not null;uniqueIndex"`
	Description      *string          `gorm:"column:description"`
	Price            decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	PromotionalPrice *decimal.Decimal `gorm:"column:promotional_price;type:numeric(12,2)"`
	CategoryID       *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	Category         *Category        `gorm:"foreignKey:CategoryID"`
	IsActive         bool             `gorm:"column:is_active;not null;default:true"`
	Images           []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	PriceTiers       []PriceTier      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// MainImage returns the image flagged as primary, or the first one uploaded.
func (p *Product) MainImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsMain {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}
