package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
	"github.com/vitrineshop/vitrine-backend/pkg/pagination"
)

// ProductDTO represents the admin product payload.
type ProductDTO struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	Description      *string          `json:"description,omitempty"`
	Price            decimal.Decimal  `json:"price"`
	PromotionalPrice *decimal.Decimal `json:"promotional_price,omitempty"`
	CategoryID       *uuid.UUID       `json:"category_id,omitempty"`
	CategoryName     *string          `json:"category_name,omitempty"`
	IsActive         bool             `json:"is_active"`
	Images           []ImageDTO       `json:"images"`
	PriceTiers       []PriceTierDTO   `json:"price_tiers"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ImageDTO captures product image metadata.
type ImageDTO struct {
	ID        uuid.UUID `json:"id"`
	Path      string    `json:"path"`
	IsMain    bool      `json:"is_main"`
	CreatedAt time.Time `json:"created_at"`
}

// PriceTierDTO represents a quantity price break.
type PriceTierDTO struct {
	ID          uuid.UUID       `json:"id"`
	MinQuantity int             `json:"min_quantity"`
	Price       decimal.Decimal `json:"price"`
}

// ProductPageDTO is one admin page of products.
type ProductPageDTO struct {
	Products []ProductDTO        `json:"products"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:               product.ID,
		Name:             product.Name,
		Slug:             product.Slug,
		Description:      product.Description,
		Price:            product.Price,
		PromotionalPrice: product.PromotionalPrice,
		CategoryID:       product.CategoryID,
		IsActive:         product.IsActive,
		Images:           []ImageDTO{},
		PriceTiers:       []PriceTierDTO{},
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}

	if product.Category != nil {
		dto.CategoryName = &product.Category.Name
	}

	for _, img := range product.Images {
		dto.Images = append(dto.Images, ImageDTO{
			ID:        img.ID,
			Path:      img.Path,
			IsMain:    img.IsMain,
			CreatedAt: img.CreatedAt,
		})
	}

	for _, tier := range product.PriceTiers {
		dto.PriceTiers = append(dto.PriceTiers, PriceTierDTO{
			ID:          tier.ID,
			MinQuantity: tier.MinQuantity,
			Price:       tier.Price,
		})
	}

	return dto
}
