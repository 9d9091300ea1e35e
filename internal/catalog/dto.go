package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
	"github.com/vitrineshop/vitrine-backend/pkg/pagination"
)

// ProductDTO is the storefront product payload.
type ProductDTO struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	Description      *string          `json:"description,omitempty"`
	Price            decimal.Decimal  `json:"price"`
	PromotionalPrice *decimal.Decimal `json:"promotional_price,omitempty"`
	Category         *CategoryDTO     `json:"category,omitempty"`
	MainImage        *ImageDTO        `json:"main_image,omitempty"`
	Images           []ImageDTO       `json:"images,omitempty"`
	PriceTiers       []PriceTierDTO   `json:"price_tiers,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// CategoryDTO is the storefront category payload.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ImageDTO is one product photo.
type ImageDTO struct {
	ID     uuid.UUID `json:"id"`
	Path   string    `json:"path"`
	IsMain bool      `json:"is_main"`
}

// PriceTierDTO is one quantity price break.
type PriceTierDTO struct {
	ID          uuid.UUID       `json:"id"`
	MinQuantity int             `json:"min_quantity"`
	Price       decimal.Decimal `json:"price"`
}

// ProductPageDTO is one storefront catalog page.
type ProductPageDTO struct {
	Products []ProductDTO        `json:"products"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) ProductDTO {
	dto := ProductDTO{
		ID:               product.ID,
		Name:             product.Name,
		Slug:             product.Slug,
		Description:      product.Description,
		Price:            product.Price,
		PromotionalPrice: product.PromotionalPrice,
		CreatedAt:        product.CreatedAt,
	}

	if product.Category != nil {
		dto.Category = &CategoryDTO{ID: product.Category.ID, Name: product.Category.Name}
	}

	if len(product.Images) > 0 {
		dto.Images = make([]ImageDTO, len(product.Images))
		for i, img := range product.Images {
			dto.Images[i] = ImageDTO{ID: img.ID, Path: img.Path, IsMain: img.IsMain}
		}
	}
	if main := product.MainImage(); main != nil {
		dto.MainImage = &ImageDTO{ID: main.ID, Path: main.Path, IsMain: main.IsMain}
	}

	if len(product.PriceTiers) > 0 {
		dto.PriceTiers = make([]PriceTierDTO, len(product.PriceTiers))
		for i, tier := range product.PriceTiers {
			dto.PriceTiers[i] = PriceTierDTO{ID: tier.ID, MinQuantity: tier.MinQuantity, Price: tier.Price}
		}
	}

	return dto
}

// NewCategoryDTOs maps category rows into payloads.
func NewCategoryDTOs(categories []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		out[i] = CategoryDTO{ID: c.ID, Name: c.Name}
	}
	return out
}
