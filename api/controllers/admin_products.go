package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitrineshop/vitrine-backend/api/responses"
	"github.com/vitrineshop/vitrine-backend/api/validators"
	productsvc "github.com/vitrineshop/vitrine-backend/internal/products"
	"github.com/vitrineshop/vitrine-backend/pkg/logger"
	"github.com/vitrineshop/vitrine-backend/pkg/pagination"
)

type productImageRequest struct {
	Path   string `json:"path" validate:"required"`
	IsMain bool   `json:"is_main"`
}

type priceTierRequest struct {
	MinQuantity int             `json:"min_quantity" validate:"required,min=1"`
	Price       decimal.Decimal `json:"price"`
}

type createProductRequest struct {
	Name             string                `json:"name" validate:"required"`
	Slug             string                `json:"slug"`
	Description      *string               `json:"description,omitempty"`
	Price            decimal.Decimal       `json:"price"`
	PromotionalPrice *decimal.Decimal      `json:"promotional_price,omitempty"`
	CategoryID       *uuid.UUID            `json:"category_id,omitempty"`
	IsActive         bool                  `json:"is_active"`
	Images           []productImageRequest `json:"images"`
	PriceTiers       []priceTierRequest    `json:"price_tiers"`
}

type updateProductRequest struct {
	Name             *string                `json:"name,omitempty"`
	Slug             *string                `json:"slug,omitempty"`
	Description      *string                `json:"description,omitempty"`
	Price            *decimal.Decimal       `json:"price,omitempty"`
	PromotionalPrice *decimal.Decimal       `json:"promotional_price,omitempty"`
	ClearPromotional bool                   `json:"clear_promotional,omitempty"`
	CategoryID       *uuid.UUID             `json:"category_id,omitempty"`
	IsActive         *bool                  `json:"is_active,omitempty"`
	Images           *[]productImageRequest `json:"images,omitempty"`
	PriceTiers       *[]priceTierRequest    `json:"price_tiers,omitempty"`
}

func toImageInputs(images []productImageRequest) []productsvc.ImageInput {
	out := make([]productsvc.ImageInput, len(images))
	for i, img := range images {
		out[i] = productsvc.ImageInput{Path: img.Path, IsMain: img.IsMain}
	}
	return out
}

func toTierInputs(tiers []priceTierRequest) []productsvc.PriceTierInput {
	out := make([]productsvc.PriceTierInput, len(tiers))
	for i, tier := range tiers {
		out[i] = productsvc.PriceTierInput{MinQuantity: tier.MinQuantity, Price: tier.Price}
	}
	return out
}

func AdminProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pagination.ParsePage(r.URL.Query().Get("page"))
		result, err := svc.List(r.Context(), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminProductGet(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), productsvc.CreateProductInput{
			Name:             payload.Name,
			Slug:             payload.Slug,
			Description:      payload.Description,
			Price:            payload.Price,
			PromotionalPrice: payload.PromotionalPrice,
			CategoryID:       payload.CategoryID,
			IsActive:         payload.IsActive,
			Images:           toImageInputs(payload.Images),
			PriceTiers:       toTierInputs(payload.PriceTiers),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func AdminProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.UpdateProductInput{
			Name:             payload.Name,
			Slug:             payload.Slug,
			Description:      payload.Description,
			Price:            payload.Price,
			PromotionalPrice: payload.PromotionalPrice,
			ClearPromotional: payload.ClearPromotional,
			CategoryID:       payload.CategoryID,
			IsActive:         payload.IsActive,
		}
		if payload.Images != nil {
			images := toImageInputs(*payload.Images)
			input.Images = &images
		}
		if payload.PriceTiers != nil {
			tiers := toTierInputs(*payload.PriceTiers)
			input.PriceTiers = &tiers
		}

		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminProductDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// AdminProductImageDelete removes a single product image.
func AdminProductImageDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "imageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteImage(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
