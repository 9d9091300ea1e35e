package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vitrineshop/vitrine-backend/api/responses"
	"github.com/vitrineshop/vitrine-backend/api/validators"
	"github.com/vitrineshop/vitrine-backend/internal/catalog"
	"github.com/vitrineshop/vitrine-backend/internal/paymentmethods"
	"github.com/vitrineshop/vitrine-backend/internal/quotes"
	"github.com/vitrineshop/vitrine-backend/internal/settings"
	pkgerrors "github.com/vitrineshop/vitrine-backend/pkg/errors"
	"github.com/vitrineshop/vitrine-backend/pkg/logger"
	"github.com/vitrineshop/vitrine-backend/pkg/pagination"
)

// Home serves the storefront grid: one page of active products plus the
// category list and store settings the page shell needs.
func Home(catalogSvc catalog.Service, settingsSvc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pagination.ParsePage(r.URL.Query().Get("page"))

		products, err := catalogSvc.ListProducts(r.Context(), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categories, err := catalogSvc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := settingsSvc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"products":   products.Products,
			"page_info":  products.PageInfo,
			"categories": categories,
			"settings":   store,
		})
	}
}

// ProductDetail serves one active product looked up by slug.
func ProductDetail(catalogSvc catalog.Service, settingsSvc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))

		product, err := catalogSvc.GetProductBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categories, err := catalogSvc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := settingsSvc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"product":    product,
			"categories": categories,
			"settings":   store,
		})
	}
}

// CartPage serves the data the cart page shell needs. The cart contents live
// on the client; only shared storefront chrome comes from the server.
func CartPage(catalogSvc catalog.Service, settingsSvc settings.Service, methodsSvc paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := catalogSvc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := settingsSvc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		methods, err := methodsSvc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"categories":      categories,
			"settings":        store,
			"payment_methods": methods,
		})
	}
}

type cartSubmitRequest struct {
	ClientName    string            `json:"client_name" validate:"required"`
	ClientContact string            `json:"client_contact" validate:"required"`
	Items         []cartItemRequest `json:"items" validate:"required,min=1,dive"`
}

type cartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// CartSubmit turns the submitted cart into a quote and answers with a
// 303 See Other pointing at the public quote page, plus the quote envelope
// for clients that follow the body instead of the redirect.
func CartSubmit(quoteSvc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cartSubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]quotes.QuoteItemInput, len(payload.Items))
		for i, item := range payload.Items {
			items[i] = quotes.QuoteItemInput{ProductID: item.ProductID, Quantity: item.Quantity}
		}

		quote, err := quoteSvc.CreateQuote(r.Context(), quotes.CreateQuoteInput{
			ClientName:    payload.ClientName,
			ClientContact: payload.ClientContact,
			Items:         items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithQuoteToken(r.Context(), quote.UniqueToken), "quote submitted")
		}

		w.Header().Set("Location", "/quote/"+quote.UniqueToken)
		responses.WriteSuccessStatus(w, http.StatusSeeOther, quote)
	}
}

// QuoteView serves a quote by its unguessable token.
func QuoteView(quoteSvc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(chi.URLParam(r, "token"))
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "missing token"))
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithQuoteToken(ctx, token)
		}

		quote, err := quoteSvc.GetByToken(ctx, token)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
