package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
	"github.com/vitrineshop/vitrine-backend/pkg/pagination"
)

// QuoteDTO is the quote payload returned to the storefront and admin panel.
type QuoteDTO struct {
	ID          uuid.UUID       `json:"id"`
	UniqueToken string          `json:"unique_token"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Client      ClientDTO       `json:"client"`
	Items       []QuoteItemDTO  `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ClientDTO is the client snapshot embedded in a quote payload.
type ClientDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactMain string    `json:"contact_main"`
}

// QuoteItemDTO is one priced quote line.
type QuoteItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// QuoteSummaryDTO is the condensed admin list row.
type QuoteSummaryDTO struct {
	ID          uuid.UUID       `json:"id"`
	UniqueToken string          `json:"unique_token"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ClientName  string          `json:"client_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// QuotePageDTO is one admin page of quotes.
type QuotePageDTO struct {
	Quotes   []QuoteSummaryDTO   `json:"quotes"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

// NewQuoteDTO builds a DTO from the persisted quote and its associations.
func NewQuoteDTO(quote *models.Quote) *QuoteDTO {
	dto := &QuoteDTO{
		ID:          quote.ID,
		UniqueToken: quote.UniqueToken,
		Status:      quote.Status.String(),
		TotalAmount: quote.TotalAmount,
		CreatedAt:   quote.CreatedAt,
		UpdatedAt:   quote.UpdatedAt,
	}

	if quote.Client != nil {
		dto.Client = ClientDTO{
			ID:          quote.Client.ID,
			Name:        quote.Client.Name,
			ContactMain: quote.Client.ContactMain,
		}
	}

	dto.Items = make([]QuoteItemDTO, len(quote.Items))
	for i, item := range quote.Items {
		entry := QuoteItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal(),
		}
		if item.Product != nil {
			entry.ProductName = item.Product.Name
		}
		dto.Items[i] = entry
	}

	return dto
}

// NewQuoteSummaryDTO builds a condensed list row.
func NewQuoteSummaryDTO(quote *models.Quote) QuoteSummaryDTO {
	summary := QuoteSummaryDTO{
		ID:          quote.ID,
		UniqueToken: quote.UniqueToken,
		Status:      quote.Status.String(),
		TotalAmount: quote.TotalAmount,
		CreatedAt:   quote.CreatedAt,
	}
	if quote.Client != nil {
		summary.ClientName = quote.Client.Name
	}
	return summary
}
