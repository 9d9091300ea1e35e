package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vitrineshop/vitrine-backend/internal/clients"
	"github.com/vitrineshop/vitrine-backend/internal/pricing"
	"github.com/vitrineshop/vitrine-backend/pkg/db"
	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
	"github.com/vitrineshop/vitrine-backend/pkg/enums"
	pkgerrors "github.com/vitrineshop/vitrine-backend/pkg/errors"
	"github.com/vitrineshop/vitrine-backend/pkg/pagination"
	"github.com/vitrineshop/vitrine-backend/pkg/security"
)

// Service exposes quote submission and admin review operations.
type Service interface {
	CreateQuote(ctx context.Context, input CreateQuoteInput) (*QuoteDTO, error)
	GetByToken(ctx context.Context, token string) (*QuoteDTO, error)
	List(ctx context.Context, page int) (*QuotePageDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*QuoteDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus, userID uuid.UUID) (*QuoteDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateQuoteInput holds the validated cart submission.
type CreateQuoteInput struct {
	ClientName    string
	ClientContact string
	Items         []QuoteItemInput
}

// QuoteItemInput is one requested cart line.
type QuoteItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type service struct {
	repo       *Repository
	dbClient   *db.Client
	clientRepo *clients.Repository
	tokenFn    func(length int) (string, error)
}

// NewService constructs a quote service instance.
func NewService(repo *Repository, dbClient *db.Client, clientRepo *clients.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if clientRepo == nil {
		return nil, fmt.Errorf("client repository required")
	}
	return &service{
		repo:       repo,
		dbClient:   dbClient,
		clientRepo: clientRepo,
		tokenFn:    security.GenerateToken,
	}, nil
}

// quoteTokenAttempts bounds token regeneration on a unique_token collision.
const quoteTokenAttempts = 3

// CreateQuote prices the submitted cart and persists the quote atomically.
// A token collision regenerates the token and retries the whole transaction.
func (s *service) CreateQuote(ctx context.Context, input CreateQuoteInput) (*QuoteDTO, error) {
	name, contact, err := validateCreateQuoteInput(input)
	if err != nil {
		return nil, err
	}

	var quoteID uuid.UUID
	var txErr error
	for attempt := 0; attempt < quoteTokenAttempts; attempt++ {
		token, err := s.tokenFn(security.QuoteTokenLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate quote token")
		}

		quoteID, txErr = s.submitQuote(ctx, name, contact, token, input.Items)
		if txErr == nil || !db.IsUniqueViolation(txErr, "quotes_unique_token_key") {
			break
		}
	}
	if txErr != nil {
		if pkgerrors.As(txErr) != nil {
			return nil, txErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "create quote")
	}

	quote, err := s.repo.FindByID(ctx, quoteID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return NewQuoteDTO(quote), nil
}

func (s *service) submitQuote(ctx context.Context, name, contact, token string, items []QuoteItemInput) (uuid.UUID, error) {
	var quoteID uuid.UUID
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		txClients := s.clientRepo.WithTx(tx)

		products, err := txRepo.FindProductsWithTiers(ctx, productIDs(items))
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load products")
		}

		lines, total, err := buildQuoteLines(products, items)
		if err != nil {
			return err
		}

		client, err := txClients.FindOrCreateByContact(ctx, name, contact)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve client")
		}

		quote := &models.Quote{
			UniqueToken: token,
			ClientID:    client.ID,
			Status:      enums.QuoteStatusPending,
			TotalAmount: total,
		}
		created, err := txRepo.CreateQuote(ctx, quote)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert quote")
		}
		quoteID = created.ID

		for i := range lines {
			lines[i].QuoteID = created.ID
		}
		if err := txRepo.CreateItems(ctx, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert quote items")
		}
		return nil
	})
	return quoteID, err
}

// GetByToken loads the public quote view.
func (s *service) GetByToken(ctx context.Context, token string) (*QuoteDTO, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token is required")
	}

	quote, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return NewQuoteDTO(quote), nil
}

// List returns one admin page of quotes.
func (s *service) List(ctx context.Context, page int) (*QuotePageDTO, error) {
	params := pagination.Params{Page: page}.Normalize()

	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}

	out := make([]QuoteSummaryDTO, len(rows))
	for i := range rows {
		out[i] = NewQuoteSummaryDTO(&rows[i])
	}
	return &QuotePageDTO{Quotes: out, PageInfo: pagination.NewPageInfo(params, total)}, nil
}

// Get loads one quote for the admin panel.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*QuoteDTO, error) {
	quote, err := s.loadQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewQuoteDTO(quote), nil
}

// UpdateStatus moves the quote through the review flow.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus, userID uuid.UUID) (*QuoteDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quote status")
	}

	if err := s.repo.UpdateStatus(ctx, id, status, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quote status")
	}

	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return NewQuoteDTO(quote), nil
}

// Delete removes a quote and its items.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadQuote(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete quote")
	}
	return nil
}

func (s *service) loadQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return quote, nil
}

func validateCreateQuoteInput(input CreateQuoteInput) (string, string, error) {
	name := strings.TrimSpace(input.ClientName)
	contact := strings.TrimSpace(input.ClientContact)
	if name == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "client_name is required")
	}
	if contact == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "client_contact is required")
	}
	if utf8.RuneCountInString(name) > 255 || utf8.RuneCountInString(contact) > 255 {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "client_name and client_contact must be at most 255 characters")
	}
	if len(input.Items) == 0 {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "items must not be empty")
	}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return "", "", pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
		}
		if item.Quantity < 1 {
			return "", "", pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
	}
	return name, contact, nil
}

func productIDs(items []QuoteItemInput) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// buildQuoteLines resolves each line's unit price and accumulates the total.
// Every requested product must be present in products.
func buildQuoteLines(products []models.Product, items []QuoteItemInput) ([]models.QuoteItem, decimal.Decimal, error) {
	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	total := decimal.Zero
	lines := make([]models.QuoteItem, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "product not found")
		}
		unitPrice := pricing.ResolveUnitPrice(product, item.Quantity)
		lines = append(lines, models.QuoteItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		})
		total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return lines, total, nil
}
