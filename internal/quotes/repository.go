package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
	"github.com/vitrineshop/vitrine-backend/pkg/enums"
	"github.com/vitrineshop/vitrine-backend/pkg/pagination"
)

// Repository wires quote persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindProductsWithTiers loads the requested products with their price tiers.
func (r *Repository) FindProductsWithTiers(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("PriceTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_quantity DESC")
		}).
		Where("id IN ?", ids).
		Find(&rows).
		Error
	return rows, err
}

// CreateQuote inserts the quote row.
func (r *Repository) CreateQuote(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

// CreateItems inserts all quote item rows.
func (r *Repository) CreateItems(ctx context.Context, items []models.QuoteItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func withQuotePreloads(qb *gorm.DB) *gorm.DB {
	return qb.
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Items.Product")
}

// FindByToken loads the quote by its public lookup token.
func (r *Repository) FindByToken(ctx context.Context, token string) (*models.Quote, error) {
	var quote models.Quote
	err := withQuotePreloads(r.db.WithContext(ctx)).
		First(&quote, "unique_token = ?", token).
		Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// FindByID loads the quote with its items and client.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	err := withQuotePreloads(r.db.WithContext(ctx)).
		First(&quote, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// List returns one admin page of quotes, newest first, with the total count.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Quote, int64, error) {
	params = params.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Quote{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Quote
	err := r.db.WithContext(ctx).
		Preload("Client").
		Order("created_at DESC").
		Order("id DESC").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateStatus moves the quote into the provided status and records the
// acting admin user.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "user_id": userID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a quote; item rows cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Quote{}).Error
}
