package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
	"github.com/vitrineshop/vitrine-backend/pkg/pagination"
)

// Repository wires read-only catalog persistence for the storefront.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func withCatalogPreloads(qb *gorm.DB) *gorm.DB {
	return qb.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_main DESC, created_at ASC")
		}).
		Preload("PriceTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_quantity DESC")
		})
}

// ListActiveProducts returns one storefront page of active products, newest
// first, plus the total count of active products.
func (r *Repository) ListActiveProducts(ctx context.Context, params pagination.Params) ([]models.Product, int64, error) {
	params = params.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	err := withCatalogPreloads(r.db.WithContext(ctx)).
		Where("is_active = ?", true).
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

// FindActiveBySlug loads one active product with its storefront associations.
func (r *Repository) FindActiveBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := withCatalogPreloads(r.db.WithContext(ctx)).
		Where("is_active = ?", true).
		First(&product, "slug = ?", slug).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}
