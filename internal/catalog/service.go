package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
	pkgerrors "github.com/vitrineshop/vitrine-backend/pkg/errors"
	"github.com/vitrineshop/vitrine-backend/pkg/pagination"
)

// Service exposes the public storefront read operations.
type Service interface {
	ListProducts(ctx context.Context, page int) (*ProductPageDTO, error)
	GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
}

type catalogReader interface {
	ListActiveProducts(ctx context.Context, params pagination.Params) ([]models.Product, int64, error)
	FindActiveBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type service struct {
	repo     catalogReader
	pageSize int
}

// NewService constructs a catalog service instance.
func NewService(repo catalogReader, pageSize int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	return &service{repo: repo, pageSize: pageSize}, nil
}

// ListProducts returns one catalog page, newest products first.
func (s *service) ListProducts(ctx context.Context, page int) (*ProductPageDTO, error) {
	params := pagination.Params{Page: page, PageSize: s.pageSize}.Normalize()

	rows, total, err := s.repo.ListActiveProducts(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	products := make([]ProductDTO, len(rows))
	for i := range rows {
		products[i] = NewProductDTO(&rows[i])
	}

	return &ProductPageDTO{
		Products: products,
		PageInfo: pagination.NewPageInfo(params, total),
	}, nil
}

// GetProductBySlug loads one active product for the detail page.
func (s *service) GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}

	product, err := s.repo.FindActiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	dto := NewProductDTO(product)
	return &dto, nil
}

// ListCategories returns every category ordered by name.
func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return NewCategoryDTOs(rows), nil
}
