package products

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vitrineshop/vitrine-backend/pkg/db"
	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
	pkgerrors "github.com/vitrineshop/vitrine-backend/pkg/errors"
	"github.com/vitrineshop/vitrine-backend/pkg/pagination"
)

// Service exposes admin product management operations.
type Service interface {
	List(ctx context.Context, page int) (*ProductPageDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteImage(ctx context.Context, imageID uuid.UUID) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name             string
	Slug             string
	Description      *string
	Price            decimal.Decimal
	PromotionalPrice *decimal.Decimal
	CategoryID       *uuid.UUID
	IsActive         bool
	Images           []ImageInput
	PriceTiers       []PriceTierInput
}

// ImageInput references one uploaded image path.
type ImageInput struct {
	Path   string
	IsMain bool
}

// PriceTierInput defines a quantity break price.
type PriceTierInput struct {
	MinQuantity int
	Price       decimal.Decimal
}

// UpdateProductInput holds optional mutation values for a product. Nil slices
// leave images/tiers untouched; non-nil slices replace them entirely.
type UpdateProductInput struct {
	Name             *string
	Slug             *string
	Description      *string
	Price            *decimal.Decimal
	PromotionalPrice *decimal.Decimal
	ClearPromotional bool
	CategoryID       *uuid.UUID
	IsActive         *bool
	Images           *[]ImageInput
	PriceTiers       *[]PriceTierInput
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) List(ctx context.Context, page int) (*ProductPageDTO, error) {
	params := pagination.Params{Page: page}.Normalize()

	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	out := make([]ProductDTO, len(rows))
	for i := range rows {
		out[i] = *NewProductDTO(&rows[i])
	}
	return &ProductPageDTO{Products: out, PageInfo: pagination.NewPageInfo(params, total)}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

// Create inserts the product with its images and tiers atomically.
func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	slug, err := normalizeSlug(input.Slug, name)
	if err != nil {
		return nil, err
	}
	if err := validatePrices(input.Price, input.PromotionalPrice); err != nil {
		return nil, err
	}
	if err := ensureUniqueTiers(input.PriceTiers); err != nil {
		return nil, err
	}

	images := normalizeMainImage(input.Images)

	var createdID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product := &models.Product{
			Name:             name,
			Slug:             slug,
			Description:      input.Description,
			Price:            input.Price,
			PromotionalPrice: input.PromotionalPrice,
			CategoryID:       input.CategoryID,
			IsActive:         input.IsActive,
		}
		created, err := txRepo.Create(ctx, product)
		if err != nil {
			if db.IsUniqueViolation(err, "products_slug_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdID = created.ID

		if err := txRepo.ReplaceImages(ctx, created.ID, imageRows(created.ID, images)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace images")
		}
		if err := txRepo.ReplacePriceTiers(ctx, created.ID, tierRows(created.ID, input.PriceTiers)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace price tiers")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.Get(ctx, createdID)
}

// Update mutates the product and, when provided, replaces images and tiers.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if input.PriceTiers != nil {
		if err := ensureUniqueTiers(*input.PriceTiers); err != nil {
			return nil, err
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := applyUpdateToProduct(product, input); err != nil {
		return nil, err
	}
	if err := validatePrices(product.Price, product.PromotionalPrice); err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if _, err := txRepo.Update(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "products_slug_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}

		if input.Images != nil {
			images := normalizeMainImage(*input.Images)
			if err := txRepo.ReplaceImages(ctx, product.ID, imageRows(product.ID, images)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace images")
			}
		}
		if input.PriceTiers != nil {
			if err := txRepo.ReplacePriceTiers(ctx, product.ID, tierRows(product.ID, *input.PriceTiers)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace price tiers")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	return s.Get(ctx, product.ID)
}

// Delete removes a product and relies on FK cascades for related rows.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "product is referenced by quotes")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// DeleteImage removes one image and keeps the main-image invariant intact.
func (s *service) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	image, err := s.repo.FindImageByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load image")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.DeleteImage(ctx, imageID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete image")
		}
		if err := txRepo.PromoteNextMainImage(ctx, image.ProductID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: promote main image")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete image")
	}
	return nil
}

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeSlug validates an explicit slug or derives one from the name.
func normalizeSlug(slug, name string) (string, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		slug = strings.Trim(slugStripRe.ReplaceAllString(strings.ToLower(name), "-"), "-")
	}
	if slug == "" || !slugRe.MatchString(slug) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "slug must contain only lowercase letters, digits, and hyphens")
	}
	return slug, nil
}

func validatePrices(price decimal.Decimal, promo *decimal.Decimal) error {
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if promo != nil {
		if promo.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "promotional_price must be non-negative")
		}
		if promo.GreaterThanOrEqual(price) {
			return pkgerrors.New(pkgerrors.CodeValidation, "promotional_price must be below price")
		}
	}
	return nil
}

func ensureUniqueTiers(tiers []PriceTierInput) error {
	seen := make(map[int]struct{}, len(tiers))
	for _, tier := range tiers {
		if tier.MinQuantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "min_quantity must be at least 1")
		}
		if tier.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "tier price must be non-negative")
		}
		if _, ok := seen[tier.MinQuantity]; ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate tier min_quantity")
		}
		seen[tier.MinQuantity] = struct{}{}
	}
	return nil
}

// normalizeMainImage keeps at most one main image, defaulting to the first.
func normalizeMainImage(images []ImageInput) []ImageInput {
	out := make([]ImageInput, len(images))
	copy(out, images)

	mainSeen := false
	for i := range out {
		if out[i].IsMain {
			if mainSeen {
				out[i].IsMain = false
			}
			mainSeen = true
		}
	}
	if !mainSeen && len(out) > 0 {
		out[0].IsMain = true
	}
	return out
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
		}
		product.Name = name
	}
	if input.Slug != nil {
		slug, err := normalizeSlug(*input.Slug, product.Name)
		if err != nil {
			return err
		}
		product.Slug = slug
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.ClearPromotional {
		product.PromotionalPrice = nil
	} else if input.PromotionalPrice != nil {
		product.PromotionalPrice = input.PromotionalPrice
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	return nil
}

func imageRows(productID uuid.UUID, images []ImageInput) []models.ProductImage {
	rows := make([]models.ProductImage, 0, len(images))
	for _, img := range images {
		path := strings.TrimSpace(img.Path)
		if path == "" {
			continue
		}
		rows = append(rows, models.ProductImage{
			ProductID: productID,
			Path:      path,
			IsMain:    img.IsMain,
		})
	}
	return rows
}

func tierRows(productID uuid.UUID, tiers []PriceTierInput) []models.PriceTier {
	rows := make([]models.PriceTier, 0, len(tiers))
	for _, tier := range tiers {
		rows = append(rows, models.PriceTier{
			ProductID:   productID,
			MinQuantity: tier.MinQuantity,
			Price:       tier.Price,
		})
	}
	return rows
}
