package paymentmethods

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
	pkgerrors "github.com/vitrineshop/vitrine-backend/pkg/errors"
)

// Service exposes payment method management plus the public active list.
type Service interface {
	ListActive(ctx context.Context) ([]PaymentMethodDTO, error)
	List(ctx context.Context) ([]PaymentMethodDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*PaymentMethodDTO, error)
	Create(ctx context.Context, input PaymentMethodInput) (*PaymentMethodDTO, error)
	Update(ctx context.Context, id uuid.UUID, input PaymentMethodInput) (*PaymentMethodDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentMethodInput holds the validated payment method payload.
type PaymentMethodInput struct {
	Name     string
	IsActive bool
}

// PaymentMethodDTO is the payment method payload.
type PaymentMethodDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type service struct {
	repo *Repository
}

// NewService constructs a payment method service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payment method repository required")
	}
	return &service{repo: repo}, nil
}

// ListActive returns only active methods for storefront display.
func (s *service) ListActive(ctx context.Context) ([]PaymentMethodDTO, error) {
	return s.list(ctx, true)
}

func (s *service) List(ctx context.Context) ([]PaymentMethodDTO, error) {
	return s.list(ctx, false)
}

func (s *service) list(ctx context.Context, onlyActive bool) ([]PaymentMethodDTO, error) {
	rows, err := s.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payment methods")
	}

	out := make([]PaymentMethodDTO, len(rows))
	for i := range rows {
		out[i] = newPaymentMethodDTO(&rows[i])
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*PaymentMethodDTO, error) {
	method, err := s.loadMethod(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := newPaymentMethodDTO(method)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input PaymentMethodInput) (*PaymentMethodDTO, error) {
	name, err := normalizeMethodName(input.Name)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &models.PaymentMethod{Name: name, IsActive: input.IsActive})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment method")
	}
	dto := newPaymentMethodDTO(created)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input PaymentMethodInput) (*PaymentMethodDTO, error) {
	name, err := normalizeMethodName(input.Name)
	if err != nil {
		return nil, err
	}

	method, err := s.loadMethod(ctx, id)
	if err != nil {
		return nil, err
	}

	method.Name = name
	method.IsActive = input.IsActive
	updated, err := s.repo.Update(ctx, method)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment method")
	}
	dto := newPaymentMethodDTO(updated)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadMethod(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete payment method")
	}
	return nil
}

func (s *service) loadMethod(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error) {
	method, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment method")
	}
	return method, nil
}

func normalizeMethodName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if len(name) > 255 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name must be at most 255 characters")
	}
	return name, nil
}

func newPaymentMethodDTO(method *models.PaymentMethod) PaymentMethodDTO {
	return PaymentMethodDTO{
		ID:        method.ID,
		Name:      method.Name,
		IsActive:  method.IsActive,
		CreatedAt: method.CreatedAt,
		UpdatedAt: method.UpdatedAt,
	}
}
