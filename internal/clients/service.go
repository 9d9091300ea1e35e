package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitrineshop/vitrine-backend/pkg/db"
	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
	pkgerrors "github.com/vitrineshop/vitrine-backend/pkg/errors"
	"github.com/vitrineshop/vitrine-backend/pkg/pagination"
)

// Service exposes admin client management operations.
type Service interface {
	List(ctx context.Context, page int) (*ClientPageDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ClientDTO, error)
	Create(ctx context.Context, input ClientInput) (*ClientDTO, error)
	Update(ctx context.Context, id uuid.UUID, input ClientInput) (*ClientDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClientInput holds the validated client payload.
type ClientInput struct {
	Name        string
	ContactMain string
}

// ClientDTO is the admin client payload.
type ClientDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactMain string    `json:"contact_main"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClientPageDTO is one admin page of clients.
type ClientPageDTO struct {
	Clients  []ClientDTO         `json:"clients"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type service struct {
	repo *Repository
}

// NewService constructs a client service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("client repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, page int) (*ClientPageDTO, error) {
	params := pagination.Params{Page: page}.Normalize()

	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list clients")
	}

	out := make([]ClientDTO, len(rows))
	for i := range rows {
		out[i] = newClientDTO(&rows[i])
	}
	return &ClientPageDTO{Clients: out, PageInfo: pagination.NewPageInfo(params, total)}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ClientDTO, error) {
	client, err := s.loadClient(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := newClientDTO(client)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input ClientInput) (*ClientDTO, error) {
	name, contact, err := normalizeClientInput(input)
	if err != nil {
		return nil, err
	}

	client, err := s.repo.FindOrCreateByContact(ctx, name, contact)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create client")
	}
	dto := newClientDTO(client)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input ClientInput) (*ClientDTO, error) {
	name, contact, err := normalizeClientInput(input)
	if err != nil {
		return nil, err
	}

	client, err := s.loadClient(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Name = name
	client.ContactMain = contact
	updated, err := s.repo.Update(ctx, client)
	if err != nil {
		if db.IsUniqueViolation(err, "clients_contact_main_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "contact already belongs to another client")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update client")
	}
	dto := newClientDTO(updated)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadClient(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "client has quotes and cannot be deleted")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete client")
	}
	return nil
}

func (s *service) loadClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}
	return client, nil
}

func normalizeClientInput(input ClientInput) (string, string, error) {
	name := strings.TrimSpace(input.Name)
	contact := strings.TrimSpace(input.ContactMain)
	if name == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if contact == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "contact_main is required")
	}
	if len(name) > 255 || len(contact) > 255 {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "name and contact_main must be at most 255 characters")
	}
	return name, contact, nil
}

func newClientDTO(client *models.Client) ClientDTO {
	return ClientDTO{
		ID:          client.ID,
		Name:        client.Name,
		ContactMain: client.ContactMain,
		CreatedAt:   client.CreatedAt,
		UpdatedAt:   client.UpdatedAt,
	}
}
