package clients

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitrineshop/vitrine-backend/pkg/db"
	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
	"github.com/vitrineshop/vitrine-backend/pkg/pagination"
)

// Repository wires client persistence.
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

// FindByID loads the client row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByContact loads the client deduplicated by main contact.
func (r *Repository) FindByContact(ctx context.Context, contact string) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "contact_main = ?", contact).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindOrCreateByContact resolves the client for the given contact, inserting
// a new row when none exists. A concurrent insert of the same contact is
// resolved by re-reading once after the unique violation.
func (r *Repository) FindOrCreateByContact(ctx context.Context, name, contact string) (*models.Client, error) {
	existing, err := r.FindByContact(ctx, contact)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	client := &models.Client{Name: name, ContactMain: contact}
	createErr := r.db.WithContext(ctx).Create(client).Error
	if createErr == nil {
		return client, nil
	}
	if db.IsUniqueViolation(createErr, "clients_contact_main_key") {
		return r.FindByContact(ctx, contact)
	}
	return nil, createErr
}

// List returns one page of clients, newest first, with the total count.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Client, int64, error) {
	params = params.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Client{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Client
	err := r.db.WithContext(ctx).
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

// Update persists the client row.
func (r *Repository) Update(ctx context.Context, client *models.Client) (*models.Client, error) {
	if err := r.db.WithContext(ctx).Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes a client by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Client{}).Error
}
