package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a storefront visitor who submitted at least one quote. Clients are
// deduplicated by their main contact, never by name.
type Client struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	ContactMain string    `gorm:"column:contact_main;not null;uniqueIndex"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
