package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitrineshop/vitrine-backend/pkg/enums"
)

// Quote is a priced snapshot of a visitor's cart at submission time.
type Quote struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UniqueToken string            `gorm:"column:unique_token;not null;uniqueIndex"`
	ClientID    uuid.UUID         `gorm:"column:client_id;type:uuid;not null"`
	Client      *Client           `gorm:"foreignKey:ClientID"`
	UserID      *uuid.UUID        `gorm:"column:user_id;type:uuid"`
	User        *User             `gorm:"foreignKey:UserID"`
	Status      enums.QuoteStatus `gorm:"column:status;not null;default:pending"`
	TotalAmount decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Items       []QuoteItem       `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
