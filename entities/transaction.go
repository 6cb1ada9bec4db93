package entities

import (
	"github.com/google/uuid"
)

type Transaction struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	ListingID *uuid.UUID `json:"listing_id,omitempty"`
	OrderID   string     `gorm:"uniqueIndex" json:"order_id"`
	Amount    int64      `json:"amount"`
	Status    string     `json:"status"` // Pending, Settled, Failed, Cancelled
	SnapURL   string     `json:"snap_url,omitempty"`

	User    *User               `gorm:"foreignKey:UserID"`
	Listing *MarketplaceListing `gorm:"foreignKey:ListingID"`
	Timestamp
}

const (
	TransactionPending   = "Pending"
	TransactionSettled   = "Settled"
	TransactionFailed    = "Failed"
	TransactionCancelled = "Cancelled"
)
