package entities

import (
	"time"

	"github.com/google/uuid"
)

type MarketplaceListing struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	ItemID      string     `json:"item_id"` // inventory item id in the owner's tracker
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Quantity    float64    `json:"quantity"`
	Unit        string     `json:"unit"`
	Price       float64    `json:"price"` // 0 means free pickup
	ExpiryDate  time.Time  `json:"expiry_date"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Status      string     `json:"status"` // Available, Reserved, Completed, Cancelled
	ImageURL    string     `json:"image_url,omitempty"`
	ClaimedByID *uuid.UUID `json:"claimed_by_id,omitempty"`

	User      *User `gorm:"foreignKey:UserID"`
	ClaimedBy *User `gorm:"foreignKey:ClaimedByID"`
	Timestamp
}

const (
	ListingAvailable = "Available"
	ListingReserved  = "Reserved"
	ListingCompleted = "Completed"
	ListingCancelled = "Cancelled"
)
