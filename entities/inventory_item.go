package entities

import (
	"time"
)

// Item status values. Fresh, Nearing and Expired are derived from the
// expiry date; Used, Donated and Sold are terminal and set only by user
// actions.
const (
	StatusFresh   = "fresh"
	StatusNearing = "nearing"
	StatusExpired = "expired"
	StatusUsed    = "used"
	StatusDonated = "donated"
	StatusSold    = "sold"
)

const (
	LocationFridge  = "fridge"
	LocationFreezer = "freezer"
	LocationPantry  = "pantry"
	LocationCounter = "counter"
)

const (
	CategoryFruits     = "fruits"
	CategoryVegetables = "vegetables"
	CategoryDairy      = "dairy"
	CategoryMeat       = "meat"
	CategoryBakery     = "bakery"
	CategoryFrozen     = "frozen"
	CategoryPantry     = "pantry"
	CategorySnacks     = "snacks"
	CategoryBeverages  = "beverages"
	CategoryOther      = "other"
)

var Categories = []string{
	CategoryFruits,
	CategoryVegetables,
	CategoryDairy,
	CategoryMeat,
	CategoryBakery,
	CategoryFrozen,
	CategoryPantry,
	CategorySnacks,
	CategoryBeverages,
	CategoryOther,
}

// CO2PerCategory is the approximate mass of CO2 (kg) prevented when one
// item of the category is consumed instead of wasted.
var CO2PerCategory = map[string]float64{
	CategoryMeat:       15.0,
	CategoryDairy:      3.0,
	CategoryBakery:     1.0,
	CategoryBeverages:  0.7,
	CategoryFrozen:     1.5,
	CategoryPantry:     0.8,
	CategorySnacks:     1.2,
	CategoryFruits:     0.5,
	CategoryVegetables: 0.3,
	CategoryOther:      1.0,
}

// InventoryItem is a tracked food item. The tracker owns the authoritative
// in-memory collection; the key-value store holds a serialized mirror of
// the full list under one key.
type InventoryItem struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	OriginalName    string     `json:"original_name,omitempty"`
	Category        string     `json:"category"`
	Quantity        float64    `json:"quantity"`
	Unit            string     `json:"unit"`
	Price           float64    `json:"price"`
	ExpiryDate      time.Time  `json:"expiry_date"`
	Location        string     `json:"location"`
	Notes           string     `json:"notes,omitempty"`
	Photos          []string   `json:"photos,omitempty"`
	SharedInMarket  bool       `json:"shared_in_market"`
	NotificationIDs []string   `json:"notification_ids,omitempty"`
	Status          string     `json:"status"`
	AddedAt         time.Time  `json:"added_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ConsumedAt      *time.Time `json:"consumed_at,omitempty"`
}

// Terminal reports whether the item left automatic reclassification for
// good.
func (i *InventoryItem) Terminal() bool {
	switch i.Status {
	case StatusUsed, StatusDonated, StatusSold:
		return true
	}
	return false
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func ValidLocation(location string) bool {
	switch location {
	case LocationFridge, LocationFreezer, LocationPantry, LocationCounter:
		return true
	}
	return false
}

// DefaultLocation resolves the storage location for a category when the
// caller does not supply one.
func DefaultLocation(category string) string {
	switch category {
	case CategoryDairy, CategoryMeat, CategoryFruits, CategoryVegetables:
		return LocationFridge
	case CategoryFrozen:
		return LocationFreezer
	case CategoryBakery:
		return LocationCounter
	default:
		return LocationPantry
	}
}

// WastePreventionStats is the monthly rollup persisted under its own key.
// Counters reset when the calendar month changes.
type WastePreventionStats struct {
	ItemCount      int       `json:"item_count"`
	EstimatedValue float64   `json:"estimated_value"`
	CO2Saved       float64   `json:"co2_saved"`
	LastUpdated    time.Time `json:"last_updated"`
}
