package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddItem          = "inventory item added successfully"
	MessageSuccessUpdateItem       = "inventory item updated successfully"
	MessageSuccessMarkAsUsed       = "inventory item marked as used"
	MessageSuccessShareItem        = "inventory item shared in marketplace"
	MessageSuccessGetInventory     = "inventory retrieved successfully"
	MessageSuccessGetAlerts        = "expiry alerts retrieved successfully"
	MessageSuccessGetStats         = "inventory statistics retrieved successfully"
	MessageSuccessExportInventory  = "inventory exported successfully"
	MessageSuccessImportInventory  = "inventory imported successfully"
	MessageSuccessAddPhoto         = "photo attached successfully"
	MessageSuccessUploadReceipt    = "receipt uploaded successfully"
	MessageSuccessSaveScannedItems = "scanned items saved successfully"
	MessageSuccessGetReceiptScan   = "receipt scan retrieved successfully"

	MessageFailedAddItem          = "failed to add inventory item"
	MessageFailedUpdateItem       = "failed to update inventory item"
	MessageFailedMarkAsUsed       = "failed to mark inventory item as used"
	MessageFailedShareItem        = "failed to share inventory item"
	MessageFailedGetInventory     = "failed to retrieve inventory"
	MessageFailedGetAlerts        = "failed to retrieve expiry alerts"
	MessageFailedGetStats         = "failed to retrieve inventory statistics"
	MessageFailedExportInventory  = "failed to export inventory"
	MessageFailedImportInventory  = "failed to import inventory"
	MessageFailedAddPhoto         = "failed to attach photo"
	MessageFailedUploadReceipt    = "failed to upload receipt"
	MessageFailedSaveScannedItems = "failed to save scanned items"
	MessageFailedGetReceiptScan   = "failed to retrieve receipt scan"

	ErrItemNotFound       = errors.New("inventory item not found")
	ErrInvalidCategory    = errors.New("invalid item category")
	ErrInvalidLocation    = errors.New("invalid storage location")
	ErrInvalidExpiryDate  = errors.New("invalid expiry date")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidImport      = errors.New("malformed inventory payload")
	ErrInvalidReceiptScan = errors.New("invalid receipt scan ID")
)

type (
	AddItemRequest struct {
		Name         string  `json:"name" validate:"required"`
		OriginalName string  `json:"original_name"`
		Category     string  `json:"category" validate:"required"`
		Quantity     float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit         string  `json:"unit"`
		ExpiryDate   string  `json:"expiry_date" validate:"required"`
		Location     string  `json:"location"`
		Price        float64 `json:"price" validate:"omitempty,min=0"`
		Notes        string  `json:"notes"`
	}

	UpdateItemRequest struct {
		Name       string   `json:"name"`
		Category   string   `json:"category"`
		Quantity   *float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit       string   `json:"unit"`
		ExpiryDate string   `json:"expiry_date"`
		Location   string   `json:"location"`
		Price      *float64 `json:"price" validate:"omitempty,min=0"`
		Notes      *string  `json:"notes"`
	}

	MarkAsUsedRequest struct {
		Notes string `json:"notes"`
	}

	InventoryFilter struct {
		Statuses   []string `json:"statuses"`
		Categories []string `json:"categories"`
		Locations  []string `json:"locations"`
		Search     string   `json:"search"`
	}

	ItemResponse struct {
		ID             string     `json:"id"`
		Name           string     `json:"name"`
		OriginalName   string     `json:"original_name,omitempty"`
		Category       string     `json:"category"`
		Quantity       float64    `json:"quantity"`
		Unit           string     `json:"unit"`
		Price          float64    `json:"price"`
		ExpiryDate     time.Time  `json:"expiry_date"`
		Location       string     `json:"location"`
		Notes          string     `json:"notes,omitempty"`
		Photos         []string   `json:"photos,omitempty"`
		SharedInMarket bool       `json:"shared_in_market"`
		Status         string     `json:"status"`
		AddedAt        time.Time  `json:"added_at"`
		UpdatedAt      time.Time  `json:"updated_at"`
		ConsumedAt     *time.Time `json:"consumed_at,omitempty"`
	}

	ExpiryAlert struct {
		ItemID           string   `json:"item_id"`
		ItemName         string   `json:"item_name"`
		DaysUntilExpiry  int      `json:"days_until_expiry"`
		Urgency          string   `json:"urgency"` // expired, high, medium, low
		SuggestedActions []string `json:"suggested_actions"`
	}

	WastePreventionResponse struct {
		ItemsSaved     int     `json:"items_saved"`
		EstimatedValue float64 `json:"estimated_value"`
		CO2Saved       float64 `json:"co2_saved"`
	}

	InventoryStatsResponse struct {
		TotalItems      int                     `json:"total_items"`
		FreshItems      int                     `json:"fresh_items"`
		NearingItems    int                     `json:"nearing_items"`
		ExpiredItems    int                     `json:"expired_items"`
		WastePrevention WastePreventionResponse `json:"waste_prevention"`
		ByCategory      map[string]int          `json:"by_category"`
	}

	ScannedItemRequest struct {
		Name         string  `json:"name" validate:"required"`
		OriginalName string  `json:"original_name"`
		Category     string  `json:"category" validate:"required"`
		Quantity     float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit         string  `json:"unit"`
		ExpiryDate   string  `json:"expiry_date" validate:"required"`
		Price        float64 `json:"price" validate:"omitempty,min=0"`
	}

	SaveScannedItemsRequest struct {
		ScanID string               `json:"scan_id" validate:"required,uuid"`
		Items  []ScannedItemRequest `json:"items" validate:"required,dive"`
	}

	UploadReceiptResponse struct {
		ScanID   string `json:"scan_id"`
		ImageURL string `json:"image_url"`
		Status   string `json:"status"`
	}

	ReceiptScanResponse struct {
		ScanID     string    `json:"scan_id"`
		ImageURL   string    `json:"image_url"`
		Status     string    `json:"status"`
		ItemsAdded int       `json:"items_added"`
		CreatedAt  time.Time `json:"created_at"`
	}

	ImportInventoryRequest struct {
		Data string `json:"data" validate:"required"`
	}

	ExportInventoryResponse struct {
		Data      string `json:"data"`
		ItemCount int    `json:"item_count"`
	}
)
