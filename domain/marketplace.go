package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateListing  = "listing created successfully"
	MessageSuccessGetListings    = "listings retrieved successfully"
	MessageSuccessNearbyListings = "nearby listings retrieved successfully"
	MessageSuccessClaimListing   = "listing claimed successfully"
	MessageFailedCreateListing   = "failed to create listing"
	MessageFailedGetListings     = "failed to retrieve listings"
	MessageFailedNearbyListings  = "failed to retrieve nearby listings"
	MessageFailedClaimListing    = "failed to claim listing"

	ErrListingNotFound     = errors.New("listing not found")
	ErrListingUnavailable  = errors.New("listing is no longer available")
	ErrOwnListingClaim     = errors.New("cannot claim your own listing")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrItemNotShared       = errors.New("item is not shared in marketplace")
	ErrPaymentFailed       = errors.New("payment failed")
)

type (
	CreateListingRequest struct {
		ItemID      string                `json:"item_id" form:"item_id" validate:"required"`
		Title       string                `json:"title" form:"title" validate:"required"`
		Description string                `json:"description" form:"description"`
		Quantity    float64               `json:"quantity" form:"quantity" validate:"omitempty,gt=0"`
		Unit        string                `json:"unit" form:"unit"`
		Price       float64               `json:"price" form:"price" validate:"omitempty,min=0"`
		ExpiryDate  string                `json:"expiry_date" form:"expiry_date" validate:"required"`
		Latitude    float64               `json:"latitude" form:"latitude" validate:"required,min=-90,max=90"`
		Longitude   float64               `json:"longitude" form:"longitude" validate:"required,min=-180,max=180"`
		Image       *multipart.FileHeader `json:"-" form:"-"`
	}

	NearbyListingsRequest struct {
		Latitude  float64 `query:"latitude" validate:"required,min=-90,max=90"`
		Longitude float64 `query:"longitude" validate:"required,min=-180,max=180"`
		RadiusKM  float64 `query:"radius_km" validate:"omitempty,gt=0"`
	}

	ListingResponse struct {
		ID          string    `json:"id"`
		UserID      string    `json:"user_id"`
		ItemID      string    `json:"item_id"`
		Title       string    `json:"title"`
		Description string    `json:"description,omitempty"`
		Quantity    float64   `json:"quantity"`
		Unit        string    `json:"unit"`
		Price       float64   `json:"price"`
		ExpiryDate  time.Time `json:"expiry_date"`
		Latitude    float64   `json:"latitude"`
		Longitude   float64   `json:"longitude"`
		Status      string    `json:"status"`
		ImageURL    string    `json:"image_url,omitempty"`
		DistanceKM  float64   `json:"distance_km,omitempty"`
		CreatedAt   time.Time `json:"created_at"`
	}

	ClaimListingResponse struct {
		ListingID  string `json:"listing_id"`
		Status     string `json:"status"`
		InvoiceURL string `json:"invoice_url,omitempty"`
	}
)
