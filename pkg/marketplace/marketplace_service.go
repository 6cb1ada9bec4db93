package marketplace

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/netanelbarel75/shelflife-ai-sub001/domain"
	"github.com/netanelbarel75/shelflife-ai-sub001/entities"
	"github.com/netanelbarel75/shelflife-ai-sub001/internal/utils/storage"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/inventory"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/payment"
)

const defaultRadiusKM = 10.0

type (
	MarketplaceService interface {
		CreateListing(ctx context.Context, req domain.CreateListingRequest, userID string) (domain.ListingResponse, error)
		GetNearbyListings(ctx context.Context, req domain.NearbyListingsRequest) ([]domain.ListingResponse, error)
		GetUserListings(ctx context.Context, userID string) ([]domain.ListingResponse, error)
		ClaimListing(ctx context.Context, listingID string, userID string, email string) (domain.ClaimListingResponse, error)
	}

	marketplaceService struct {
		marketplaceRepository MarketplaceRepository
		inventoryService      inventory.InventoryService
		paymentService        payment.PaymentService
		s3                    storage.AwsS3
	}
)

func NewMarketplaceService(marketplaceRepository MarketplaceRepository, inventoryService inventory.InventoryService, paymentService payment.PaymentService, s3 storage.AwsS3) MarketplaceService {
	return &marketplaceService{
		marketplaceRepository: marketplaceRepository,
		inventoryService:      inventoryService,
		paymentService:        paymentService,
		s3:                    s3,
	}
}

func (s *marketplaceService) CreateListing(ctx context.Context, req domain.CreateListingRequest, userID string) (domain.ListingResponse, error) {
	item, err := s.inventoryService.GetItemByID(ctx, req.ItemID)
	if err != nil {
		return domain.ListingResponse{}, err
	}
	if !item.SharedInMarket {
		return domain.ListingResponse{}, domain.ErrItemNotShared
	}

	expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return domain.ListingResponse{}, domain.ErrInvalidExpiryDate
	}

	if !validCoordinates(req.Latitude, req.Longitude) {
		return domain.ListingResponse{}, domain.ErrInvalidCoordinates
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ListingResponse{}, domain.ErrParseUUID
	}

	listingID := uuid.New()

	var imageURL string
	if req.Image != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("listing-%s", listingID.String()),
			req.Image,
			"listings",
			storage.AllowImage...,
		)
		if err != nil {
			return domain.ListingResponse{}, err
		}
		imageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = item.Quantity
	}
	unit := req.Unit
	if unit == "" {
		unit = item.Unit
	}

	listing := &entities.MarketplaceListing{
		ID:          listingID,
		UserID:      userUUID,
		ItemID:      req.ItemID,
		Title:       req.Title,
		Description: req.Description,
		Quantity:    quantity,
		Unit:        unit,
		Price:       req.Price,
		ExpiryDate:  expiryDate,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      entities.ListingAvailable,
		ImageURL:    imageURL,
	}

	if err := s.marketplaceRepository.CreateListing(ctx, listing); err != nil {
		return domain.ListingResponse{}, err
	}

	return toListingResponse(listing, 0), nil
}

func (s *marketplaceService) GetNearbyListings(ctx context.Context, req domain.NearbyListingsRequest) ([]domain.ListingResponse, error) {
	if !validCoordinates(req.Latitude, req.Longitude) {
		return nil, domain.ErrInvalidCoordinates
	}

	radius := req.RadiusKM
	if radius <= 0 {
		radius = defaultRadiusKM
	}

	listings, err := s.marketplaceRepository.GetAvailableListings(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ListingResponse, 0, len(listings))
	for _, listing := range listings {
		distance := haversineKM(req.Latitude, req.Longitude, listing.Latitude, listing.Longitude)
		if distance > radius {
			continue
		}
		result = append(result, toListingResponse(listing, distance))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceKM < result[j].DistanceKM
	})
	return result, nil
}

func (s *marketplaceService) GetUserListings(ctx context.Context, userID string) ([]domain.ListingResponse, error) {
	listings, err := s.marketplaceRepository.GetUserListings(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ListingResponse, 0, len(listings))
	for _, listing := range listings {
		result = append(result, toListingResponse(listing, 0))
	}
	return result, nil
}

func (s *marketplaceService) ClaimListing(ctx context.Context, listingID string, userID string, email string) (domain.ClaimListingResponse, error) {
	listing, err := s.marketplaceRepository.GetListingByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ClaimListingResponse{}, domain.ErrListingNotFound
		}
		return domain.ClaimListingResponse{}, err
	}

	if listing.Status != entities.ListingAvailable {
		return domain.ClaimListingResponse{}, domain.ErrListingUnavailable
	}
	if listing.UserID.String() == userID {
		return domain.ClaimListingResponse{}, domain.ErrOwnListingClaim
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ClaimListingResponse{}, domain.ErrParseUUID
	}

	// Free pickup is reserved directly; a paid listing is reserved behind a
	// payment invoice and finalized by the payment webhook.
	if listing.Price == 0 {
		if err := s.marketplaceRepository.ClaimListing(ctx, listingID, userUUID, entities.ListingReserved); err != nil {
			return domain.ClaimListingResponse{}, err
		}
		return domain.ClaimListingResponse{
			ListingID: listingID,
			Status:    entities.ListingReserved,
		}, nil
	}

	invoice, err := s.paymentService.CreateInvoice(ctx, domain.PaymentRequest{
		Amount:    int64(listing.Price),
		Email:     email,
		ListingID: listingID,
	}, userID)
	if err != nil {
		return domain.ClaimListingResponse{}, err
	}

	if err := s.marketplaceRepository.ClaimListing(ctx, listingID, userUUID, entities.ListingReserved); err != nil {
		return domain.ClaimListingResponse{}, err
	}

	return domain.ClaimListingResponse{
		ListingID:  listingID,
		Status:     entities.ListingReserved,
		InvoiceURL: invoice.InvoiceURL,
	}, nil
}

func validCoordinates(latitude, longitude float64) bool {
	return latitude >= -90 && latitude <= 90 && longitude >= -180 && longitude <= 180
}

// haversineKM is the great-circle distance between two coordinates.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKM = 6371.0

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}

func toListingResponse(listing *entities.MarketplaceListing, distanceKM float64) domain.ListingResponse {
	return domain.ListingResponse{
		ID:          listing.ID.String(),
		UserID:      listing.UserID.String(),
		ItemID:      listing.ItemID,
		Title:       listing.Title,
		Description: listing.Description,
		Quantity:    listing.Quantity,
		Unit:        listing.Unit,
		Price:       listing.Price,
		ExpiryDate:  listing.ExpiryDate,
		Latitude:    listing.Latitude,
		Longitude:   listing.Longitude,
		Status:      listing.Status,
		ImageURL:    listing.ImageURL,
		DistanceKM:  distanceKM,
		CreatedAt:   listing.CreatedAt,
	}
}
