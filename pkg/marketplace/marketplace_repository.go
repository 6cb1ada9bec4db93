package marketplace

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/netanelbarel75/shelflife-ai-sub001/entities"
)

type (
	MarketplaceRepository interface {
		CreateListing(ctx context.Context, listing *entities.MarketplaceListing) error
		GetListingByID(ctx context.Context, id string) (*entities.MarketplaceListing, error)
		GetAvailableListings(ctx context.Context) ([]*entities.MarketplaceListing, error)
		GetUserListings(ctx context.Context, userID string) ([]*entities.MarketplaceListing, error)
		ClaimListing(ctx context.Context, id string, claimedByID uuid.UUID, status string) error
		UpdateListingStatus(ctx context.Context, id string, status string) error
	}

	marketplaceRepository struct {
		db *gorm.DB
	}
)

func NewMarketplaceRepository(db *gorm.DB) MarketplaceRepository {
	return &marketplaceRepository{db: db}
}

func (r *marketplaceRepository) CreateListing(ctx context.Context, listing *entities.MarketplaceListing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *marketplaceRepository) GetListingByID(ctx context.Context, id string) (*entities.MarketplaceListing, error) {
	var listing entities.MarketplaceListing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *marketplaceRepository) GetAvailableListings(ctx context.Context) ([]*entities.MarketplaceListing, error) {
	var listings []*entities.MarketplaceListing
	if err := r.db.WithContext(ctx).
		Where("status = ?", entities.ListingAvailable).
		Order("expiry_date asc").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *marketplaceRepository) GetUserListings(ctx context.Context, userID string) ([]*entities.MarketplaceListing, error) {
	var listings []*entities.MarketplaceListing
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *marketplaceRepository) ClaimListing(ctx context.Context, id string, claimedByID uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&entities.MarketplaceListing{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"claimed_by_id": claimedByID,
			"status":        status,
		}).Error
}

func (r *marketplaceRepository) UpdateListingStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).Model(&entities.MarketplaceListing{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status}).Error
}
