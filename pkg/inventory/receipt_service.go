package inventory

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/netanelbarel75/shelflife-ai-sub001/domain"
	"github.com/netanelbarel75/shelflife-ai-sub001/entities"
	"github.com/netanelbarel75/shelflife-ai-sub001/internal/utils/storage"
)

const (
	ScanPending   = "Pending"
	ScanConfirmed = "Confirmed"
)

type (
	// ReceiptService tracks uploaded receipt images and folds the items the
	// user confirms from them into the inventory.
	ReceiptService interface {
		UploadReceipt(ctx context.Context, userID string, image *multipart.FileHeader) (domain.UploadReceiptResponse, error)
		GetReceiptScan(ctx context.Context, scanID string, userID string) (domain.ReceiptScanResponse, error)
		ConfirmScannedItems(ctx context.Context, req domain.SaveScannedItemsRequest, userID string) ([]domain.ItemResponse, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		inventoryService  InventoryService
		s3                storage.AwsS3
	}
)

func NewReceiptService(receiptRepository ReceiptRepository, inventoryService InventoryService, s3 storage.AwsS3) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		inventoryService:  inventoryService,
		s3:                s3,
	}
}

func (s *receiptService) UploadReceipt(ctx context.Context, userID string, image *multipart.FileHeader) (domain.UploadReceiptResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UploadReceiptResponse{}, domain.ErrParseUUID
	}

	scanID := uuid.New()

	objectKey, err := s.s3.UploadFile(
		fmt.Sprintf("receipt-%s", scanID.String()),
		image,
		"receipts",
		storage.AllowImage...,
	)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}
	imageURL := s.s3.GetPublicLinkKey(objectKey)

	scan := &entities.ReceiptScan{
		ID:       scanID,
		UserID:   userUUID,
		ImageURL: imageURL,
		Status:   ScanPending,
	}
	if err := s.receiptRepository.CreateReceiptScan(ctx, scan); err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	return domain.UploadReceiptResponse{
		ScanID:   scanID.String(),
		ImageURL: imageURL,
		Status:   ScanPending,
	}, nil
}

func (s *receiptService) GetReceiptScan(ctx context.Context, scanID string, userID string) (domain.ReceiptScanResponse, error) {
	scan, err := s.receiptRepository.GetReceiptScanByID(ctx, scanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptScanResponse{}, domain.ErrInvalidReceiptScan
		}
		return domain.ReceiptScanResponse{}, err
	}
	if scan.UserID.String() != userID {
		return domain.ReceiptScanResponse{}, domain.ErrUserNotAllowed
	}

	return domain.ReceiptScanResponse{
		ScanID:     scan.ID.String(),
		ImageURL:   scan.ImageURL,
		Status:     scan.Status,
		ItemsAdded: scan.ItemsAdded,
		CreatedAt:  scan.CreatedAt,
	}, nil
}

func (s *receiptService) ConfirmScannedItems(ctx context.Context, req domain.SaveScannedItemsRequest, userID string) ([]domain.ItemResponse, error) {
	scan, err := s.receiptRepository.GetReceiptScanByID(ctx, req.ScanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidReceiptScan
		}
		return nil, err
	}
	if scan.UserID.String() != userID {
		return nil, domain.ErrUserNotAllowed
	}

	added, err := s.inventoryService.AddScannedItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	scan.Status = ScanConfirmed
	scan.ItemsAdded += len(added)
	if err := s.receiptRepository.UpdateReceiptScan(ctx, scan); err != nil {
		return nil, err
	}

	return added, nil
}
