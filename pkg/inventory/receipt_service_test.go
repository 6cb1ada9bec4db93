package inventory

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/netanelbarel75/shelflife-ai-sub001/domain"
	"github.com/netanelbarel75/shelflife-ai-sub001/entities"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/storage"
)

type mockReceiptRepository struct {
	scans map[string]*entities.ReceiptScan
}

func newMockReceiptRepository() *mockReceiptRepository {
	return &mockReceiptRepository{scans: make(map[string]*entities.ReceiptScan)}
}

func (m *mockReceiptRepository) CreateReceiptScan(_ context.Context, scan *entities.ReceiptScan) error {
	m.scans[scan.ID.String()] = scan
	return nil
}

func (m *mockReceiptRepository) GetReceiptScanByID(_ context.Context, id string) (*entities.ReceiptScan, error) {
	scan, ok := m.scans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return scan, nil
}

func (m *mockReceiptRepository) UpdateReceiptScan(_ context.Context, scan *entities.ReceiptScan) error {
	m.scans[scan.ID.String()] = scan
	return nil
}

type stubS3 struct{}

func (stubS3) UploadFile(fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	return folder + "/" + fileName + ".jpg", nil
}
func (stubS3) UpdateFile(objectKey string, _ *multipart.FileHeader, _ ...string) (string, error) {
	return objectKey, nil
}
func (stubS3) DeleteFile(string) error                  { return nil }
func (stubS3) GetPublicLinkKey(objectKey string) string { return "https://cdn.example.com/" + objectKey }
func (stubS3) GetObjectKeyFromLink(link string) string  { return link }

func newReceiptSetup(t *testing.T) (ReceiptService, *mockReceiptRepository, InventoryService) {
	t.Helper()
	repo := newMockReceiptRepository()
	inv := NewInventoryService(storage.NewMemoryStore(), &mockDispatcher{}, zap.NewNop(), 0)
	svc := NewReceiptService(repo, inv, stubS3{})
	return svc, repo, inv
}

func TestUploadReceipt(t *testing.T) {
	svc, repo, _ := newReceiptSetup(t)
	userID := uuid.New().String()

	res, err := svc.UploadReceipt(context.Background(), userID, &multipart.FileHeader{Filename: "receipt.jpg"})
	require.NoError(t, err)

	assert.NotEmpty(t, res.ScanID)
	assert.Equal(t, ScanPending, res.Status)
	assert.Contains(t, res.ImageURL, "receipts/receipt-")

	stored := repo.scans[res.ScanID]
	require.NotNil(t, stored)
	assert.Equal(t, userID, stored.UserID.String())
}

func TestUploadReceipt_BadUserID(t *testing.T) {
	svc, _, _ := newReceiptSetup(t)

	_, err := svc.UploadReceipt(context.Background(), "not-a-uuid", &multipart.FileHeader{Filename: "r.jpg"})
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestGetReceiptScan_OwnershipEnforced(t *testing.T) {
	svc, _, _ := newReceiptSetup(t)
	owner := uuid.New().String()

	uploaded, err := svc.UploadReceipt(context.Background(), owner, &multipart.FileHeader{Filename: "r.jpg"})
	require.NoError(t, err)

	res, err := svc.GetReceiptScan(context.Background(), uploaded.ScanID, owner)
	require.NoError(t, err)
	assert.Equal(t, ScanPending, res.Status)

	_, err = svc.GetReceiptScan(context.Background(), uploaded.ScanID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	_, err = svc.GetReceiptScan(context.Background(), uuid.New().String(), owner)
	assert.ErrorIs(t, err, domain.ErrInvalidReceiptScan)
}

func TestConfirmScannedItems(t *testing.T) {
	svc, repo, inv := newReceiptSetup(t)
	owner := uuid.New().String()

	uploaded, err := svc.UploadReceipt(context.Background(), owner, &multipart.FileHeader{Filename: "r.jpg"})
	require.NoError(t, err)

	expiry := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	added, err := svc.ConfirmScannedItems(context.Background(), domain.SaveScannedItemsRequest{
		ScanID: uploaded.ScanID,
		Items: []domain.ScannedItemRequest{
			{Name: "Milk", OriginalName: "MILK WHL 2L", Category: entities.CategoryDairy, ExpiryDate: expiry},
			{Name: "Bread", Category: entities.CategoryBakery, ExpiryDate: expiry},
		},
	}, owner)
	require.NoError(t, err)
	require.Len(t, added, 2)

	scan := repo.scans[uploaded.ScanID]
	assert.Equal(t, ScanConfirmed, scan.Status)
	assert.Equal(t, 2, scan.ItemsAdded)

	assert.Len(t, inv.GetInventory(context.Background(), domain.InventoryFilter{}), 2)
}

func TestConfirmScannedItems_UnknownScan(t *testing.T) {
	svc, _, _ := newReceiptSetup(t)

	_, err := svc.ConfirmScannedItems(context.Background(), domain.SaveScannedItemsRequest{
		ScanID: uuid.New().String(),
		Items:  []domain.ScannedItemRequest{},
	}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrInvalidReceiptScan)
}
