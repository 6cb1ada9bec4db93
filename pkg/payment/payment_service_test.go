package payment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/netanelbarel75/shelflife-ai-sub001/domain"
	"github.com/netanelbarel75/shelflife-ai-sub001/entities"
)

type mockPaymentRepository struct {
	byOrderID map[string]*entities.Transaction
}

func newMockPaymentRepository() *mockPaymentRepository {
	return &mockPaymentRepository{byOrderID: make(map[string]*entities.Transaction)}
}

func (m *mockPaymentRepository) CreateTransaction(_ context.Context, tx *entities.Transaction) error {
	m.byOrderID[tx.OrderID] = tx
	return nil
}

func (m *mockPaymentRepository) GetTransactionByOrderID(_ context.Context, orderID string) (*entities.Transaction, error) {
	tx, ok := m.byOrderID[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tx, nil
}

func (m *mockPaymentRepository) UpdateTransaction(_ context.Context, tx *entities.Transaction) error {
	m.byOrderID[tx.OrderID] = tx
	return nil
}

type mockSnapClient struct {
	fail bool
}

func (m *mockSnapClient) CreateTransaction(_ *snap.Request) (*snap.Response, *midtrans.Error) {
	if m.fail {
		return nil, &midtrans.Error{Message: "midtrans rejected the request"}
	}
	return &snap.Response{
		Token:       "snap-token",
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v3/redirection/snap-token",
	}, nil
}

type mockFinalizer struct {
	updates map[string]string
}

func (m *mockFinalizer) UpdateListingStatus(_ context.Context, id string, status string) error {
	if m.updates == nil {
		m.updates = make(map[string]string)
	}
	m.updates[id] = status
	return nil
}

func TestCreateInvoice(t *testing.T) {
	repo := newMockPaymentRepository()
	svc := NewPaymentService(repo, &mockSnapClient{}, &mockFinalizer{})

	listingID := uuid.New()
	res, err := svc.CreateInvoice(context.Background(), domain.PaymentRequest{
		Amount:    15000,
		Email:     "buyer@example.com",
		ListingID: listingID.String(),
	}, uuid.New().String())
	require.NoError(t, err)
	assert.NotEmpty(t, res.OrderID)
	assert.Contains(t, res.InvoiceURL, "midtrans.com")

	stored := repo.byOrderID[res.OrderID]
	require.NotNil(t, stored)
	assert.Equal(t, entities.TransactionPending, stored.Status)
	require.NotNil(t, stored.ListingID)
	assert.Equal(t, listingID, *stored.ListingID)
}

func TestCreateInvoice_GatewayFailure(t *testing.T) {
	svc := NewPaymentService(newMockPaymentRepository(), &mockSnapClient{fail: true}, &mockFinalizer{})

	_, err := svc.CreateInvoice(context.Background(), domain.PaymentRequest{
		Amount: 15000,
		Email:  "buyer@example.com",
	}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrPaymentFailed)
}

func TestHandleNotification_SettlementCompletesListing(t *testing.T) {
	repo := newMockPaymentRepository()
	finalizer := &mockFinalizer{}
	svc := NewPaymentService(repo, &mockSnapClient{}, finalizer)

	listingID := uuid.New()
	tx := &entities.Transaction{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ListingID: &listingID,
		OrderID:   "shelflife-order-1",
		Amount:    15000,
		Status:    entities.TransactionPending,
	}
	require.NoError(t, repo.CreateTransaction(context.Background(), tx))

	err := svc.HandleNotification(context.Background(), domain.MidtransNotification{
		OrderID:           "shelflife-order-1",
		TransactionStatus: "settlement",
	})
	require.NoError(t, err)

	assert.Equal(t, entities.TransactionSettled, repo.byOrderID["shelflife-order-1"].Status)
	assert.Equal(t, entities.ListingCompleted, finalizer.updates[listingID.String()])
}

func TestHandleNotification_ExpiryReleasesListing(t *testing.T) {
	repo := newMockPaymentRepository()
	finalizer := &mockFinalizer{}
	svc := NewPaymentService(repo, &mockSnapClient{}, finalizer)

	listingID := uuid.New()
	tx := &entities.Transaction{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ListingID: &listingID,
		OrderID:   "shelflife-order-2",
		Amount:    15000,
		Status:    entities.TransactionPending,
	}
	require.NoError(t, repo.CreateTransaction(context.Background(), tx))

	err := svc.HandleNotification(context.Background(), domain.MidtransNotification{
		OrderID:           "shelflife-order-2",
		TransactionStatus: "expire",
	})
	require.NoError(t, err)

	assert.Equal(t, entities.TransactionCancelled, repo.byOrderID["shelflife-order-2"].Status)
	assert.Equal(t, entities.ListingAvailable, finalizer.updates[listingID.String()])
}

func TestHandleNotification_CaptureFraudStatuses(t *testing.T) {
	cases := []struct {
		fraudStatus string
		want        string
	}{
		{"accept", entities.TransactionSettled},
		{"challenge", entities.TransactionPending},
		{"deny", entities.TransactionFailed},
	}

	for _, tc := range cases {
		repo := newMockPaymentRepository()
		svc := NewPaymentService(repo, &mockSnapClient{}, &mockFinalizer{})

		tx := &entities.Transaction{
			ID:      uuid.New(),
			UserID:  uuid.New(),
			OrderID: "shelflife-order-3",
			Amount:  5000,
			Status:  entities.TransactionPending,
		}
		require.NoError(t, repo.CreateTransaction(context.Background(), tx))

		err := svc.HandleNotification(context.Background(), domain.MidtransNotification{
			OrderID:           "shelflife-order-3",
			TransactionStatus: "capture",
			FraudStatus:       tc.fraudStatus,
		})
		require.NoError(t, err)
		assert.Equal(t, tc.want, repo.byOrderID["shelflife-order-3"].Status, "fraud status %s", tc.fraudStatus)
	}
}

func TestHandleNotification_UnknownOrder(t *testing.T) {
	svc := NewPaymentService(newMockPaymentRepository(), &mockSnapClient{}, &mockFinalizer{})

	err := svc.HandleNotification(context.Background(), domain.MidtransNotification{
		OrderID:           "missing",
		TransactionStatus: "settlement",
	})
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}
