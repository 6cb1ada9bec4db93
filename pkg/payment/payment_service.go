package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"github.com/netanelbarel75/shelflife-ai-sub001/domain"
	"github.com/netanelbarel75/shelflife-ai-sub001/entities"
	"github.com/netanelbarel75/shelflife-ai-sub001/internal/utils"
)

type (
	// SnapClient matches the midtrans snap client surface the service needs.
	SnapClient interface {
		CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
	}

	// ListingFinalizer moves a marketplace listing to its final status once
	// the payment attached to it settles or dies.
	ListingFinalizer interface {
		UpdateListingStatus(ctx context.Context, id string, status string) error
	}

	PaymentService interface {
		CreateInvoice(ctx context.Context, req domain.PaymentRequest, userID string) (domain.PaymentResponse, error)
		HandleNotification(ctx context.Context, notification domain.MidtransNotification) error
	}

	paymentService struct {
		paymentRepository PaymentRepository
		snapClient        SnapClient
		listingFinalizer  ListingFinalizer
	}
)

// NewSnapClient builds the midtrans client from configuration.
func NewSnapClient() SnapClient {
	env := midtrans.Sandbox
	if utils.GetConfig("IsProd") == "true" {
		env = midtrans.Production
	}

	client := &snap.Client{}
	client.New(utils.GetConfig("SERVER_KEY"), env)
	return client
}

func NewPaymentService(paymentRepository PaymentRepository, snapClient SnapClient, listingFinalizer ListingFinalizer) PaymentService {
	return &paymentService{
		paymentRepository: paymentRepository,
		snapClient:        snapClient,
		listingFinalizer:  listingFinalizer,
	}
}

func (s *paymentService) CreateInvoice(ctx context.Context, req domain.PaymentRequest, userID string) (domain.PaymentResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.PaymentResponse{}, domain.ErrParseUUID
	}

	transactionID := uuid.New()
	orderID := fmt.Sprintf("shelflife-%s", transactionID.String())

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
	}

	snapResp, snapErr := s.snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		return domain.PaymentResponse{}, domain.ErrPaymentFailed
	}

	var listingID *uuid.UUID
	if req.ListingID != "" {
		parsed, err := uuid.Parse(req.ListingID)
		if err != nil {
			return domain.PaymentResponse{}, domain.ErrParseUUID
		}
		listingID = &parsed
	}

	transaction := &entities.Transaction{
		ID:        transactionID,
		UserID:    userUUID,
		ListingID: listingID,
		OrderID:   orderID,
		Amount:    req.Amount,
		Status:    entities.TransactionPending,
		SnapURL:   snapResp.RedirectURL,
	}

	if err := s.paymentRepository.CreateTransaction(ctx, transaction); err != nil {
		return domain.PaymentResponse{}, err
	}

	return domain.PaymentResponse{
		OrderID:    orderID,
		InvoiceURL: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, notification domain.MidtransNotification) error {
	transaction, err := s.paymentRepository.GetTransactionByOrderID(ctx, notification.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTransactionNotFound
		}
		return err
	}

	status := transactionStatus(notification)
	if status == transaction.Status {
		return nil
	}

	transaction.Status = status
	if err := s.paymentRepository.UpdateTransaction(ctx, transaction); err != nil {
		return err
	}

	if transaction.ListingID == nil {
		return nil
	}

	switch status {
	case entities.TransactionSettled:
		return s.listingFinalizer.UpdateListingStatus(ctx, transaction.ListingID.String(), entities.ListingCompleted)
	case entities.TransactionFailed, entities.TransactionCancelled:
		// A dead payment releases the reservation back to the market.
		return s.listingFinalizer.UpdateListingStatus(ctx, transaction.ListingID.String(), entities.ListingAvailable)
	}
	return nil
}

func transactionStatus(notification domain.MidtransNotification) string {
	switch notification.TransactionStatus {
	case "capture":
		if notification.FraudStatus == "accept" {
			return entities.TransactionSettled
		}
		if notification.FraudStatus == "challenge" {
			return entities.TransactionPending
		}
		return entities.TransactionFailed
	case "settlement":
		return entities.TransactionSettled
	case "deny":
		return entities.TransactionFailed
	case "cancel", "expire":
		return entities.TransactionCancelled
	default:
		return entities.TransactionPending
	}
}
