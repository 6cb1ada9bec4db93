package domain

import (
	"errors"
)

var (
	MessageSuccessWebhook = "webhook processed successfully"
	MessageFailedWebhook  = "failed to process webhook"

	ErrTransactionNotFound = errors.New("transaction not found")
)

type (
	PaymentRequest struct {
		Amount    int64  `json:"amount"`
		Email     string `json:"email"`
		ListingID string `json:"listing_id,omitempty"`
	}

	PaymentResponse struct {
		OrderID    string `json:"order_id"`
		InvoiceURL string `json:"invoice_url"`
	}

	MidtransNotification struct {
		OrderID           string `json:"order_id" validate:"required"`
		TransactionStatus string `json:"transaction_status" validate:"required"`
		FraudStatus       string `json:"fraud_status"`
	}
)
