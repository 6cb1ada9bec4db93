package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/netanelbarel75/shelflife-ai-sub001/domain"
	"github.com/netanelbarel75/shelflife-ai-sub001/internal/api/presenters"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/payment"
)

type (
	PaymentHandler interface {
		MidtransWebhook(c *fiber.Ctx) error
	}

	paymentHandler struct {
		paymentService payment.PaymentService
		validator      *validator.Validate
	}
)

func NewPaymentHandler(paymentService payment.PaymentService, validator *validator.Validate) PaymentHandler {
	return &paymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

func (h *paymentHandler) MidtransWebhook(c *fiber.Ctx) error {
	req := new(domain.MidtransNotification)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedWebhook, err)
	}

	if err := h.paymentService.HandleNotification(c.Context(), *req); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrTransactionNotFound) {
			status = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedWebhook, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessWebhook)
}
