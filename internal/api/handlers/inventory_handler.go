package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/netanelbarel75/shelflife-ai-sub001/domain"
	"github.com/netanelbarel75/shelflife-ai-sub001/internal/api/presenters"
	"github.com/netanelbarel75/shelflife-ai-sub001/internal/utils/storage"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/inventory"
)

type (
	InventoryHandler interface {
		AddItem(c *fiber.Ctx) error
		GetInventory(c *fiber.Ctx) error
		GetItemDetails(c *fiber.Ctx) error
		UpdateItem(c *fiber.Ctx) error
		MarkAsUsed(c *fiber.Ctx) error
		ShareItem(c *fiber.Ctx) error
		AddPhoto(c *fiber.Ctx) error
		GetExpiryAlerts(c *fiber.Ctx) error
		GetStats(c *fiber.Ctx) error
		ExportInventory(c *fiber.Ctx) error
		ImportInventory(c *fiber.Ctx) error
		UploadReceipt(c *fiber.Ctx) error
		GetReceiptScan(c *fiber.Ctx) error
		SaveScannedItems(c *fiber.Ctx) error
	}

	inventoryHandler struct {
		inventoryService inventory.InventoryService
		receiptService   inventory.ReceiptService
		s3               storage.AwsS3
		validator        *validator.Validate
	}
)

func NewInventoryHandler(inventoryService inventory.InventoryService, receiptService inventory.ReceiptService, s3 storage.AwsS3, validator *validator.Validate) InventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
		receiptService:   receiptService,
		s3:               s3,
		validator:        validator,
	}
}

func (h *inventoryHandler) AddItem(c *fiber.Ctx) error {
	req := new(domain.AddItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddItem, err)
	}

	res, err := h.inventoryService.AddItem(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddItem)
}

func (h *inventoryHandler) GetInventory(c *fiber.Ctx) error {
	filter := domain.InventoryFilter{
		Statuses:   splitQuery(c.Query("status")),
		Categories: splitQuery(c.Query("category")),
		Locations:  splitQuery(c.Query("location")),
		Search:     c.Query("search"),
	}

	items := h.inventoryService.GetInventory(c.Context(), filter)
	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"total": len(items),
	}, fiber.StatusOK, domain.MessageSuccessGetInventory)
}

func (h *inventoryHandler) GetItemDetails(c *fiber.Ctx) error {
	itemID := c.Params("id")

	item, err := h.inventoryService.GetItemByID(c.Context(), itemID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetInventory, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetInventory)
}

func (h *inventoryHandler) UpdateItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	req := new(domain.UpdateItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateItem, err)
	}

	if err := h.inventoryService.UpdateItem(c.Context(), itemID, *req); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateItem)
}

func (h *inventoryHandler) MarkAsUsed(c *fiber.Ctx) error {
	itemID := c.Params("id")
	req := new(domain.MarkAsUsedRequest)

	if err := c.BodyParser(req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.inventoryService.MarkAsUsed(c.Context(), itemID, req.Notes); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedMarkAsUsed, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkAsUsed)
}

func (h *inventoryHandler) ShareItem(c *fiber.Ctx) error {
	itemID := c.Params("id")

	if err := h.inventoryService.ShareInMarketplace(c.Context(), itemID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedShareItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessShareItem)
}

func (h *inventoryHandler) AddPhoto(c *fiber.Ctx) error {
	itemID := c.Params("id")

	file, err := c.FormFile("photo")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	objectKey, err := h.s3.UploadFile(
		fmt.Sprintf("item-%s-%s", itemID, uuid.New().String()),
		file,
		"items",
		storage.AllowImage...,
	)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddPhoto, err)
	}

	photoURL := h.s3.GetPublicLinkKey(objectKey)
	if err := h.inventoryService.AddPhoto(c.Context(), itemID, photoURL); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddPhoto, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"photo_url": photoURL}, fiber.StatusOK, domain.MessageSuccessAddPhoto)
}

func (h *inventoryHandler) GetExpiryAlerts(c *fiber.Ctx) error {
	alerts := h.inventoryService.GetExpiryAlerts(c.Context())
	return presenters.SuccessResponse(c, fiber.Map{
		"alerts": alerts,
		"total":  len(alerts),
	}, fiber.StatusOK, domain.MessageSuccessGetAlerts)
}

func (h *inventoryHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.inventoryService.GetInventoryStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetStats)
}

func (h *inventoryHandler) ExportInventory(c *fiber.Ctx) error {
	res, err := h.inventoryService.ExportInventory(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExportInventory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessExportInventory)
}

func (h *inventoryHandler) ImportInventory(c *fiber.Ctx) error {
	req := new(domain.ImportInventoryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImportInventory, err)
	}

	if err := h.inventoryService.ImportInventory(c.Context(), req.Data); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImportInventory, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessImportInventory)
}

func (h *inventoryHandler) UploadReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	file, err := c.FormFile("receipt_image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.receiptService.UploadReceipt(c.Context(), userID, file)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadReceipt)
}

func (h *inventoryHandler) GetReceiptScan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	scanID := c.Params("id")

	res, err := h.receiptService.GetReceiptScan(c.Context(), scanID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetReceiptScan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReceiptScan)
}

func (h *inventoryHandler) SaveScannedItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SaveScannedItemsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveScannedItems, err)
	}

	added, err := h.receiptService.ConfirmScannedItems(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSaveScannedItems, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": added,
		"total": len(added),
	}, fiber.StatusCreated, domain.MessageSuccessSaveScannedItems)
}

func splitQuery(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrInvalidReceiptScan):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}
