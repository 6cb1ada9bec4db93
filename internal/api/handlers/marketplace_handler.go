package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/netanelbarel75/shelflife-ai-sub001/domain"
	"github.com/netanelbarel75/shelflife-ai-sub001/internal/api/presenters"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/marketplace"
)

type (
	MarketplaceHandler interface {
		CreateListing(c *fiber.Ctx) error
		GetNearbyListings(c *fiber.Ctx) error
		GetMyListings(c *fiber.Ctx) error
		ClaimListing(c *fiber.Ctx) error
	}

	marketplaceHandler struct {
		marketplaceService marketplace.MarketplaceService
		validator          *validator.Validate
	}
)

func NewMarketplaceHandler(marketplaceService marketplace.MarketplaceService, validator *validator.Validate) MarketplaceHandler {
	return &marketplaceHandler{
		marketplaceService: marketplaceService,
		validator:          validator,
	}
}

func (h *marketplaceHandler) CreateListing(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateListingRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	// Listing image is optional.
	if file, err := c.FormFile("image"); err == nil {
		req.Image = file
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateListing, err)
	}

	res, err := h.marketplaceService.CreateListing(c.Context(), *req, userID)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrItemNotFound) {
			status = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedCreateListing, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateListing)
}

func (h *marketplaceHandler) GetNearbyListings(c *fiber.Ctx) error {
	req := new(domain.NearbyListingsRequest)

	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedNearbyListings, err)
	}

	listings, err := h.marketplaceService.GetNearbyListings(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedNearbyListings, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"listings": listings,
		"total":    len(listings),
	}, fiber.StatusOK, domain.MessageSuccessNearbyListings)
}

func (h *marketplaceHandler) GetMyListings(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	listings, err := h.marketplaceService.GetUserListings(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetListings, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"listings": listings,
		"total":    len(listings),
	}, fiber.StatusOK, domain.MessageSuccessGetListings)
}

func (h *marketplaceHandler) ClaimListing(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listingID := c.Params("id")
	email := c.Query("email")

	res, err := h.marketplaceService.ClaimListing(c.Context(), listingID, userID, email)
	if err != nil {
		status := fiber.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrListingNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, domain.ErrListingUnavailable), errors.Is(err, domain.ErrOwnListingClaim):
			status = fiber.StatusConflict
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedClaimListing, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessClaimListing)
}
