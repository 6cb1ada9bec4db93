package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/netanelbarel75/shelflife-ai-sub001/domain"
	"github.com/netanelbarel75/shelflife-ai-sub001/entities"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/inventory"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/notify"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/storage"
)

type silentDispatcher struct{}

func (silentDispatcher) ScheduleExpiryReminder(context.Context, notify.ReminderRequest) (string, error) {
	return "", nil
}
func (silentDispatcher) CancelNotification(string) {}
func (silentDispatcher) SendLocalNotification(context.Context, notify.Notification) error {
	return nil
}
func (silentDispatcher) NotifyWastePrevented(context.Context, notify.WastePrevented) error {
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, inventory.InventoryService) {
	t.Helper()

	inventoryService := inventory.NewInventoryService(storage.NewMemoryStore(), silentDispatcher{}, zap.NewNop(), 0)
	handler := NewInventoryHandler(inventoryService, nil, nil, validator.New())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "test-user")
		return c.Next()
	})
	app.Post("/api/v1/inventory", handler.AddItem)
	app.Get("/api/v1/inventory", handler.GetInventory)
	app.Get("/api/v1/inventory/alerts", handler.GetExpiryAlerts)
	app.Get("/api/v1/inventory/stats", handler.GetStats)
	app.Get("/api/v1/inventory/:id", handler.GetItemDetails)
	app.Post("/api/v1/inventory/:id/used", handler.MarkAsUsed)

	return app, inventoryService
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return parsed
}

func TestAddItemEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	res, err := app.Test(jsonRequest(fiber.MethodPost, "/api/v1/inventory", fiber.Map{
		"name":        "Milk",
		"category":    entities.CategoryDairy,
		"expiry_date": time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)

	body := decodeBody(t, res)
	assert.Equal(t, true, body["status"])
	data := body["data"].(map[string]any)
	assert.Equal(t, entities.StatusNearing, data["status"])
	assert.Equal(t, entities.LocationFridge, data["location"])
}

func TestAddItemEndpoint_ValidationFailure(t *testing.T) {
	app, _ := newTestApp(t)

	res, err := app.Test(jsonRequest(fiber.MethodPost, "/api/v1/inventory", fiber.Map{
		"name": "No expiry",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	body := decodeBody(t, res)
	assert.Equal(t, false, body["status"])
}

func TestGetInventoryEndpoint_Filters(t *testing.T) {
	app, inventoryService := newTestApp(t)
	ctx := context.Background()

	seed := func(name, category string, days int) {
		_, err := inventoryService.AddItem(ctx, addRequest(name, category, days))
		require.NoError(t, err)
	}
	seed("Milk", entities.CategoryDairy, 1)
	seed("Rice", entities.CategoryPantry, 30)

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/inventory?category=dairy", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	body := decodeBody(t, res)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["total"])
}

func TestMarkAsUsedEndpoint_NotFound(t *testing.T) {
	app, _ := newTestApp(t)

	res, err := app.Test(jsonRequest(fiber.MethodPost, "/api/v1/inventory/missing/used", fiber.Map{
		"notes": "gone",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestExpiryAlertsEndpoint(t *testing.T) {
	app, inventoryService := newTestApp(t)

	_, err := inventoryService.AddItem(context.Background(), addRequest("Milk", entities.CategoryDairy, 1))
	require.NoError(t, err)

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/inventory/alerts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	body := decodeBody(t, res)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["total"])
}

func TestStatsEndpoint(t *testing.T) {
	app, inventoryService := newTestApp(t)

	_, err := inventoryService.AddItem(context.Background(), addRequest("Milk", entities.CategoryDairy, 10))
	require.NoError(t, err)

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/inventory/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	body := decodeBody(t, res)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["total_items"])
	assert.Equal(t, float64(1), data["fresh_items"])
}

func addRequest(name, category string, days int) domain.AddItemRequest {
	return domain.AddItemRequest{
		Name:       name,
		Category:   category,
		ExpiryDate: time.Now().AddDate(0, 0, days).Format("2006-01-02"),
	}
}
