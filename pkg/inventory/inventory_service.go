package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/netanelbarel75/shelflife-ai-sub001/domain"
	"github.com/netanelbarel75/shelflife-ai-sub001/entities"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/notify"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/storage"
)

const (
	inventoryKey  = "inventory"
	wasteStatsKey = "wastePreventionStats"

	// Every celebrationStep-th item saved in a month triggers a
	// waste-prevented notification.
	celebrationStep = 10
)

const (
	UrgencyExpired = "expired"
	UrgencyHigh    = "high"
	UrgencyMedium  = "medium"
	UrgencyLow     = "low"
)

type (
	InventoryService interface {
		// Start loads the persisted collection, runs one reclassification
		// pass and arms the recurring pass. Calling it twice is a no-op.
		Start(ctx context.Context) error
		Stop()

		AddItem(ctx context.Context, req domain.AddItemRequest) (domain.ItemResponse, error)
		AddScannedItems(ctx context.Context, items []domain.ScannedItemRequest) ([]domain.ItemResponse, error)
		UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest) error
		MarkAsUsed(ctx context.Context, id string, notes string) error
		ShareInMarketplace(ctx context.Context, id string) error
		AddPhoto(ctx context.Context, id string, photoURL string) error

		GetItemByID(ctx context.Context, id string) (domain.ItemResponse, error)
		GetInventory(ctx context.Context, filter domain.InventoryFilter) []domain.ItemResponse
		GetExpiryAlerts(ctx context.Context) []domain.ExpiryAlert
		GetInventoryStats(ctx context.Context) (domain.InventoryStatsResponse, error)

		ExportInventory(ctx context.Context) (domain.ExportInventoryResponse, error)
		ImportInventory(ctx context.Context, data string) error
	}

	inventoryService struct {
		store      storage.Store
		dispatcher notify.Dispatcher
		log        *zap.Logger
		interval   time.Duration
		now        func() time.Time

		mu      sync.Mutex
		items   map[string]*entities.InventoryItem
		started bool
		stopCh  chan struct{}
	}
)

func NewInventoryService(store storage.Store, dispatcher notify.Dispatcher, log *zap.Logger, interval time.Duration) InventoryService {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &inventoryService{
		store:      store,
		dispatcher: dispatcher,
		log:        log,
		interval:   interval,
		now:        time.Now,
		items:      make(map[string]*entities.InventoryItem),
		stopCh:     make(chan struct{}),
	}
}

func (s *inventoryService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh

	blob, ok, err := s.store.Get(ctx, inventoryKey)
	if err != nil {
		// Start empty rather than refuse to boot; the next successful
		// persist re-establishes the mirror.
		s.log.Error("failed to load inventory, starting empty", zap.Error(err))
	} else if ok {
		var loaded []*entities.InventoryItem
		if err := json.Unmarshal([]byte(blob), &loaded); err != nil {
			s.log.Error("malformed persisted inventory, starting empty", zap.Error(err))
		} else {
			s.items = make(map[string]*entities.InventoryItem, len(loaded))
			for _, item := range loaded {
				s.items[item.ID] = item
			}
		}
	}
	s.mu.Unlock()

	s.reclassifyPass(ctx)

	go s.runReclassifier(stopCh)
	return nil
}

func (s *inventoryService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	close(s.stopCh)
}

func (s *inventoryService) runReclassifier(stopCh <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.reclassifyPass(context.Background())
		case <-stopCh:
			return
		}
	}
}

func (s *inventoryService) AddItem(ctx context.Context, req domain.AddItemRequest) (domain.ItemResponse, error) {
	if !entities.ValidCategory(req.Category) {
		return domain.ItemResponse{}, domain.ErrInvalidCategory
	}

	expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return domain.ItemResponse{}, domain.ErrInvalidExpiryDate
	}

	if req.Quantity < 0 {
		return domain.ItemResponse{}, domain.ErrInvalidQuantity
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	unit := req.Unit
	if unit == "" {
		unit = "pieces"
	}
	location := req.Location
	if location == "" {
		location = entities.DefaultLocation(req.Category)
	} else if !entities.ValidLocation(location) {
		return domain.ItemResponse{}, domain.ErrInvalidLocation
	}

	now := s.now()
	item := &entities.InventoryItem{
		ID:           uuid.New().String(),
		Name:         req.Name,
		OriginalName: req.OriginalName,
		Category:     req.Category,
		Quantity:     quantity,
		Unit:         unit,
		Price:        req.Price,
		ExpiryDate:   expiryDate,
		Location:     location,
		Notes:        req.Notes,
		Status:       s.classify(expiryDate),
		AddedAt:      now,
		UpdatedAt:    now,
	}

	// Reminder scheduling is best effort; a failure never blocks the add.
	notificationID, err := s.dispatcher.ScheduleExpiryReminder(ctx, notify.ReminderRequest{
		ItemID:     item.ID,
		Name:       item.Name,
		ExpiryDate: item.ExpiryDate,
	})
	if err != nil {
		s.log.Warn("failed to schedule expiry reminder",
			zap.String("item_id", item.ID), zap.Error(err))
	} else if notificationID != "" {
		item.NotificationIDs = append(item.NotificationIDs, notificationID)
	}

	s.mu.Lock()
	s.items[item.ID] = item
	s.persistLocked(ctx)
	s.mu.Unlock()

	return toItemResponse(item), nil
}

func (s *inventoryService) AddScannedItems(ctx context.Context, items []domain.ScannedItemRequest) ([]domain.ItemResponse, error) {
	responses := make([]domain.ItemResponse, 0, len(items))
	for _, scanned := range items {
		res, err := s.AddItem(ctx, domain.AddItemRequest{
			Name:         scanned.Name,
			OriginalName: scanned.OriginalName,
			Category:     scanned.Category,
			Quantity:     scanned.Quantity,
			Unit:         scanned.Unit,
			ExpiryDate:   scanned.ExpiryDate,
			Price:        scanned.Price,
		})
		if err != nil {
			return nil, err
		}
		responses = append(responses, res)
	}
	return responses, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest) error {
	var expiryDate time.Time
	if req.ExpiryDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.ErrInvalidExpiryDate
		}
		expiryDate = parsed
	}
	if req.Category != "" && !entities.ValidCategory(req.Category) {
		return domain.ErrInvalidCategory
	}
	if req.Location != "" && !entities.ValidLocation(req.Location) {
		return domain.ErrInvalidLocation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.Location != "" {
		item.Location = req.Location
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	if !expiryDate.IsZero() {
		item.ExpiryDate = expiryDate
		if !item.Terminal() {
			item.Status = s.classify(expiryDate)
		}
		// Reminder re-scheduling is deliberately the caller's concern.
	}

	item.UpdatedAt = s.now()
	s.persistLocked(ctx)
	return nil
}

func (s *inventoryService) MarkAsUsed(ctx context.Context, id string, notes string) error {
	s.mu.Lock()

	item, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return domain.ErrItemNotFound
	}

	now := s.now()
	item.Status = entities.StatusUsed
	if item.ConsumedAt == nil {
		consumed := now
		item.ConsumedAt = &consumed
	}
	if notes != "" {
		if item.Notes != "" {
			item.Notes += "\n" + notes
		} else {
			item.Notes = notes
		}
	}
	item.UpdatedAt = now

	pending := item.NotificationIDs
	item.NotificationIDs = nil

	s.persistLocked(ctx)
	price := item.Price
	category := item.Category
	s.mu.Unlock()

	for _, notificationID := range pending {
		s.dispatcher.CancelNotification(notificationID)
	}

	s.updateWastePrevention(ctx, category, price)
	return nil
}

func (s *inventoryService) ShareInMarketplace(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}

	item.SharedInMarket = true
	item.UpdatedAt = s.now()
	s.persistLocked(ctx)
	return nil
}

func (s *inventoryService) AddPhoto(ctx context.Context, id string, photoURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}

	item.Photos = append(item.Photos, photoURL)
	item.UpdatedAt = s.now()
	s.persistLocked(ctx)
	return nil
}

func (s *inventoryService) GetItemByID(_ context.Context, id string) (domain.ItemResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return domain.ItemResponse{}, domain.ErrItemNotFound
	}
	return toItemResponse(item), nil
}

func (s *inventoryService) GetInventory(_ context.Context, filter domain.InventoryFilter) []domain.ItemResponse {
	s.mu.Lock()
	matched := make([]*entities.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		if matchesFilter(item, filter) {
			matched = append(matched, item)
		}
	}
	s.mu.Unlock()

	// Ascending by expiry; items without a valid date sort last.
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i].ExpiryDate, matched[j].ExpiryDate
		if a.IsZero() {
			return false
		}
		if b.IsZero() {
			return true
		}
		return a.Before(b)
	})

	result := make([]domain.ItemResponse, 0, len(matched))
	for _, item := range matched {
		result = append(result, toItemResponse(item))
	}
	return result
}

func (s *inventoryService) GetExpiryAlerts(_ context.Context) []domain.ExpiryAlert {
	now := s.now()

	s.mu.Lock()
	alerts := make([]domain.ExpiryAlert, 0)
	for _, item := range s.items {
		if item.Terminal() {
			continue
		}
		days := daysUntilExpiry(now, item.ExpiryDate)
		if days > 7 {
			continue
		}
		urgency, actions := classifyUrgency(days)
		alerts = append(alerts, domain.ExpiryAlert{
			ItemID:           item.ID,
			ItemName:         item.Name,
			DaysUntilExpiry:  days,
			Urgency:          urgency,
			SuggestedActions: actions,
		})
	}
	s.mu.Unlock()

	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := urgencyRank(alerts[i].Urgency), urgencyRank(alerts[j].Urgency)
		if ri != rj {
			return ri < rj
		}
		return alerts[i].DaysUntilExpiry < alerts[j].DaysUntilExpiry
	})
	return alerts
}

func (s *inventoryService) GetInventoryStats(ctx context.Context) (domain.InventoryStatsResponse, error) {
	stats := domain.InventoryStatsResponse{
		ByCategory: make(map[string]int, len(entities.Categories)),
	}
	for _, category := range entities.Categories {
		stats.ByCategory[category] = 0
	}

	s.mu.Lock()
	for _, item := range s.items {
		stats.TotalItems++
		switch item.Status {
		case entities.StatusFresh:
			stats.FreshItems++
		case entities.StatusNearing:
			stats.NearingItems++
		case entities.StatusExpired:
			stats.ExpiredItems++
		}
		stats.ByCategory[item.Category]++
	}
	s.mu.Unlock()

	rollup := s.loadWasteStats(ctx)
	stats.WastePrevention = domain.WastePreventionResponse{
		ItemsSaved:     rollup.ItemCount,
		EstimatedValue: rollup.EstimatedValue,
		CO2Saved:       rollup.CO2Saved,
	}
	return stats, nil
}

func (s *inventoryService) ExportInventory(_ context.Context) (domain.ExportInventoryResponse, error) {
	s.mu.Lock()
	list := make([]*entities.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		list = append(list, item)
	}
	s.mu.Unlock()

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].AddedAt.Before(list[j].AddedAt)
	})

	blob, err := json.Marshal(list)
	if err != nil {
		return domain.ExportInventoryResponse{}, err
	}
	return domain.ExportInventoryResponse{
		Data:      string(blob),
		ItemCount: len(list),
	}, nil
}

// ImportInventory parses the payload into a scratch slice first and swaps
// the live collection only on full success, so a malformed payload can
// never wipe existing state.
func (s *inventoryService) ImportInventory(ctx context.Context, data string) error {
	var imported []*entities.InventoryItem
	if err := json.Unmarshal([]byte(data), &imported); err != nil {
		return domain.ErrInvalidImport
	}

	next := make(map[string]*entities.InventoryItem, len(imported))
	for _, item := range imported {
		if item.ID == "" {
			return domain.ErrInvalidImport
		}
		next[item.ID] = item
	}

	s.mu.Lock()
	s.items = next
	s.persistLocked(ctx)
	s.mu.Unlock()
	return nil
}

// reclassifyPass re-derives the status of every non-terminal item and, when
// urgent alerts exist, sends one aggregate notification.
func (s *inventoryService) reclassifyPass(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	changed := false
	for _, item := range s.items {
		if item.Terminal() {
			continue
		}
		status := s.classify(item.ExpiryDate)
		if status != item.Status {
			item.Status = status
			item.UpdatedAt = now
			changed = true
		}
	}
	if changed {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	urgent := 0
	for _, alert := range s.GetExpiryAlerts(ctx) {
		if alert.Urgency == UrgencyExpired || alert.Urgency == UrgencyHigh {
			urgent++
		}
	}
	if urgent == 0 {
		return
	}

	body := fmt.Sprintf("%d items need to be used soon or discarded", urgent)
	if urgent == 1 {
		body = "1 item needs to be used soon or discarded"
	}
	err := s.dispatcher.SendLocalNotification(ctx, notify.Notification{
		Title: "Items need attention",
		Body:  body,
		Data:  map[string]string{"urgent_count": strconv.Itoa(urgent)},
		Sound: true,
	})
	if err != nil {
		s.log.Warn("failed to send urgency summary", zap.Error(err))
	}
}

func (s *inventoryService) updateWastePrevention(ctx context.Context, category string, price float64) {
	now := s.now()
	rollup := s.loadWasteStats(ctx)

	// Simple monthly rollover, not a sliding window.
	if rollup.LastUpdated.Month() != now.Month() || rollup.LastUpdated.Year() != now.Year() {
		rollup = entities.WastePreventionStats{}
	}

	co2, ok := entities.CO2PerCategory[category]
	if !ok {
		co2 = entities.CO2PerCategory[entities.CategoryOther]
	}

	rollup.ItemCount++
	rollup.EstimatedValue += price
	rollup.CO2Saved += co2
	rollup.LastUpdated = now

	blob, err := json.Marshal(rollup)
	if err != nil {
		s.log.Error("failed to encode waste stats", zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, wasteStatsKey, string(blob)); err != nil {
		s.log.Error("failed to persist waste stats", zap.Error(err))
	}

	if rollup.ItemCount%celebrationStep == 0 {
		err := s.dispatcher.NotifyWastePrevented(ctx, notify.WastePrevented{
			ItemsSaved: rollup.ItemCount,
			MoneySaved: rollup.EstimatedValue,
			CO2Saved:   rollup.CO2Saved,
		})
		if err != nil {
			s.log.Warn("failed to send waste-prevented notification", zap.Error(err))
		}
	}
}

func (s *inventoryService) loadWasteStats(ctx context.Context) entities.WastePreventionStats {
	var rollup entities.WastePreventionStats
	blob, ok, err := s.store.Get(ctx, wasteStatsKey)
	if err != nil {
		s.log.Error("failed to load waste stats", zap.Error(err))
		return rollup
	}
	if !ok {
		return rollup
	}
	if err := json.Unmarshal([]byte(blob), &rollup); err != nil {
		s.log.Error("malformed waste stats, resetting", zap.Error(err))
		return entities.WastePreventionStats{}
	}
	return rollup
}

// persistLocked writes the serialized collection to the store. A failed
// write leaves the in-memory state ahead of the durable mirror until the
// next successful persist; that staleness window is accepted, never fatal.
// Callers must hold s.mu.
func (s *inventoryService) persistLocked(ctx context.Context) {
	list := make([]*entities.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		list = append(list, item)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].AddedAt.Before(list[j].AddedAt)
	})

	blob, err := json.Marshal(list)
	if err != nil {
		s.log.Error("failed to encode inventory", zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, inventoryKey, string(blob)); err != nil {
		s.log.Error("failed to persist inventory", zap.Error(err))
	}
}

func (s *inventoryService) classify(expiryDate time.Time) string {
	days := daysUntilExpiry(s.now(), expiryDate)
	switch {
	case days < 0:
		return entities.StatusExpired
	case days <= 2:
		return entities.StatusNearing
	default:
		return entities.StatusFresh
	}
}

func daysUntilExpiry(now, expiryDate time.Time) int {
	return int(math.Ceil(expiryDate.Sub(now).Hours() / 24))
}

func classifyUrgency(days int) (string, []string) {
	switch {
	case days < 0:
		return UrgencyExpired, []string{"Discard safely", "Check if still usable"}
	case days == 0:
		return UrgencyHigh, []string{"Use immediately", "Cook and freeze", "Share in marketplace"}
	case days == 1:
		return UrgencyHigh, []string{"Use tomorrow", "Share in marketplace", "Prepare meal"}
	case days <= 3:
		return UrgencyMedium, []string{"Plan meals", "Share in marketplace", "Freeze if possible"}
	default:
		return UrgencyLow, []string{"Include in meal planning"}
	}
}

func urgencyRank(urgency string) int {
	switch urgency {
	case UrgencyExpired:
		return 0
	case UrgencyHigh:
		return 1
	case UrgencyMedium:
		return 2
	default:
		return 3
	}
}

func matchesFilter(item *entities.InventoryItem, filter domain.InventoryFilter) bool {
	if len(filter.Statuses) > 0 && !contains(filter.Statuses, item.Status) {
		return false
	}
	if len(filter.Categories) > 0 && !contains(filter.Categories, item.Category) {
		return false
	}
	if len(filter.Locations) > 0 && !contains(filter.Locations, item.Location) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.OriginalName), needle) {
			return false
		}
	}
	return true
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func toItemResponse(item *entities.InventoryItem) domain.ItemResponse {
	return domain.ItemResponse{
		ID:             item.ID,
		Name:           item.Name,
		OriginalName:   item.OriginalName,
		Category:       item.Category,
		Quantity:       item.Quantity,
		Unit:           item.Unit,
		Price:          item.Price,
		ExpiryDate:     item.ExpiryDate,
		Location:       item.Location,
		Notes:          item.Notes,
		Photos:         item.Photos,
		SharedInMarket: item.SharedInMarket,
		Status:         item.Status,
		AddedAt:        item.AddedAt,
		UpdatedAt:      item.UpdatedAt,
		ConsumedAt:     item.ConsumedAt,
	}
}
