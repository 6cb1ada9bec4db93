// Package notify delivers local reminders for the inventory tracker.
// Delivery is best effort: a failed send is logged and never propagated
// into the mutation that triggered it.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/netanelbarel75/shelflife-ai-sub001/internal/utils/mailing"
)

type (
	ReminderRequest struct {
		ItemID     string    `json:"item_id"`
		Name       string    `json:"name"`
		ExpiryDate time.Time `json:"expiry_date"`
	}

	Notification struct {
		Title string            `json:"title"`
		Body  string            `json:"body"`
		Data  map[string]string `json:"data,omitempty"`
		Sound bool              `json:"sound"`
	}

	WastePrevented struct {
		ItemsSaved int     `json:"items_saved"`
		MoneySaved float64 `json:"money_saved"`
		CO2Saved   float64 `json:"co2_saved"`
	}

	Dispatcher interface {
		// ScheduleExpiryReminder arms a reminder one day before the item
		// expires. Returns an empty id when that instant is already past.
		ScheduleExpiryReminder(ctx context.Context, req ReminderRequest) (string, error)
		CancelNotification(id string)
		SendLocalNotification(ctx context.Context, n Notification) error
		NotifyWastePrevented(ctx context.Context, w WastePrevented) error
	}

	// Mailer sends one message; swapped out in tests.
	Mailer func(to, subject, body string) error

	localDispatcher struct {
		log     *zap.Logger
		mailer  Mailer
		emailTo string

		mu     sync.Mutex
		timers map[string]*time.Timer
	}
)

// NewDispatcher builds the in-process dispatcher. emailTo may be empty,
// in which case notifications are log-only.
func NewDispatcher(log *zap.Logger, emailTo string) Dispatcher {
	return &localDispatcher{
		log:     log,
		mailer:  mailing.SendMail,
		emailTo: emailTo,
		timers:  make(map[string]*time.Timer),
	}
}

// NewDispatcherWithMailer is the test seam for the mail channel.
func NewDispatcherWithMailer(log *zap.Logger, emailTo string, mailer Mailer) Dispatcher {
	return &localDispatcher{
		log:     log,
		mailer:  mailer,
		emailTo: emailTo,
		timers:  make(map[string]*time.Timer),
	}
}

func (d *localDispatcher) ScheduleExpiryReminder(ctx context.Context, req ReminderRequest) (string, error) {
	remindAt := req.ExpiryDate.AddDate(0, 0, -1)
	delay := time.Until(remindAt)
	if delay <= 0 {
		return "", nil
	}

	id := uuid.New().String()
	timer := time.AfterFunc(delay, func() {
		d.mu.Lock()
		delete(d.timers, id)
		d.mu.Unlock()

		n := Notification{
			Title: "Expiring soon",
			Body:  req.Name + " expires tomorrow",
			Data:  map[string]string{"item_id": req.ItemID},
			Sound: true,
		}
		if err := d.SendLocalNotification(context.Background(), n); err != nil {
			d.log.Warn("expiry reminder delivery failed",
				zap.String("item_id", req.ItemID),
				zap.Error(err))
		}
	})

	d.mu.Lock()
	d.timers[id] = timer
	d.mu.Unlock()

	d.log.Debug("expiry reminder scheduled",
		zap.String("notification_id", id),
		zap.String("item_id", req.ItemID),
		zap.Time("remind_at", remindAt))
	return id, nil
}

func (d *localDispatcher) CancelNotification(id string) {
	d.mu.Lock()
	timer, ok := d.timers[id]
	if ok {
		delete(d.timers, id)
	}
	d.mu.Unlock()

	if ok {
		timer.Stop()
	}
}

func (d *localDispatcher) SendLocalNotification(_ context.Context, n Notification) error {
	d.log.Info("local notification",
		zap.String("title", n.Title),
		zap.String("body", n.Body),
		zap.Any("data", n.Data))

	if d.emailTo == "" {
		return nil
	}
	return d.mailer(d.emailTo, n.Title, "<p>"+n.Body+"</p>")
}

func (d *localDispatcher) NotifyWastePrevented(ctx context.Context, w WastePrevented) error {
	n := Notification{
		Title: "Waste prevention milestone",
		Body: fmt.Sprintf("You saved %d items this month, worth %.2f and %.1f kg of CO2",
			w.ItemsSaved, w.MoneySaved, w.CO2Saved),
		Sound: true,
	}
	return d.SendLocalNotification(ctx, n)
}
