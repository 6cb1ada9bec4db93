package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduleExpiryReminder_PastExpiry(t *testing.T) {
	d := NewDispatcherWithMailer(zap.NewNop(), "", nil)

	id, err := d.ScheduleExpiryReminder(context.Background(), ReminderRequest{
		ItemID:     "item-1",
		Name:       "Old milk",
		ExpiryDate: time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestScheduleExpiryReminder_TodayIsAlreadyPastReminderPoint(t *testing.T) {
	d := NewDispatcherWithMailer(zap.NewNop(), "", nil)

	// The reminder fires one day before expiry, so an item expiring in a few
	// hours has no future instant left to arm.
	id, err := d.ScheduleExpiryReminder(context.Background(), ReminderRequest{
		ItemID:     "item-2",
		Name:       "Bread",
		ExpiryDate: time.Now().Add(3 * time.Hour),
	})
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestScheduleExpiryReminder_FutureAndCancel(t *testing.T) {
	d := NewDispatcherWithMailer(zap.NewNop(), "", nil)

	id, err := d.ScheduleExpiryReminder(context.Background(), ReminderRequest{
		ItemID:     "item-3",
		Name:       "Cheese",
		ExpiryDate: time.Now().AddDate(0, 0, 5),
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	d.CancelNotification(id)
	// Cancelling twice, or an unknown id, is a no-op.
	d.CancelNotification(id)
	d.CancelNotification("unknown")
}

func TestSendLocalNotification_LogOnlyWithoutRecipient(t *testing.T) {
	called := false
	d := NewDispatcherWithMailer(zap.NewNop(), "", func(to, subject, body string) error {
		called = true
		return nil
	})

	err := d.SendLocalNotification(context.Background(), Notification{
		Title: "Hello",
		Body:  "world",
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestSendLocalNotification_DeliversMail(t *testing.T) {
	var gotTo, gotSubject, gotBody string
	d := NewDispatcherWithMailer(zap.NewNop(), "owner@example.com", func(to, subject, body string) error {
		gotTo, gotSubject, gotBody = to, subject, body
		return nil
	})

	err := d.SendLocalNotification(context.Background(), Notification{
		Title: "Expiring soon",
		Body:  "Milk expires tomorrow",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", gotTo)
	assert.Equal(t, "Expiring soon", gotSubject)
	assert.Contains(t, gotBody, "Milk expires tomorrow")
}

func TestSendLocalNotification_MailerError(t *testing.T) {
	d := NewDispatcherWithMailer(zap.NewNop(), "owner@example.com", func(to, subject, body string) error {
		return errors.New("smtp down")
	})

	err := d.SendLocalNotification(context.Background(), Notification{Title: "t", Body: "b"})
	assert.Error(t, err)
}

func TestNotifyWastePrevented(t *testing.T) {
	var gotSubject, gotBody string
	d := NewDispatcherWithMailer(zap.NewNop(), "owner@example.com", func(to, subject, body string) error {
		gotSubject, gotBody = subject, body
		return nil
	})

	err := d.NotifyWastePrevented(context.Background(), WastePrevented{
		ItemsSaved: 10,
		MoneySaved: 52.5,
		CO2Saved:   10.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Waste prevention milestone", gotSubject)
	assert.Contains(t, gotBody, "10 items")
}
