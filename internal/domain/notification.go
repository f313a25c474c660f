package domain

import (
	"fmt"
	"time"
)

type Channel string

const (
	ChannelPush Channel = "push"
	ChannelChat Channel = "chat"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderConfirmed     = "order.confirmed"
	EventOrderFulfilled     = "order.fulfilled"
	EventOrderCancelled     = "order.cancelled"
	EventOrderStatusChanged = "order.status_changed"
)

func EventForStatus(status OrderStatus) string {
	switch status {
	case StatusNew:
		return EventOrderCreated
	case StatusConfirmed:
		return EventOrderConfirmed
	case StatusFulfilled:
		return EventOrderFulfilled
	case StatusCancelled:
		return EventOrderCancelled
	default:
		return EventOrderStatusChanged
	}
}

// QuietHours is a per-user window during which notifications are deferred.
// The window may wrap past midnight (e.g. 22:00 - 07:00).
type QuietHours struct {
	Enabled bool
	Start   string // "HH:MM"
	End     string // "HH:MM"
}

func (q QuietHours) Active(now time.Time) bool {
	if !q.Enabled {
		return false
	}
	start, err := parseClock(q.Start)
	if err != nil {
		return false
	}
	end, err := parseClock(q.End)
	if err != nil {
		return false
	}
	cur := now.Hour()*60 + now.Minute()
	if start <= end {
		return start <= cur && cur < end
	}
	// wrapping window
	return cur >= start || cur < end
}

// NextEnd returns the next moment the quiet window closes, which is when a
// deferred notification becomes due.
func (q QuietHours) NextEnd(now time.Time) time.Time {
	end, err := parseClock(q.End)
	if err != nil {
		return now
	}
	due := time.Date(now.Year(), now.Month(), now.Day(), end/60, end%60, 0, 0, now.Location())
	if !due.After(now) {
		due = due.Add(24 * time.Hour)
	}
	return due
}

func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value out of range: %s", s)
	}
	return h*60 + m, nil
}

type NotificationPreference struct {
	UserID     string
	Locale     string
	OptedOut   []string // event names the user refuses
	QuietHours QuietHours
	Channels   []Channel
}

// DefaultPreference applies when a user never touched notification settings:
// push enabled, no opt-outs, no quiet hours.
func DefaultPreference(userID string) *NotificationPreference {
	return &NotificationPreference{
		UserID:   userID,
		Locale:   "ko",
		Channels: []Channel{ChannelPush},
	}
}

func (p *NotificationPreference) OptedOutOf(event string) bool {
	for _, e := range p.OptedOut {
		if e == event {
			return true
		}
	}
	return false
}

// NotificationFailure is a dead-letter queue entry. Deleted on successful
// retry, kept (with attempts bumped) otherwise.
type NotificationFailure struct {
	ID        string
	StoreID   string
	Channel   Channel
	Recipient string // push token or webhook URL
	Subject   string
	Body      string
	Reason    string
	Attempts  int
	CreatedAt time.Time
}

// DeferredNotification carries a quiet-hours deferral until its due time.
type DeferredNotification struct {
	ID           string
	StoreID      string
	OrderID      string
	UserID       string
	Subject      string
	Body         string
	DeliverAfter time.Time
	CreatedAt    time.Time
}

type PushToken struct {
	UserID     string
	Token      string
	Platform   string
	LastUsedAt time.Time
}

// DispatchControl is the versioned operator kill-switch singleton, read
// fresh on every dispatch so replicas never act on a stale value.
type DispatchControl struct {
	Version int64
	Paused  bool
}
