package store

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/domain"
)

// DefaultNotificationTTL is applied by the severity helpers.
const DefaultNotificationTTL = 5 * time.Second

// NotificationQueue holds transient user-facing status messages with
// per-message auto-expiry. Notifications are presented in insertion order;
// there is no cap and no priority reordering.
type NotificationQueue struct {
	mu     sync.Mutex
	logger *zap.Logger
	nextID int64
	items  []domain.Notification
	timers map[int64]*time.Timer
}

// NewNotificationQueue creates an empty notification queue
func NewNotificationQueue(logger *zap.Logger) *NotificationQueue {
	return &NotificationQueue{
		logger: logger,
		timers: make(map[int64]*time.Timer),
	}
}

// Push adds a notification and schedules its removal after ttl. A ttl <= 0
// means the notification persists until dismissed. Returns the assigned id.
func (q *NotificationQueue) Push(message string, severity domain.Severity, ttl time.Duration) int64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	id := q.nextID

	q.items = append(q.items, domain.Notification{
		ID:       id,
		Message:  message,
		Severity: severity,
	})

	if ttl > 0 {
		q.timers[id] = time.AfterFunc(ttl, func() {
			q.Dismiss(id)
		})
	}

	return id
}

// Dismiss removes a notification immediately regardless of remaining ttl.
// Dismissing an unknown id is a no-op.
func (q *NotificationQueue) Dismiss(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}

	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Active returns the live notifications in insertion order.
func (q *NotificationQueue) Active() []domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]domain.Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Close stops all expiry timers. Pending notifications stay visible.
func (q *NotificationQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
}

// Info pushes an informational notification with the default ttl.
func (q *NotificationQueue) Info(message string) int64 {
	return q.Push(message, domain.SeverityInfo, DefaultNotificationTTL)
}

// Success pushes a success notification with the default ttl.
func (q *NotificationQueue) Success(message string) int64 {
	return q.Push(message, domain.SeveritySuccess, DefaultNotificationTTL)
}

// Warning pushes a warning notification with the default ttl.
func (q *NotificationQueue) Warning(message string) int64 {
	return q.Push(message, domain.SeverityWarning, DefaultNotificationTTL)
}

// Error pushes an error notification with the default ttl.
func (q *NotificationQueue) Error(message string) int64 {
	return q.Push(message, domain.SeverityError, DefaultNotificationTTL)
}
