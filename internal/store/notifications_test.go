package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/domain"
)

func TestNotificationQueue_PushAndDismiss(t *testing.T) {
	q := NewNotificationQueue(zap.NewNop())
	defer q.Close()

	id1 := q.Push("first", domain.SeverityInfo, 0)
	id2 := q.Push("second", domain.SeverityError, 0)

	assert.Less(t, id1, id2, "ids are monotonic")

	active := q.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "first", active[0].Message)
	assert.Equal(t, "second", active[1].Message)

	q.Dismiss(id1)
	active = q.Active()
	require.Len(t, active, 1)
	assert.Equal(t, id2, active[0].ID)
}

func TestNotificationQueue_DismissUnknownIDIsNoop(t *testing.T) {
	q := NewNotificationQueue(zap.NewNop())
	defer q.Close()

	q.Push("keep", domain.SeverityInfo, 0)
	q.Dismiss(999)

	assert.Len(t, q.Active(), 1)
}

func TestNotificationQueue_TTLExpiry(t *testing.T) {
	q := NewNotificationQueue(zap.NewNop())
	defer q.Close()

	q.Push("transient", domain.SeveritySuccess, 100*time.Millisecond)
	require.Len(t, q.Active(), 1)

	require.Eventually(t, func() bool {
		return len(q.Active()) == 0
	}, time.Second, 10*time.Millisecond, "notification should expire after its ttl")
}

func TestNotificationQueue_ZeroTTLPersistsUntilDismissed(t *testing.T) {
	q := NewNotificationQueue(zap.NewNop())
	defer q.Close()

	id := q.Push("sticky", domain.SeverityWarning, 0)

	time.Sleep(150 * time.Millisecond)
	require.Len(t, q.Active(), 1)

	q.Dismiss(id)
	assert.Empty(t, q.Active())
}

func TestNotificationQueue_InsertionOrderPreserved(t *testing.T) {
	q := NewNotificationQueue(zap.NewNop())
	defer q.Close()

	q.Error("a")
	q.Info("b")
	q.Success("c")

	active := q.Active()
	require.Len(t, active, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{
		active[0].Message, active[1].Message, active[2].Message,
	})
}

func TestNotificationQueue_SeverityHelpers(t *testing.T) {
	q := NewNotificationQueue(zap.NewNop())
	defer q.Close()

	q.Info("i")
	q.Success("s")
	q.Warning("w")
	q.Error("e")

	active := q.Active()
	require.Len(t, active, 4)
	assert.Equal(t, domain.SeverityInfo, active[0].Severity)
	assert.Equal(t, domain.SeveritySuccess, active[1].Severity)
	assert.Equal(t, domain.SeverityWarning, active[2].Severity)
	assert.Equal(t, domain.SeverityError, active[3].Severity)
}
