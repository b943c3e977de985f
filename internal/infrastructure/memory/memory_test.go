package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerguide/portal/internal/core/domain"
)

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	kv := NewKVStore()

	_, ok, err := kv.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.SetItem(ctx, "k", "v"))
	v, ok, err := kv.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, kv.RemoveItem(ctx, "k"))
	require.NoError(t, kv.RemoveItem(ctx, "k"))
	_, ok, _ = kv.GetItem(ctx, "k")
	assert.False(t, ok)
}

func TestIdempotencyGuard_ClaimExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := NewIdempotencyGuard()
	g.now = func() time.Time { return now }

	fresh, err := g.Claim(ctx, "signup:dev:1", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, _ = g.Claim(ctx, "signup:dev:1", time.Minute)
	assert.False(t, fresh)

	fresh, _ = g.Claim(ctx, "signup:dev:2", time.Minute)
	assert.True(t, fresh)

	now = now.Add(time.Minute)
	fresh, _ = g.Claim(ctx, "signup:dev:1", time.Minute)
	assert.True(t, fresh)
}

func TestAttemptLimiter_Window(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewAttemptLimiter(2, 10*time.Minute)
	l.now = func() time.Time { return now }

	blocked, _ := l.Blocked(ctx, "a@example.com")
	assert.False(t, blocked)

	require.NoError(t, l.RecordFailure(ctx, "a@example.com"))
	blocked, _ = l.Blocked(ctx, "a@example.com")
	assert.False(t, blocked)

	require.NoError(t, l.RecordFailure(ctx, "a@example.com"))
	blocked, _ = l.Blocked(ctx, "a@example.com")
	assert.True(t, blocked)

	now = now.Add(10 * time.Minute)
	blocked, _ = l.Blocked(ctx, "a@example.com")
	assert.False(t, blocked, "window elapsed")

	require.NoError(t, l.RecordFailure(ctx, "a@example.com"))
	blocked, _ = l.Blocked(ctx, "a@example.com")
	assert.False(t, blocked, "a new window starts from one failure")
}

func TestAttemptLimiter_Reset(t *testing.T) {
	ctx := context.Background()
	l := NewAttemptLimiter(1, time.Hour)

	require.NoError(t, l.RecordFailure(ctx, "k"))
	blocked, _ := l.Blocked(ctx, "k")
	require.True(t, blocked)

	require.NoError(t, l.Reset(ctx, "k"))
	blocked, _ = l.Blocked(ctx, "k")
	assert.False(t, blocked)
}

func TestInquiryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewInquiryRepository()

	require.NoError(t, r.SaveContact(ctx, domain.Inquiry{Kind: domain.InquiryContact, Email: "a@example.com"}))
	require.NoError(t, r.SaveSubscription(ctx, domain.Inquiry{Kind: domain.InquiryNewsletter, Email: "b@example.com"}))

	require.Len(t, r.Contacts(), 1)
	require.Len(t, r.Subscriptions(), 1)
	assert.Equal(t, "b@example.com", r.Subscriptions()[0].Email)
}

func TestIdempotencyGuard_Release(t *testing.T) {
	ctx := context.Background()
	g := NewIdempotencyGuard()

	fresh, _ := g.Claim(ctx, "newsletter:a@example.com", time.Hour)
	require.True(t, fresh)

	require.NoError(t, g.Release(ctx, "newsletter:a@example.com"))
	require.NoError(t, g.Release(ctx, "unknown"))

	fresh, _ = g.Claim(ctx, "newsletter:a@example.com", time.Hour)
	assert.True(t, fresh, "released key can be claimed again")
}
