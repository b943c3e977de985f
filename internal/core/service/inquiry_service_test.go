package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/infrastructure/memory"
)

type stubQueue struct {
	items []domain.Inquiry
	full  bool
}

func (q *stubQueue) Enqueue(in domain.Inquiry) bool {
	if q.full {
		return false
	}
	q.items = append(q.items, in)
	return true
}

type failingGuard struct{}

func (failingGuard) Claim(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis down")
}

func (failingGuard) Release(context.Context, string) error {
	return errors.New("redis down")
}

func TestInquiryIntake_SubmitContact(t *testing.T) {
	q := &stubQueue{}
	s := NewInquiryIntake(q, nil, zerolog.Nop())

	require.NoError(t, s.SubmitContact(context.Background(), " Ana ", "ana@example.com", " Hello "))
	require.Len(t, q.items, 1)
	assert.Equal(t, domain.InquiryContact, q.items[0].Kind)
	assert.Equal(t, "Ana", q.items[0].Name)
	assert.Equal(t, "Hello", q.items[0].Message)
	assert.False(t, q.items[0].ReceivedAt.IsZero())
}

func TestInquiryIntake_SubmitContactValidation(t *testing.T) {
	s := NewInquiryIntake(&stubQueue{}, nil, zerolog.Nop())
	ctx := context.Background()

	assert.ErrorIs(t, s.SubmitContact(ctx, "", "a@example.com", "hi"), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.SubmitContact(ctx, "A", "not-an-email", "hi"), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.SubmitContact(ctx, "A", "a@example.com", "  "), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.SubmitContact(ctx, "A", "a@example.com", strings.Repeat("x", maxMessageLen+1)), domain.ErrInvalidInput)
}

func TestInquiryIntake_QueueFull(t *testing.T) {
	s := NewInquiryIntake(&stubQueue{full: true}, nil, zerolog.Nop())
	err := s.SubmitContact(context.Background(), "A", "a@example.com", "hi")
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestInquiryIntake_SubscribeDeduplicates(t *testing.T) {
	q := &stubQueue{}
	s := NewInquiryIntake(q, memory.NewIdempotencyGuard(), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, s.Subscribe(ctx, "Reader@Example.com"))
	require.NoError(t, s.Subscribe(ctx, "reader@example.com "))
	require.Len(t, q.items, 1)
	assert.Equal(t, "reader@example.com", q.items[0].Email)

	assert.ErrorIs(t, s.Subscribe(ctx, "nope"), domain.ErrInvalidInput)
}

func TestInquiryIntake_SubscribeGuardFailureStillQueues(t *testing.T) {
	q := &stubQueue{}
	s := NewInquiryIntake(q, failingGuard{}, zerolog.Nop())

	require.NoError(t, s.Subscribe(context.Background(), "a@example.com"))
	assert.Len(t, q.items, 1)
}

func TestInquiryRecorder_Process(t *testing.T) {
	repo := memory.NewInquiryRepository()
	r := NewInquiryRecorder(repo)
	ctx := context.Background()

	require.NoError(t, r.Process(ctx, domain.Inquiry{Kind: domain.InquiryContact, Email: "a@example.com"}))
	require.NoError(t, r.Process(ctx, domain.Inquiry{Kind: domain.InquiryNewsletter, Email: "b@example.com"}))
	assert.Len(t, repo.Contacts(), 1)
	assert.Len(t, repo.Subscriptions(), 1)

	assert.ErrorIs(t, r.Process(ctx, domain.Inquiry{Kind: "fax"}), domain.ErrInvalidInput)
}

func TestInquiryIntake_SubscribeRetryAfterQueueFull(t *testing.T) {
	q := &stubQueue{full: true}
	s := NewInquiryIntake(q, memory.NewIdempotencyGuard(), zerolog.Nop())
	ctx := context.Background()

	require.ErrorIs(t, s.Subscribe(ctx, "reader@example.com"), ErrQueueFull)

	q.full = false
	require.NoError(t, s.Subscribe(ctx, "reader@example.com"))
	require.Len(t, q.items, 1, "retry after a rejected enqueue must be queued")

	require.NoError(t, s.Subscribe(ctx, "reader@example.com"))
	assert.Len(t, q.items, 1)
}
