package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
)

const (
	maxMessageLen     = 5000
	subscriptionTTL   = 24 * time.Hour
	subscriptionGuard = "newsletter:"
)

var ErrQueueFull = errors.New("inquiry queue full")

// InquiryIntake validates contact messages and subscriptions and queues
// them for persistence.
type InquiryIntake struct {
	queue    ports.InquiryQueue
	guard    ports.IdempotencyGuard
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time
}

// NewInquiryIntake accepts a nil guard, in which case repeated
// subscriptions are all queued.
func NewInquiryIntake(queue ports.InquiryQueue, guard ports.IdempotencyGuard, log zerolog.Logger) *InquiryIntake {
	return &InquiryIntake{
		queue:    queue,
		guard:    guard,
		validate: validator.New(),
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *InquiryIntake) SubmitContact(ctx context.Context, name, email, message string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || message == "" || len(message) > maxMessageLen {
		return fmt.Errorf("contact: %w", domain.ErrInvalidInput)
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("contact: %w: email", domain.ErrInvalidInput)
	}

	return s.enqueue(domain.Inquiry{
		Kind:       domain.InquiryContact,
		Name:       name,
		Email:      email,
		Message:    message,
		ReceivedAt: s.now(),
	})
}

// Subscribe queues a newsletter sign-up. A repeat within a day is accepted
// without queueing again.
func (s *InquiryIntake) Subscribe(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("subscribe: %w: email", domain.ErrInvalidInput)
	}

	claimed := false
	if s.guard != nil {
		fresh, err := s.guard.Claim(ctx, subscriptionGuard+email, subscriptionTTL)
		if err != nil {
			s.log.Warn().Err(err).Msg("subscription dedup failed, queueing anyway")
		} else if !fresh {
			s.log.Debug().Str("email", email).Msg("duplicate subscription skipped")
			return nil
		} else {
			claimed = true
		}
	}

	err := s.enqueue(domain.Inquiry{
		Kind:       domain.InquiryNewsletter,
		Email:      email,
		ReceivedAt: s.now(),
	})
	if err != nil && claimed {
		// Nothing was queued, so a retry must not be treated as a repeat.
		if rerr := s.guard.Release(ctx, subscriptionGuard+email); rerr != nil {
			s.log.Warn().Err(rerr).Msg("failed to release subscription claim")
		}
	}
	return err
}

func (s *InquiryIntake) enqueue(in domain.Inquiry) error {
	if !s.queue.Enqueue(in) {
		return ErrQueueFull
	}
	return nil
}

// InquiryRecorder writes dequeued inquiries to the document store.
type InquiryRecorder struct {
	repo ports.InquiryRepository
}

func NewInquiryRecorder(repo ports.InquiryRepository) *InquiryRecorder {
	return &InquiryRecorder{repo: repo}
}

func (r *InquiryRecorder) Process(ctx context.Context, in domain.Inquiry) error {
	switch in.Kind {
	case domain.InquiryContact:
		if err := r.repo.SaveContact(ctx, in); err != nil {
			return fmt.Errorf("save contact: %w", err)
		}
	case domain.InquiryNewsletter:
		if err := r.repo.SaveSubscription(ctx, in); err != nil {
			return fmt.Errorf("save subscription: %w", err)
		}
	default:
		return fmt.Errorf("process inquiry: %w: kind %q", domain.ErrInvalidInput, in.Kind)
	}
	return nil
}
