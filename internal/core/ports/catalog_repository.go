package ports

import (
	"context"

	"github.com/careerguide/portal/internal/core/domain"
)

// CollegeRepository reads the college collection.
type CollegeRepository interface {
	// ListByRanking returns all colleges ordered by global ranking ascending.
	ListByRanking(ctx context.Context) ([]domain.College, error)
}

type QuestionRepository interface {
	List(ctx context.Context) ([]domain.Question, error)
}

type CareerFieldRepository interface {
	List(ctx context.Context) ([]domain.CareerField, error)
}

// InquiryRepository persists contact messages and newsletter sign-ups.
type InquiryRepository interface {
	SaveContact(ctx context.Context, in domain.Inquiry) error
	SaveSubscription(ctx context.Context, in domain.Inquiry) error
}

// InquiryQueue hands inquiries to background workers.
type InquiryQueue interface {
	Enqueue(in domain.Inquiry) bool
}

// InquiryProcessor persists one dequeued inquiry.
type InquiryProcessor interface {
	Process(ctx context.Context, in domain.Inquiry) error
}
