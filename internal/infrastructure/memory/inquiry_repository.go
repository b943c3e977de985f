package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/careerguide/portal/internal/core/domain"
)

type InquiryRepository struct {
	mu            sync.Mutex
	contacts      []domain.Inquiry
	subscriptions []domain.Inquiry
}

func NewInquiryRepository() *InquiryRepository {
	return &InquiryRepository{}
}

func (r *InquiryRepository) SaveContact(_ context.Context, in domain.Inquiry) error {
	r.mu.Lock()
	r.contacts = append(r.contacts, in)
	r.mu.Unlock()
	return nil
}

func (r *InquiryRepository) SaveSubscription(_ context.Context, in domain.Inquiry) error {
	r.mu.Lock()
	r.subscriptions = append(r.subscriptions, in)
	r.mu.Unlock()
	return nil
}

func (r *InquiryRepository) Contacts() []domain.Inquiry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.contacts)
}

func (r *InquiryRepository) Subscriptions() []domain.Inquiry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.subscriptions)
}
