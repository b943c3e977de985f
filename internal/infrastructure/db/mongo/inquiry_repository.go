package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/careerguide/portal/internal/core/domain"
)

const (
	collectionContacts   = "contacts"
	collectionNewsletter = "newsletter"
)

// InquiryRepository appends contact messages and newsletter sign-ups.
type InquiryRepository struct {
	db *mongo.Database
}

func NewInquiryRepository(db *mongo.Database) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) SaveContact(ctx context.Context, in domain.Inquiry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"name":      in.Name,
		"email":     in.Email,
		"message":   in.Message,
		"timestamp": in.ReceivedAt,
	}
	if _, err := r.db.Collection(collectionContacts).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *InquiryRepository) SaveSubscription(ctx context.Context, in domain.Inquiry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"email":     in.Email,
		"timestamp": in.ReceivedAt,
	}
	if _, err := r.db.Collection(collectionNewsletter).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}
