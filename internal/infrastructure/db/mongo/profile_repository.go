package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
)

const collectionProfiles = "users"

// ProfileRepository stores one profile document per user id.
type ProfileRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		col: db.Collection(collectionProfiles),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Set replaces the whole document.
func (r *ProfileRepository) Set(ctx context.Context, doc *domain.ProfileDocument) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.UID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Get(ctx context.Context, uid string) (*domain.ProfileDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc domain.ProfileDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": uid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &doc, nil
}

func (r *ProfileRepository) Update(ctx context.Context, uid string, patch ports.ProfilePatch) error {
	set := bson.M{"updated_at": r.now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Grade != nil {
		set["grade"] = *patch.Grade
	}
	if patch.Interests != nil {
		set["interests"] = patch.Interests
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) TouchLastLogin(ctx context.Context, uid string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": bson.M{"last_login_at": r.now()}})
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
