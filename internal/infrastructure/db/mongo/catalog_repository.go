package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careerguide/portal/internal/core/domain"
)

const (
	collectionColleges     = "colleges"
	collectionQuestions    = "questions"
	collectionCareerFields = "careerFields"
)

type CollegeRepository struct {
	col *mongo.Collection
}

func NewCollegeRepository(db *mongo.Database) *CollegeRepository {
	return &CollegeRepository{col: db.Collection(collectionColleges)}
}

// ListByRanking returns every college ordered by ranking.global ascending.
func (r *CollegeRepository) ListByRanking(ctx context.Context) ([]domain.College, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "ranking.global", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.College
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode colleges: %w", err)
	}
	return out, nil
}

type QuestionRepository struct {
	col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{col: db.Collection(collectionQuestions)}
}

func (r *QuestionRepository) List(ctx context.Context) ([]domain.Question, error) {
	var out []domain.Question
	if err := findAll(ctx, r.col, &out); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return out, nil
}

type CareerFieldRepository struct {
	col *mongo.Collection
}

func NewCareerFieldRepository(db *mongo.Database) *CareerFieldRepository {
	return &CareerFieldRepository{col: db.Collection(collectionCareerFields)}
}

func (r *CareerFieldRepository) List(ctx context.Context) ([]domain.CareerField, error) {
	var out []domain.CareerField
	if err := findAll(ctx, r.col, &out); err != nil {
		return nil, fmt.Errorf("list career fields: %w", err)
	}
	return out, nil
}

func findAll(ctx context.Context, col *mongo.Collection, out any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
