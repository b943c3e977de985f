package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
)

const maxDraw = 50

// QuestionBank serves aptitude questions. Drawn questions never expose the
// correct answer or its explanation.
type QuestionBank struct {
	repo    ports.QuestionRepository
	log     zerolog.Logger
	shuffle func(n int, swap func(i, j int))
}

func NewQuestionBank(repo ports.QuestionRepository, log zerolog.Logger) *QuestionBank {
	return &QuestionBank{repo: repo, log: log, shuffle: rand.Shuffle}
}

// Load returns all questions, falling back to the built-in set.
func (b *QuestionBank) Load(ctx context.Context) []domain.Question {
	if b.repo == nil {
		return sampleQuestions()
	}
	qs, err := b.repo.List(ctx)
	if err != nil {
		b.log.Warn().Err(err).Msg("question load failed, using sample data")
		return sampleQuestions()
	}
	if len(qs) == 0 {
		return sampleQuestions()
	}
	return qs
}

// Draw returns up to count shuffled questions of category (all when empty).
func (b *QuestionBank) Draw(ctx context.Context, category string, count int) ([]domain.Question, error) {
	if count < 0 || count > maxDraw {
		return nil, fmt.Errorf("draw: %w: count must be between 0 and %d", domain.ErrInvalidInput, maxDraw)
	}

	var pool []domain.Question
	for _, q := range b.Load(ctx) {
		if category == "" || strings.EqualFold(q.Category, category) {
			pool = append(pool, q)
		}
	}
	b.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	if count > 0 && count < len(pool) {
		pool = pool[:count]
	}
	out := make([]domain.Question, len(pool))
	for i, q := range pool {
		q.CorrectAnswer = -1
		q.Explanation = ""
		out[i] = q
	}
	return out, nil
}

// Score totals points for correct answers. Unknown question ids are invalid.
func (b *QuestionBank) Score(ctx context.Context, answers []ports.Answer) (*ports.ScoreResult, error) {
	byID := make(map[string]domain.Question)
	res := &ports.ScoreResult{ByCategory: make(map[string]int)}
	for _, q := range b.Load(ctx) {
		byID[q.ID] = q
	}

	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, fmt.Errorf("score: %w: unknown question %q", domain.ErrInvalidInput, a.QuestionID)
		}
		if seen[a.QuestionID] {
			continue
		}
		seen[a.QuestionID] = true
		res.Answered++
		res.MaxScore += q.Points
		if a.Choice == q.CorrectAnswer {
			res.Correct++
			res.Score += q.Points
			res.ByCategory[q.Category] += q.Points
		}
	}
	return res, nil
}

// CareerCatalog lists career fields, falling back to the built-in set.
type CareerCatalog struct {
	repo ports.CareerFieldRepository
	log  zerolog.Logger
}

func NewCareerCatalog(repo ports.CareerFieldRepository, log zerolog.Logger) *CareerCatalog {
	return &CareerCatalog{repo: repo, log: log}
}

func (c *CareerCatalog) List(ctx context.Context) ([]domain.CareerField, error) {
	if c.repo == nil {
		return sampleCareerFields(), nil
	}
	fields, err := c.repo.List(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("career field load failed, using sample data")
		return sampleCareerFields(), nil
	}
	if len(fields) == 0 {
		return sampleCareerFields(), nil
	}
	return fields, nil
}
