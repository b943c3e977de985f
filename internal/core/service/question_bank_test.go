package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
)

type stubQuestionRepo struct {
	questions []domain.Question
	err       error
}

func (r *stubQuestionRepo) List(context.Context) ([]domain.Question, error) {
	return r.questions, r.err
}

type stubCareerRepo struct {
	fields []domain.CareerField
	err    error
}

func (r *stubCareerRepo) List(context.Context) ([]domain.CareerField, error) {
	return r.fields, r.err
}

func noShuffle(int, func(i, j int)) {}

func TestQuestionBank_DrawHidesAnswers(t *testing.T) {
	b := NewQuestionBank(nil, zerolog.Nop())
	b.shuffle = noShuffle

	qs, err := b.Draw(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, qs, 5)
	for _, q := range qs {
		assert.Equal(t, -1, q.CorrectAnswer)
		assert.Empty(t, q.Explanation)
	}

	again := b.Load(context.Background())
	assert.Equal(t, 0, again[0].CorrectAnswer, "drawing must not mutate the bank")
}

func TestQuestionBank_DrawByCategoryAndCount(t *testing.T) {
	b := NewQuestionBank(nil, zerolog.Nop())
	b.shuffle = noShuffle

	qs, err := b.Draw(context.Background(), "Verbal", 0)
	require.NoError(t, err)
	assert.Len(t, qs, 2)

	qs, err = b.Draw(context.Background(), "", 3)
	require.NoError(t, err)
	assert.Len(t, qs, 3)

	_, err = b.Draw(context.Background(), "", 51)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = b.Draw(context.Background(), "", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuestionBank_LoadFallsBack(t *testing.T) {
	b := NewQuestionBank(&stubQuestionRepo{err: errors.New("down")}, zerolog.Nop())
	assert.Len(t, b.Load(context.Background()), 5)

	remote := []domain.Question{{ID: "q1", Category: "logical", Points: 4}}
	b = NewQuestionBank(&stubQuestionRepo{questions: remote}, zerolog.Nop())
	assert.Equal(t, remote, b.Load(context.Background()))
}

func TestQuestionBank_Score(t *testing.T) {
	b := NewQuestionBank(nil, zerolog.Nop())

	res, err := b.Score(context.Background(), []ports.Answer{
		{QuestionID: "verbal_001", Choice: 0},       // correct, 2 points
		{QuestionID: "quantitative_001", Choice: 3}, // wrong
		{QuestionID: "logical_001", Choice: 1},      // correct, 3 points
		{QuestionID: "verbal_001", Choice: 2},       // duplicate, ignored
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Score)
	assert.Equal(t, 6, res.MaxScore)
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, 3, res.Answered)
	assert.Equal(t, map[string]int{"verbal": 2, "logical": 3}, res.ByCategory)

	_, err = b.Score(context.Background(), []ports.Answer{{QuestionID: "nope"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCareerCatalog_List(t *testing.T) {
	c := NewCareerCatalog(nil, zerolog.Nop())
	fields, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, fields, 6)

	c = NewCareerCatalog(&stubCareerRepo{err: errors.New("down")}, zerolog.Nop())
	fields, err = c.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, fields, 6)

	c = NewCareerCatalog(&stubCareerRepo{fields: []domain.CareerField{{ID: "law"}}}, zerolog.Nop())
	fields, err = c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "law", fields[0].ID)
}
