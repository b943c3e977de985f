package ports

import (
	"context"

	"github.com/careerguide/portal/internal/core/domain"
)

// FilterCriteria narrows the directory. Zero values mean "no constraint".
type FilterCriteria struct {
	Location   string
	Program    string
	MaxFeeUSD  float64
	MaxRanking int
}

// Page is one contiguous slice of the filtered and sorted directory.
type Page struct {
	Items      []domain.College
	Page       int
	PageSize   int
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// Card is the rendered summary of one college.
type Card struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Rank           string   `json:"rank"`
	Location       string   `json:"location"`
	Programs       []string `json:"programs"`
	MorePrograms   int      `json:"more_programs"`
	FeeText        string   `json:"fee_text"`
	AcceptanceText string   `json:"acceptance_text"`
}

// BrowseQuery is one listing request.
type BrowseQuery struct {
	Filter   FilterCriteria
	Sort     string
	Page     int
	PageSize int
}

// BrowseResult is a listing page with its rendered cards.
type BrowseResult struct {
	Page   Page
	Cards  []Card
	Source string
}

// ActionOutcome is returned when the user acts on a college.
type ActionOutcome struct {
	College  *domain.College
	Redirect string
}

type DirectoryService interface {
	Browse(ctx context.Context, q BrowseQuery) (*BrowseResult, error)
	SelectForDetail(ctx context.Context, id string) (*domain.College, error)
	SelectForAction(ctx context.Context, id string, sessions SessionService) (*ActionOutcome, error)
}

// Answer is one submitted aptitude answer.
type Answer struct {
	QuestionID string
	Choice     int
}

// ScoreResult summarizes a scored attempt.
type ScoreResult struct {
	Score      int            `json:"score"`
	MaxScore   int            `json:"max_score"`
	Correct    int            `json:"correct"`
	Answered   int            `json:"answered"`
	ByCategory map[string]int `json:"by_category"`
}

type QuestionService interface {
	Draw(ctx context.Context, category string, count int) ([]domain.Question, error)
	Score(ctx context.Context, answers []Answer) (*ScoreResult, error)
}

type CareerService interface {
	List(ctx context.Context) ([]domain.CareerField, error)
}

// InquiryService accepts contact messages and newsletter subscriptions.
type InquiryService interface {
	SubmitContact(ctx context.Context, name, email, message string) error
	Subscribe(ctx context.Context, email string) error
}
