package service

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
)

const (
	DefaultPageSize = 12
	maxPageSize     = 100
	cardPrograms    = 3

	SortRanking  = "ranking"
	SortFees     = "fees"
	SortFeesDesc = "fees-desc"
	SortName     = "name"

	SourceRemote = "remote"
	SourceCache  = "cache"
	SourceSample = "sample"

	collegesReturnPath = "/colleges"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"INR": "₹",
	"GBP": "£",
	"EUR": "€",
}

// LoginRedirect builds the login location that returns to path afterwards.
func LoginRedirect(path string) string {
	return "/login?redirect=" + url.QueryEscape(path)
}

// Directory loads the college listing. Remote results are cached for ttl;
// an empty or failed read falls back to the built-in sample set.
type Directory struct {
	repo ports.CollegeRepository
	ttl  time.Duration
	log  zerolog.Logger
	now  func() time.Time

	mu       sync.Mutex
	cached   []domain.College
	loadedAt time.Time
}

func NewDirectory(repo ports.CollegeRepository, ttl time.Duration, log zerolog.Logger) *Directory {
	return &Directory{repo: repo, ttl: ttl, log: log, now: time.Now}
}

// Load never fails. It reports where the records came from.
func (d *Directory) Load(ctx context.Context) ([]domain.College, string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cached != nil && d.ttl > 0 && d.now().Sub(d.loadedAt) < d.ttl {
		return slices.Clone(d.cached), SourceCache
	}

	if d.repo == nil {
		return sampleColleges(), SourceSample
	}

	colleges, err := d.repo.ListByRanking(ctx)
	if err != nil {
		d.log.Warn().Err(err).Msg("college load failed, using sample data")
		return sampleColleges(), SourceSample
	}
	if len(colleges) == 0 {
		d.log.Info().Msg("college collection empty, using sample data")
		return sampleColleges(), SourceSample
	}

	d.cached = slices.Clone(colleges)
	d.loadedAt = d.now()
	return colleges, SourceRemote
}

// Browser holds one view over the directory: the filtered set, its order
// and the current page.
type Browser struct {
	all      []domain.College
	filtered []domain.College
	sortKey  string
	page     int
	pageSize int
}

// NewBrowser starts unfiltered, ordered by ranking, on page 1.
func NewBrowser(all []domain.College, pageSize int) *Browser {
	b := &Browser{
		all:      all,
		filtered: slices.Clone(all),
		sortKey:  SortRanking,
		page:     1,
		pageSize: clampPageSize(pageSize),
	}
	sortColleges(b.filtered, b.sortKey)
	return b
}

// ApplyFilters recomputes the filtered set from the full listing and resets
// to page 1. Applying the same criteria twice gives the same result.
func (b *Browser) ApplyFilters(c ports.FilterCriteria) {
	out := make([]domain.College, 0, len(b.all))
	for i := range b.all {
		if matches(&b.all[i], c) {
			out = append(out, b.all[i])
		}
	}
	b.filtered = out
	sortColleges(b.filtered, b.sortKey)
	b.page = 1
}

// Sort reorders the filtered set. Unknown keys sort by ranking.
func (b *Browser) Sort(key string) {
	switch key {
	case SortRanking, SortFees, SortFeesDesc, SortName:
	default:
		key = SortRanking
	}
	b.sortKey = key
	sortColleges(b.filtered, key)
}

// Paginate moves to page, clamped into range, and returns it.
func (b *Browser) Paginate(page int) ports.Page {
	total := len(b.filtered)
	totalPages := (total + b.pageSize - 1) / b.pageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}
	b.page = page

	start := (page - 1) * b.pageSize
	end := min(start+b.pageSize, total)
	items := []domain.College{}
	if start < total {
		items = slices.Clone(b.filtered[start:end])
	}

	return ports.Page{
		Items:      items,
		Page:       page,
		PageSize:   b.pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// Filtered returns the full filtered and sorted set.
func (b *Browser) Filtered() []domain.College {
	return slices.Clone(b.filtered)
}

// Cards renders the current page.
func (b *Browser) Cards() []ports.Card {
	return RenderCards(b.Paginate(b.page).Items)
}

func matches(c *domain.College, f ports.FilterCriteria) bool {
	if f.Location != "" && !strings.EqualFold(c.Location.Country, strings.TrimSpace(f.Location)) {
		return false
	}
	if f.Program != "" && !c.OffersProgram(strings.TrimSpace(f.Program)) {
		return false
	}
	if f.MaxFeeUSD > 0 && c.TotalFeeUSD() > f.MaxFeeUSD {
		return false
	}
	if f.MaxRanking > 0 && c.Ranking.Global > f.MaxRanking {
		return false
	}
	return true
}

func sortColleges(cs []domain.College, key string) {
	switch key {
	case SortFees:
		slices.SortStableFunc(cs, func(a, b domain.College) int {
			return compareFloat(a.TotalFeeUSD(), b.TotalFeeUSD())
		})
	case SortFeesDesc:
		slices.SortStableFunc(cs, func(a, b domain.College) int {
			return compareFloat(b.TotalFeeUSD(), a.TotalFeeUSD())
		})
	case SortName:
		col := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(cs, func(a, b domain.College) int {
			return col.CompareString(a.Name, b.Name)
		})
	default:
		slices.SortStableFunc(cs, func(a, b domain.College) int {
			return a.Ranking.Global - b.Ranking.Global
		})
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func clampPageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	return min(size, maxPageSize)
}

// RenderCards builds display summaries for cs.
func RenderCards(cs []domain.College) []ports.Card {
	p := message.NewPrinter(language.English)
	cards := make([]ports.Card, 0, len(cs))
	for i := range cs {
		c := &cs[i]
		shown := c.Programs
		if len(shown) > cardPrograms {
			shown = shown[:cardPrograms]
		}
		cards = append(cards, ports.Card{
			ID:             c.ID,
			Name:           c.Name,
			Rank:           "#" + strconv.Itoa(c.Ranking.Global),
			Location:       c.Location.City + ", " + c.Location.Country,
			Programs:       slices.Clone(shown),
			MorePrograms:   len(c.Programs) - len(shown),
			FeeText:        feeText(p, c.Fees),
			AcceptanceText: strconv.FormatFloat(c.AcceptanceRate, 'f', -1, 64) + "%",
		})
	}
	return cards
}

func feeText(p *message.Printer, f domain.Fees) string {
	code := strings.ToUpper(f.Currency)
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code + " "
	}
	return symbol + p.Sprintf("%d", int64(f.Total))
}

// CollegeService serves listing requests from a Directory.
type CollegeService struct {
	dir      *Directory
	pageSize int
}

func NewCollegeService(dir *Directory, pageSize int) *CollegeService {
	return &CollegeService{dir: dir, pageSize: clampPageSize(pageSize)}
}

// Browse filters, sorts and paginates in that order.
func (s *CollegeService) Browse(ctx context.Context, q ports.BrowseQuery) (*ports.BrowseResult, error) {
	all, source := s.dir.Load(ctx)

	size := q.PageSize
	if size <= 0 {
		size = s.pageSize
	}
	b := NewBrowser(all, size)
	b.ApplyFilters(q.Filter)
	b.Sort(q.Sort)
	page := b.Paginate(q.Page)

	return &ports.BrowseResult{
		Page:   page,
		Cards:  RenderCards(page.Items),
		Source: source,
	}, nil
}

func (s *CollegeService) SelectForDetail(ctx context.Context, id string) (*domain.College, error) {
	all, _ := s.dir.Load(ctx)
	for i := range all {
		if all[i].ID == id {
			c := all[i]
			return &c, nil
		}
	}
	return nil, domain.ErrCollegeNotFound
}

// SelectForAction requires a session. Without one the outcome carries a
// login redirect that returns to the listing.
func (s *CollegeService) SelectForAction(ctx context.Context, id string, sessions ports.SessionService) (*ports.ActionOutcome, error) {
	c, err := s.SelectForDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		return &ports.ActionOutcome{Redirect: LoginRedirect(collegesReturnPath)}, nil
	}
	if _, ok := sessions.RequireSession(); !ok {
		return &ports.ActionOutcome{Redirect: LoginRedirect(collegesReturnPath)}, nil
	}
	return &ports.ActionOutcome{College: c}, nil
}
