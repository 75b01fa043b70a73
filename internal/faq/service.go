package faq

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/meridiantrade/catalog-services/internal/catalog"
	"github.com/meridiantrade/catalog-services/internal/catalog/repository"
	"github.com/meridiantrade/catalog-services/pkg/logger"
	"github.com/meridiantrade/catalog-services/pkg/metrics"
)

// MatchThreshold is the minimum score a FAQ needs to count as a match.
const MatchThreshold = 30

// Scoring weights.
const (
	exactQuestionScore  = 100
	questionContainsQ   = 50
	keywordInQueryScore = 30
)

// Service owns the faq collection: seeding, appends and matching.
type Service struct {
	repo     repository.FAQRepository
	seedMu   sync.Mutex
	defaults func() []*catalog.FAQ
}

func NewService(repo repository.FAQRepository) *Service {
	return &Service{repo: repo, defaults: DefaultFAQs}
}

// NewMemoryService returns a Service over an in-memory collection.
func NewMemoryService() *Service {
	return NewService(repository.NewMemoryFAQRepo())
}

// Seed inserts the default FAQs when the collection is empty and reports how
// many records were written.
func (s *Service) Seed(ctx context.Context) (int, error) {
	if s == nil || s.repo == nil {
		return 0, catalog.Unavailable("seed faqs")
	}
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, catalog.QueryFailed("count faqs", err)
	}
	if n > 0 {
		return 0, nil
	}
	defaults := s.defaults()
	if err := s.repo.InsertMany(ctx, defaults); err != nil {
		return 0, catalog.QueryFailed("insert default faqs", err)
	}
	return len(defaults), nil
}

// EnsureSeeded seeds an empty collection. Failures are logged and reported
// as false; they never reach the caller as errors.
func (s *Service) EnsureSeeded(ctx context.Context) bool {
	n, err := s.Seed(ctx)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("seed_faqs").Inc()
		logger.Errorf("faq seeding failed: %v", err)
		return false
	}
	if n > 0 {
		logger.Infof("seeded %d default faqs", n)
	}
	return true
}

// AddFAQ validates and appends f, returning the store-assigned id.
// Keywords are lowercased and blank ones dropped; a nil list becomes empty.
func (s *Service) AddFAQ(ctx context.Context, f *catalog.FAQ) (string, error) {
	if f == nil || strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
		return "", fmt.Errorf("%w: question and answer are required", catalog.ErrInvalid)
	}
	if s == nil || s.repo == nil {
		return "", catalog.Unavailable("add faq")
	}
	kws := make([]string, 0, len(f.Keywords))
	for _, k := range f.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			kws = append(kws, k)
		}
	}
	f.Keywords = kws
	id, err := s.repo.Insert(ctx, f)
	if err != nil {
		return "", catalog.QueryFailed("add faq", err)
	}
	return id, nil
}

// GetAllFAQs returns every stored FAQ in store order.
func (s *Service) GetAllFAQs(ctx context.Context) ([]*catalog.FAQ, error) {
	if s == nil || s.repo == nil {
		return nil, catalog.Unavailable("list faqs")
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, catalog.QueryFailed("list faqs", err)
	}
	return list, nil
}

// Score rates f against q, which must already be lowercase.
//
// An exact question match and a question containing q both count, so an
// exact match scores at least 150. Keywords are checked the other way round:
// the query has to contain the keyword.
func Score(f *catalog.FAQ, q string) int {
	score := 0
	question := strings.ToLower(f.Question)
	if question == q {
		score += exactQuestionScore
	}
	if strings.Contains(question, q) {
		score += questionContainsQ
	}
	for _, k := range f.Keywords {
		if strings.Contains(q, strings.ToLower(k)) {
			score += keywordInQueryScore
		}
	}
	return score + f.Priority
}

// Match returns the best-scoring FAQ and its score, or nil when no FAQ
// reaches MatchThreshold. Ties go to the FAQ seen first.
func (s *Service) Match(ctx context.Context, query string) (*catalog.FAQ, int, error) {
	list, err := s.GetAllFAQs(ctx)
	if err != nil {
		return nil, 0, err
	}
	q := strings.ToLower(query)
	var (
		best      *catalog.FAQ
		bestScore int
	)
	for _, f := range list {
		if sc := Score(f, q); best == nil || sc > bestScore {
			best, bestScore = f, sc
		}
	}
	if best == nil || bestScore < MatchThreshold {
		return nil, bestScore, nil
	}
	return best, bestScore, nil
}

// FindMatchingFAQ is the benign form of Match: store failures are logged and
// treated as no match.
func (s *Service) FindMatchingFAQ(ctx context.Context, query string) *catalog.FAQ {
	f, score, err := s.Match(ctx, query)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("match_faq").Inc()
		logger.Errorf("faq lookup failed for %q: %v", query, err)
		return nil
	}
	if f != nil {
		logger.Debugf("faq match %q score=%d", f.Question, score)
	}
	return f
}
