package historyService

import (
	historyRepository "CafeAnalyzer/internal/api/history/repository"
	"CafeAnalyzer/internal/entity"
	"CafeAnalyzer/pkg/metrics"
	"context"
	"github.com/sirupsen/logrus"
	"sync"
	"time"
)

type IHistoryService interface {
	Load(ctx context.Context) error
	Append(ctx context.Context, result entity.AnalysisResult) (entity.HistoryEntry, error)
	FilterByPeriod(period entity.Period, currentID int64) []entity.HistoryEntry
	Entries() []entity.HistoryEntry
	Latest() (entity.HistoryEntry, bool)
	Len() int
	Now() time.Time
}

type historyService struct {
	log     *logrus.Logger
	repo    historyRepository.Repository
	metrics *metrics.Metrics
	now     func() time.Time

	mu      sync.RWMutex
	entries []entity.HistoryEntry
}

type Option func(*historyService)

func WithClock(now func() time.Time) Option {
	return func(s *historyService) {
		s.now = now
	}
}

func New(
	log *logrus.Logger,
	repo historyRepository.Repository,
	m *metrics.Metrics,
	opts ...Option,
) IHistoryService {
	s := &historyService{
		log:     log,
		repo:    repo,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *historyService) Now() time.Time {
	return s.now()
}
