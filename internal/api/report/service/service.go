package reportService

import (
	historyService "CafeAnalyzer/internal/api/history/service"
	"CafeAnalyzer/internal/api/report"
	"CafeAnalyzer/internal/entity"
	"CafeAnalyzer/internal/state"
	"CafeAnalyzer/pkg/cafeapi"
	"CafeAnalyzer/pkg/locale"
	"CafeAnalyzer/pkg/metrics"
	"CafeAnalyzer/pkg/s3"
	websocketPkg "CafeAnalyzer/pkg/websocket"
	"context"
	"github.com/sirupsen/logrus"
	"time"
)

type IReportService interface {
	BuildPayload(period entity.Period) report.ReportPayload
	Generate(ctx context.Context, format entity.ReportFormat, period entity.Period) (*report.Artifact, error)
}

type reportService struct {
	log            *logrus.Logger
	api            cafeapi.ICafeAPI
	historyService historyService.IHistoryService
	state          *state.AppState
	archive        s3.ItfS3
	hub            websocketPkg.IHub
	metrics        *metrics.Metrics
	texts          locale.Texts
	now            func() time.Time
}

type Option func(*reportService)

// WithArchive uploads every generated artifact to S3.
func WithArchive(archive s3.ItfS3) Option {
	return func(s *reportService) {
		s.archive = archive
	}
}

func WithNotifications(hub websocketPkg.IHub) Option {
	return func(s *reportService) {
		s.hub = hub
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *reportService) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *reportService) {
		s.now = now
	}
}

func New(
	log *logrus.Logger,
	api cafeapi.ICafeAPI,
	hs historyService.IHistoryService,
	appState *state.AppState,
	texts locale.Texts,
	opts ...Option,
) IReportService {
	s := &reportService{
		log:            log,
		api:            api,
		historyService: hs,
		state:          appState,
		texts:          texts,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
