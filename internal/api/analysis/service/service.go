package analysisService

import (
	"CafeAnalyzer/internal/api/analysis"
	historyService "CafeAnalyzer/internal/api/history/service"
	"CafeAnalyzer/internal/state"
	"CafeAnalyzer/pkg/cafeapi"
	"CafeAnalyzer/pkg/capture"
	"CafeAnalyzer/pkg/locale"
	"CafeAnalyzer/pkg/metrics"
	websocketPkg "CafeAnalyzer/pkg/websocket"
	"context"
	"github.com/sirupsen/logrus"
	"time"
)

const (
	// FrameFilename is the upload name of every captured frame.
	FrameFilename = "frame.jpg"
	imagePath     = "/api/v1/analysis/current/image"
)

type IAnalysisService interface {
	SelectMedia(ctx context.Context, filename string, contentType string, data []byte) (capture.Mode, error)
	ActivateCamera(ctx context.Context, device int) error
	SeekVideo(ctx context.Context, positionMs float64) error
	Run(ctx context.Context) (*analysis.AnalysisResponse, error)
	Current() (*analysis.AnalysisResponse, error)
	CurrentImage() ([]byte, error)
}

type analysisService struct {
	log            *logrus.Logger
	capturer       capture.ICapturer
	api            cafeapi.ICafeAPI
	historyService historyService.IHistoryService
	state          *state.AppState
	hub            websocketPkg.IHub
	metrics        *metrics.Metrics
	texts          locale.Texts
	now            func() time.Time
}

type Option func(*analysisService)

func WithNotifications(hub websocketPkg.IHub) Option {
	return func(s *analysisService) {
		s.hub = hub
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *analysisService) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *analysisService) {
		s.now = now
	}
}

func New(
	log *logrus.Logger,
	capturer capture.ICapturer,
	api cafeapi.ICafeAPI,
	hs historyService.IHistoryService,
	appState *state.AppState,
	texts locale.Texts,
	opts ...Option,
) IAnalysisService {
	s := &analysisService{
		log:            log,
		capturer:       capturer,
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
