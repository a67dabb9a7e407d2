package historyHandler

import (
	historyService "CafeAnalyzer/internal/api/history/service"
	"CafeAnalyzer/internal/middleware"
	"CafeAnalyzer/internal/state"
	"CafeAnalyzer/pkg/locale"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type HistoryHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	historyService historyService.IHistoryService
	state          *state.AppState
	texts          locale.Texts
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	hs historyService.IHistoryService,
	appState *state.AppState,
	texts locale.Texts,
) *HistoryHandler {
	return &HistoryHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		historyService: hs,
		state:          appState,
		texts:          texts,
	}
}

func (h *HistoryHandler) Start(srv fiber.Router) {
	history := srv.Group("/history", h.middleware.NewTokenMiddleware)

	history.Get("", h.ListHistory)
}
