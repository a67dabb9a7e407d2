package analysisHandler

import (
	analysisService "CafeAnalyzer/internal/api/analysis/service"
	"CafeAnalyzer/internal/middleware"
	"CafeAnalyzer/pkg/utils"
	websocketPkg "CafeAnalyzer/pkg/websocket"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AnalysisHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	analysisService analysisService.IAnalysisService
	hub             websocketPkg.IHub
	utils           utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	as analysisService.IAnalysisService,
	hub websocketPkg.IHub,
	utils utils.IUtils,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: as,
		log:             log,
		validator:       validator,
		middleware:      middleware,
		hub:             hub,
		utils:           utils,
	}
}

func (h *AnalysisHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	analysis := srv.Group("/analysis")
	analysis.Use("/ws", wsMiddleware)
	analysis.Get("/ws", websocket.New(h.handleNotifications))

	analysis.Post("/media", h.middleware.NewTokenMiddleware, h.SelectMedia)
	analysis.Post("/camera", h.middleware.NewTokenMiddleware, h.ActivateCamera)
	analysis.Post("/video/seek", h.middleware.NewTokenMiddleware, h.SeekVideo)
	analysis.Post("/run", h.middleware.NewTokenMiddleware, h.middleware.NewRateLimiter, h.RunAnalysis)
	analysis.Get("/current", h.middleware.NewTokenMiddleware, h.GetCurrent)
	analysis.Get("/current/image", h.middleware.NewTokenMiddleware, h.GetCurrentImage)
}
