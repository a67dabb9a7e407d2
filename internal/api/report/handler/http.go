package reportHandler

import (
	reportService "CafeAnalyzer/internal/api/report/service"
	"CafeAnalyzer/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ReportHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	reportService reportService.IReportService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	rs reportService.IReportService,
) *ReportHandler {
	return &ReportHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		reportService: rs,
	}
}

func (h *ReportHandler) Start(srv fiber.Router) {
	reports := srv.Group("/reports", h.middleware.NewTokenMiddleware)

	reports.Post("", h.middleware.NewRateLimiter, h.GenerateReport)
	reports.Get("/payload", h.PreviewPayload)
}
