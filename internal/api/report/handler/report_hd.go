package reportHandler

import (
	"CafeAnalyzer/internal/api/report"
	"CafeAnalyzer/internal/entity"
	contextPkg "CafeAnalyzer/pkg/context"
	"CafeAnalyzer/pkg/handlerUtil"
	"CafeAnalyzer/pkg/log"
	"context"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"time"
)

const reportTimeout = 2 * time.Minute

func periodOrCurrent(raw string) entity.Period {
	period := entity.ParsePeriod(raw)
	if period == "" {
		return entity.PeriodCurrent
	}
	return period
}

// GenerateReport streams the requested report as an attachment.
func (h *ReportHandler) GenerateReport(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), reportTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req report.ReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	format := entity.ReportFormat(req.Type)
	period := periodOrCurrent(req.Period)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"format":     format,
		"period":     period,
	}).Info("Generating report")

	artifact, err := h.reportService.Generate(c, format, period)
	if err != nil {
		if c.Err() == context.DeadlineExceeded {
			return errHandler.HandleRequestTimeout(ctx)
		}
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "generate_report")
	}

	ctx.Set(fiber.HeaderContentType, artifact.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, artifact.Filename))
	if artifact.ArchiveURL != "" {
		ctx.Set("X-Report-Archive", artifact.ArchiveURL)
	}

	return ctx.Status(fiber.StatusOK).Send(artifact.Data)
}

// PreviewPayload returns what would be posted to the renderer for ?period=.
func (h *ReportHandler) PreviewPayload(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)
	payload := h.reportService.BuildPayload(periodOrCurrent(ctx.Query("period")))
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, payload)
}
