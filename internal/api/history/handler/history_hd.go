package historyHandler

import (
	"CafeAnalyzer/internal/api/history"
	"CafeAnalyzer/internal/entity"
	"CafeAnalyzer/pkg/handlerUtil"
	"CafeAnalyzer/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// ListHistory returns every entry, or the entries of ?period= when given.
func (h *HistoryHandler) ListHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	var query history.HistoryQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"period":     query.Period,
	}).Debug("Listing history")

	var entries []entity.HistoryEntry
	period := entity.ParsePeriod(query.Period)
	if period == "" {
		entries = h.historyService.Entries()
	} else {
		entries = h.historyService.FilterByPeriod(period, h.state.CurrentID())
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK,
		history.NewHistoryListResponse(string(period), entries, h.texts, h.historyService.Now()))
}
