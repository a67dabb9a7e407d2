package handlerUtil

import (
	"CafeAnalyzer/internal/api/analysis"
	"CafeAnalyzer/internal/api/history"
	"CafeAnalyzer/internal/api/report"
	"CafeAnalyzer/pkg/cafeapi"
	"CafeAnalyzer/pkg/capture"
	"CafeAnalyzer/pkg/log"
	"CafeAnalyzer/pkg/response"
	"CafeAnalyzer/pkg/utils"
	"errors"
	"github.com/gofiber/fiber/v2"
	fiberUtils "github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

type knownError struct {
	err  error
	code string
	log  logrus.Level
}

// Checked in order; the first sentinel matched with errors.Is wins.
var knownErrors = []knownError{
	{capture.ErrNoMediaSelected, "NO_MEDIA_SELECTED", logrus.WarnLevel},
	{capture.ErrUnsupportedMedia, "UNSUPPORTED_MEDIA", logrus.WarnLevel},
	{capture.ErrNotSeekable, "NOT_SEEKABLE", logrus.WarnLevel},
	{capture.ErrCameraAccessDenied, "CAMERA_ACCESS_DENIED", logrus.WarnLevel},
	{capture.ErrCaptureFailed, "CAPTURE_FAILED", logrus.ErrorLevel},
	{utils.ErrFileTooLarge, "FILE_TOO_LARGE", logrus.WarnLevel},
	{report.ErrUnsupportedFormat, "UNSUPPORTED_FORMAT", logrus.WarnLevel},
	{analysis.ErrAnalysisInProgress, "ANALYSIS_IN_PROGRESS", logrus.WarnLevel},
	{analysis.ErrNoCurrentResult, "NO_CURRENT_RESULT", logrus.InfoLevel},
	{history.ErrSaveHistory, "HISTORY_NOT_SAVED", logrus.ErrorLevel},
	{cafeapi.ErrNetworkUnreachable, "NETWORK_UNREACHABLE", logrus.ErrorLevel},
	{cafeapi.ErrServerError, "SERVER_ERROR", logrus.ErrorLevel},
	{cafeapi.ErrMalformedResponse, "MALFORMED_RESPONSE", logrus.ErrorLevel},
	{cafeapi.ErrRenderingService, "RENDERING_FAILED", logrus.ErrorLevel},
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle writes err as a JSON error body. Known failures keep their message
// and status; anything else becomes a 500 tagged with a trace id.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	for _, known := range knownErrors {
		if !errors.Is(err, known.err) {
			continue
		}

		status := response.StatusCode(known.err, fiber.StatusInternalServerError)
		fields["code"] = known.code
		fields["status"] = status
		h.logger.WithFields(fields).Log(known.log, "Operation failed")

		return c.Status(status).JSON(ErrorResponse{
			Error: err.Error(),
			Code:  known.code,
		})
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		fields["code"] = respErr.Code
		h.logger.WithFields(fields).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(ErrorResponse{Error: err.Error()})
	}

	traceID := log.ErrorWithTraceID(fields, "Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "An unexpected error occurred",
		TraceID: traceID,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "Validation failed: " + err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(fiberUtils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error: message,
		Code:  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
