package analysisHandler

import (
	"CafeAnalyzer/internal/api/analysis"
	"CafeAnalyzer/pkg/capture"
	contextPkg "CafeAnalyzer/pkg/context"
	"CafeAnalyzer/pkg/handlerUtil"
	"CafeAnalyzer/pkg/log"
	"context"
	"github.com/gofiber/fiber/v2"
	"time"
)

const (
	mediaTimeout    = 30 * time.Second
	analysisTimeout = 90 * time.Second
)

// SelectMedia accepts a multipart "file" holding an image or a video.
func (h *AnalysisHandler) SelectMedia(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), mediaTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	file, err := ctx.FormFile("file")
	if err != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"error":      err.Error(),
		}).Warn("No file in media upload")
		return errHandler.Handle(ctx, requestID, capture.ErrNoMediaSelected, ctx.Path(), "form_file")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"file_name":  file.Filename,
		"file_size":  file.Size,
	}).Debug("Processing media upload")

	contentType, err := h.utils.ValidateMediaFile(file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "validate_media_file")
	}

	data, err := h.utils.ReadFile(file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_file")
	}

	mode, err := h.analysisService.SelectMedia(c, file.Filename, contentType, data)
	if err != nil {
		if c.Err() == context.DeadlineExceeded {
			return errHandler.HandleRequestTimeout(ctx)
		}
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "select_media")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, analysis.MediaResponse{
		Mode:        mode,
		Filename:    file.Filename,
		ContentType: contentType,
	})
}

func (h *AnalysisHandler) ActivateCamera(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), mediaTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req analysis.CameraRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}
	}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.analysisService.ActivateCamera(c, req.DeviceID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "activate_camera")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, analysis.MediaResponse{
		Mode: capture.ModeCamera,
	})
}

func (h *AnalysisHandler) SeekVideo(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	var req analysis.SeekRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.analysisService.SeekVideo(contextPkg.FromFiberCtx(ctx), req.PositionMs); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "seek_video")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, req)
}

// RunAnalysis captures the current frame and analyzes it.
func (h *AnalysisHandler) RunAnalysis(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), analysisTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	resp, err := h.analysisService.Run(c)
	if err != nil {
		if c.Err() == context.DeadlineExceeded {
			return errHandler.HandleRequestTimeout(ctx)
		}
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "run_analysis")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AnalysisHandler) GetCurrent(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	resp, err := h.analysisService.Current()
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_current")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}

// GetCurrentImage serves the annotated frame of the current result as JPEG.
func (h *AnalysisHandler) GetCurrentImage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	img, err := h.analysisService.CurrentImage()
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_current_image")
	}

	ctx.Set(fiber.HeaderContentType, "image/jpeg")
	ctx.Set(fiber.HeaderCacheControl, "no-store")
	return ctx.Status(fiber.StatusOK).Send(img)
}
