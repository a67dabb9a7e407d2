package analysisService

import (
	"CafeAnalyzer/internal/api/analysis"
	"CafeAnalyzer/internal/entity"
	"CafeAnalyzer/pkg/cafeapi"
	"CafeAnalyzer/pkg/capture"
	contextPkg "CafeAnalyzer/pkg/context"
	"CafeAnalyzer/pkg/overlay"
	"CafeAnalyzer/pkg/response"
	websocketPkg "CafeAnalyzer/pkg/websocket"
	"context"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"image"
	"time"
)

func (s *analysisService) SelectMedia(ctx context.Context, filename string, contentType string, data []byte) (capture.Mode, error) {
	requestID := contextPkg.GetRequestID(ctx)

	mode, err := s.capturer.SelectFile(filename, contentType, data)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"filename":     filename,
			"content_type": contentType,
			"error":        err.Error(),
		}).Warn("Media selection rejected")
		return capture.ModeNone, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"filename":   filename,
		"mode":       mode,
		"bytes":      len(data),
	}).Info("Media selected")

	return mode, nil
}

// ActivateCamera switches to the live camera. On failure the previous media
// stays selected and clients get a warning.
func (s *analysisService) ActivateCamera(ctx context.Context, device int) error {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.capturer.ActivateCamera(device); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"device":     device,
			"error":      err.Error(),
		}).Warn("Camera access denied")
		s.notify(websocketPkg.LevelWarning, s.texts.CameraDenied)
		return err
	}

	s.notify(websocketPkg.LevelInfo, s.texts.CameraActivated)
	return nil
}

func (s *analysisService) SeekVideo(ctx context.Context, positionMs float64) error {
	return s.capturer.Seek(positionMs)
}

// Run captures the current frame, sends it for analysis, draws the overlay
// and records the result. Only one run is in flight at a time.
func (s *analysisService) Run(ctx context.Context) (resp *analysis.AnalysisResponse, err error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !s.state.TryBeginAnalysis() {
		return nil, analysis.ErrAnalysisInProgress
	}
	defer s.state.EndAnalysis()

	start := time.Now()
	defer func() {
		s.metrics.ObserveAnalysis(time.Since(start), err)
		if err != nil {
			s.notify(websocketPkg.LevelDanger, s.failureMessage(err))
		}
	}()

	frame, err := s.capturer.Capture(ctx)
	if err != nil {
		return nil, err
	}

	frameJPEG, err := capture.EncodeJPEG(frame)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to encode captured frame")
		return nil, response.Wrap(capture.ErrCaptureFailed, err)
	}

	result, err := s.api.Analyze(ctx, frameJPEG, FrameFilename)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Analysis request failed")
		return nil, err
	}

	annotated := s.annotate(requestID, frame, *result)

	entry, histErr := s.historyService.Append(ctx, *result)
	if histErr != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      histErr.Error(),
		}).Warn("Analysis result not persisted")
	}
	result.ID = entry.ID

	s.state.SetCurrent(*result, annotated)

	out := analysis.NewAnalysisResponse(*result, s.texts, s.now(), s.imageURL(result.ID))

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"operator":    contextPkg.GetOperator(ctx),
		"analysis_id": result.ID,
		"tables":      out.Statistics.TotalTables,
		"people":      out.Statistics.People,
		"latency_ms":  time.Since(start).Milliseconds(),
	}).Info("Analysis completed")

	if s.hub != nil {
		s.hub.Broadcast(websocketPkg.Notification{
			Type:    websocketPkg.TypeAnalysis,
			Level:   websocketPkg.LevelSuccess,
			Message: s.texts.AnalysisDone + " " + out.Panel.Processed,
			Data:    out.Statistics,
		})
	}

	return &out, nil
}

// annotate returns the frame with the overlay as JPEG, or nil when drawing fails.
func (s *analysisService) annotate(requestID string, frame image.Image, result entity.AnalysisResult) []byte {
	composed, err := overlay.Compose(frame, result, s.texts)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to draw analysis overlay")
		return nil
	}

	out, err := capture.EncodeJPEG(composed)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to encode annotated frame")
		return nil
	}
	return out
}

func (s *analysisService) Current() (*analysis.AnalysisResponse, error) {
	result, ok := s.state.Current()
	if !ok {
		return nil, analysis.ErrNoCurrentResult
	}

	out := analysis.NewAnalysisResponse(result, s.texts, s.now(), s.imageURL(result.ID))
	return &out, nil
}

func (s *analysisService) CurrentImage() ([]byte, error) {
	img, ok := s.state.AnnotatedImage()
	if !ok {
		return nil, analysis.ErrNoCurrentResult
	}
	return img, nil
}

func (s *analysisService) imageURL(id int64) string {
	return fmt.Sprintf("%s?id=%d", imagePath, id)
}

func (s *analysisService) failureMessage(err error) string {
	if errors.Is(err, cafeapi.ErrNetworkUnreachable) {
		return s.texts.ServerUnavailable
	}
	return fmt.Sprintf(s.texts.AnalysisFailed, err.Error())
}

func (s *analysisService) notify(level websocketPkg.Level, message string) {
	if s.hub != nil {
		s.hub.Notify(level, message)
	}
}
