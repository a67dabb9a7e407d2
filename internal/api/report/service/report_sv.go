package reportService

import (
	"CafeAnalyzer/internal/api/report"
	"CafeAnalyzer/internal/entity"
	contextPkg "CafeAnalyzer/pkg/context"
	websocketPkg "CafeAnalyzer/pkg/websocket"
	"context"
	"fmt"
	"github.com/sirupsen/logrus"
)

func (s *reportService) BuildPayload(period entity.Period) report.ReportPayload {
	var current *entity.AnalysisResult
	if res, ok := s.state.Current(); ok {
		current = &res
	}

	var latest *entity.HistoryEntry
	if entry, ok := s.historyService.Latest(); ok {
		latest = &entry
	}

	filtered := s.historyService.FilterByPeriod(period, s.state.CurrentID())

	return report.BuildReportPayload(period, current, latest, filtered, s.texts)
}

// Generate produces the artifact for format. JSON is assembled locally; the
// other formats are rendered by the analysis server.
func (s *reportService) Generate(ctx context.Context, format entity.ReportFormat, period entity.Period) (artifact *report.Artifact, err error) {
	requestID := contextPkg.GetRequestID(ctx)

	defer func() {
		s.metrics.ObserveReport(string(format), err)
		s.notify(err)
	}()

	if !format.Valid() {
		return nil, report.ErrUnsupportedFormat
	}

	now := s.now()
	filename, contentType, err := report.Filename(format, period, now)
	if err != nil {
		return nil, err
	}

	var data []byte
	if format == entity.FormatJSON {
		filtered := s.historyService.FilterByPeriod(period, s.state.CurrentID())
		data, err = report.NewJSONExport(period, filtered, now).Encode()
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to encode JSON report")
			return nil, err
		}
	} else {
		data, err = s.api.RenderReport(ctx, format, s.BuildPayload(period))
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"format":     format,
				"period":     period,
				"error":      err.Error(),
			}).Warn("Report rendering failed")
			return nil, err
		}
	}

	artifact = &report.Artifact{
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}

	if s.archive != nil {
		location, archiveErr := s.archive.UploadReport(ctx, filename, contentType, data)
		if archiveErr != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"filename":   filename,
				"error":      archiveErr.Error(),
			}).Warn("Failed to archive report")
		} else {
			artifact.ArchiveURL = location
		}
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"operator":   contextPkg.GetOperator(ctx),
		"filename":   filename,
		"bytes":      len(data),
	}).Info("Report generated")

	return artifact, nil
}

func (s *reportService) notify(err error) {
	if s.hub == nil {
		return
	}
	if err != nil {
		s.hub.Notify(websocketPkg.LevelDanger, fmt.Sprintf(s.texts.ReportFailed, err.Error()))
		return
	}
	s.hub.Notify(websocketPkg.LevelSuccess, s.texts.ReportReady)
}
