package report

import (
	"CafeAnalyzer/internal/entity"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ReportRequest struct {
	Type   string `json:"type" validate:"required,max=32"`
	Period string `json:"period" validate:"omitempty,max=32"`
}

// ReportPayload is the body posted to the rendering endpoints. A current
// period sends only data; every other period sends the summary form.
type ReportPayload struct {
	Period  entity.Period
	Data    interface{}
	History []entity.HistoryEntry
	Summary bool
}

func (p ReportPayload) MarshalJSON() ([]byte, error) {
	if !p.Summary {
		return json.Marshal(struct {
			Data interface{} `json:"data"`
		}{p.Data})
	}

	history := p.History
	if history == nil {
		history = []entity.HistoryEntry{}
	}

	return json.Marshal(struct {
		Data    interface{}           `json:"data"`
		Period  entity.Period         `json:"period"`
		History []entity.HistoryEntry `json:"history"`
		Summary bool                  `json:"summary"`
	}{p.Data, p.Period, history, true})
}

// JSONExport is the downloadable JSON report.
type JSONExport struct {
	Period        entity.Period         `json:"period"`
	GeneratedAt   string                `json:"generated_at"`
	TotalAnalyses int                   `json:"total_analyses"`
	Data          []entity.HistoryEntry `json:"data"`
}

const generatedAtLayout = "2006-01-02T15:04:05.000Z"

func NewJSONExport(period entity.Period, filtered []entity.HistoryEntry, now time.Time) JSONExport {
	if filtered == nil {
		filtered = []entity.HistoryEntry{}
	}
	return JSONExport{
		Period:        period,
		GeneratedAt:   now.UTC().Format(generatedAtLayout),
		TotalAnalyses: len(filtered),
		Data:          filtered,
	}
}

func (e JSONExport) Encode() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
	ArchiveURL  string
}

const (
	ContentTypePDF   = "application/pdf"
	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeJSON  = "application/json"
)
