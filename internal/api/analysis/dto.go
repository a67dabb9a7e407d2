package analysis

import (
	"CafeAnalyzer/internal/entity"
	"CafeAnalyzer/pkg/capture"
	"CafeAnalyzer/pkg/locale"
	"time"
)

type CameraRequest struct {
	DeviceID int `json:"device_id" validate:"gte=0,lte=64"`
}

type SeekRequest struct {
	PositionMs float64 `json:"position_ms" validate:"gte=0"`
}

type MediaResponse struct {
	Mode        capture.Mode `json:"mode"`
	Filename    string       `json:"filename,omitempty"`
	ContentType string       `json:"content_type,omitempty"`
	Message     string       `json:"message,omitempty"`
}

type OccupancyLevel string

const (
	LevelSuccess OccupancyLevel = "success"
	LevelWarning OccupancyLevel = "warning"
	LevelDanger  OccupancyLevel = "danger"
)

func LevelFor(rate float64) OccupancyLevel {
	switch {
	case rate < 0.3:
		return LevelSuccess
	case rate < 0.7:
		return LevelWarning
	default:
		return LevelDanger
	}
}

// Statistics is the summary bar. Occupancy is derived from the tables, not
// taken from the server.
type Statistics struct {
	TotalTables      int            `json:"total_tables"`
	OccupiedTables   int            `json:"occupied_tables"`
	FreeTables       int            `json:"free_tables"`
	People           int            `json:"people"`
	OccupancyRate    float64        `json:"occupancy_rate"`
	OccupancyPercent string         `json:"occupancy_percent"`
	Level            OccupancyLevel `json:"level"`
}

func NewStatistics(result entity.AnalysisResult) Statistics {
	rate := result.ComputedOccupancy()
	return Statistics{
		TotalTables:      result.TotalTables(),
		OccupiedTables:   result.OccupiedTables(),
		FreeTables:       result.FreeTables(),
		People:           len(result.People),
		OccupancyRate:    rate,
		OccupancyPercent: locale.Percent(rate, 1),
		Level:            LevelFor(rate),
	}
}

type PanelLine struct {
	ID         int    `json:"id"`
	Text       string `json:"text"`
	Confidence string `json:"confidence"`
	Occupied   bool   `json:"occupied,omitempty"`
}

type ResultsPanel struct {
	Title             string      `json:"title"`
	Processed         string      `json:"processed"`
	AnalyzedAt        string      `json:"analyzed_at"`
	Tables            []PanelLine `json:"tables"`
	People            []PanelLine `json:"people"`
	NoTables          string      `json:"no_tables,omitempty"`
	NoPeople          string      `json:"no_people,omitempty"`
	TotalTables       int         `json:"total_tables"`
	OccupiedTables    int         `json:"occupied_tables"`
	FreeTables        int         `json:"free_tables"`
	PeopleCount       int         `json:"people_count"`
	Occupancy         string      `json:"occupancy"`
	AverageConfidence string      `json:"average_confidence"`
	ImageWidth        int         `json:"image_width"`
	ImageHeight       int         `json:"image_height"`
}

// NewResultsPanel renders the results panel texts. Occupancy here is the
// server's occupancy_rate.
func NewResultsPanel(result entity.AnalysisResult, texts locale.Texts, now time.Time) ResultsPanel {
	panel := ResultsPanel{
		Title:          texts.AnalysisDone,
		Processed:      texts.Processed(result.TotalTables(), len(result.People)),
		AnalyzedAt:     result.Timestamp,
		Tables:         make([]PanelLine, 0, len(result.Tables)),
		People:         make([]PanelLine, 0, len(result.People)),
		TotalTables:    result.TotalTables(),
		OccupiedTables: result.OccupiedTables(),
		FreeTables:     result.FreeTables(),
		PeopleCount:    len(result.People),
		Occupancy:      locale.Percent(result.OccupancyRate, 1),
		ImageWidth:     result.ImageSize.Width,
		ImageHeight:    result.ImageSize.Height,
	}

	if t, ok := result.Time(now); ok {
		panel.AnalyzedAt = t.Local().Format(texts.DateLayout)
	}

	for _, table := range result.Tables {
		panel.Tables = append(panel.Tables, PanelLine{
			ID:         table.ID,
			Text:       texts.TableLine(table.ID, table.IsOccupied(), table.PersonCount),
			Confidence: texts.ConfidenceCaption(table.Confidence),
			Occupied:   table.IsOccupied(),
		})
	}
	for _, person := range result.People {
		panel.People = append(panel.People, PanelLine{
			ID:         person.ID,
			Text:       texts.PersonCaption(person.ID),
			Confidence: texts.ConfidenceCaption(person.Confidence),
		})
	}

	if len(panel.Tables) == 0 {
		panel.NoTables = texts.NoTables
		panel.AverageConfidence = "0%"
	} else {
		panel.AverageConfidence = locale.Percent(result.AverageTableConfidence(), 1)
	}
	if len(panel.People) == 0 {
		panel.NoPeople = texts.NoPeople
	}

	return panel
}

type AnalysisResponse struct {
	Result     entity.AnalysisResult `json:"result"`
	Panel      ResultsPanel          `json:"panel"`
	Statistics Statistics            `json:"statistics"`
	ImageURL   string                `json:"image_url,omitempty"`
}

func NewAnalysisResponse(result entity.AnalysisResult, texts locale.Texts, now time.Time, imageURL string) AnalysisResponse {
	result.Image = nil
	return AnalysisResponse{
		Result:     result,
		Panel:      NewResultsPanel(result, texts, now),
		Statistics: NewStatistics(result),
		ImageURL:   imageURL,
	}
}
