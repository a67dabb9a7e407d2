package analysis

import (
	"CafeAnalyzer/internal/entity"
	"CafeAnalyzer/pkg/locale"
	"testing"
	"time"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		rate float64
		want OccupancyLevel
	}{
		{0, LevelSuccess},
		{0.29, LevelSuccess},
		{0.3, LevelWarning},
		{0.69, LevelWarning},
		{0.7, LevelDanger},
		{1, LevelDanger},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.rate); got != tt.want {
			t.Errorf("LevelFor(%v) = %s, want %s", tt.rate, got, tt.want)
		}
	}
}

func TestEmptyResultPanel(t *testing.T) {
	texts := locale.Default()
	result := entity.AnalysisResult{Tables: []entity.TableDetection{}, People: []entity.PersonDetection{}}

	panel := NewResultsPanel(result, texts, time.Now())

	if panel.NoTables != texts.NoTables || panel.NoPeople != texts.NoPeople {
		t.Errorf("placeholders = %q / %q", panel.NoTables, panel.NoPeople)
	}
	if panel.AverageConfidence != "0%" || panel.Occupancy != "0.0%" {
		t.Errorf("confidence %q, occupancy %q", panel.AverageConfidence, panel.Occupancy)
	}
	if panel.Processed != "Обработано: 0 столов, 0 людей обнаружено" {
		t.Errorf("processed = %q", panel.Processed)
	}

	stats := NewStatistics(result)
	if stats.TotalTables != 0 || stats.OccupancyRate != 0 || stats.Level != LevelSuccess {
		t.Errorf("stats = %+v", stats)
	}
}

func TestResultsPanelLines(t *testing.T) {
	texts := locale.Default()
	result := entity.AnalysisResult{
		Tables: []entity.TableDetection{
			{ID: 1, Status: entity.TableOccupied, PersonCount: 2, Confidence: 0.9},
			{ID: 2, Status: entity.TableFree, Confidence: 0.7},
		},
		People:        []entity.PersonDetection{{ID: 3, Confidence: 0.456}},
		OccupancyRate: 0.25,
		ImageSize:     entity.ImageSize{Width: 640, Height: 480},
	}

	panel := NewResultsPanel(result, texts, time.Now())

	if panel.Tables[0].Text != "Стол 1: Занят (2 чел)" || panel.Tables[1].Text != "Стол 2: Свободен" {
		t.Errorf("table lines = %+v", panel.Tables)
	}
	if panel.People[0].Text != "Человек 3" || panel.People[0].Confidence != "Уверенность: 45.6%" {
		t.Errorf("person line = %+v", panel.People[0])
	}
	if panel.AverageConfidence != "80.0%" {
		t.Errorf("average confidence = %q", panel.AverageConfidence)
	}
	if panel.Occupancy != "25.0%" {
		t.Errorf("panel occupancy = %q, want the server value", panel.Occupancy)
	}
	if panel.NoTables != "" || panel.NoPeople != "" {
		t.Error("placeholders set for a non-empty result")
	}

	stats := NewStatistics(result)
	if stats.OccupancyRate != 0.5 || stats.OccupancyPercent != "50.0%" || stats.Level != LevelWarning {
		t.Errorf("stats = %+v", stats)
	}
}
