package report

import (
	"CafeAnalyzer/internal/entity"
	"CafeAnalyzer/pkg/locale"
	"reflect"
	"strings"
	"testing"
	"time"
)

func entry(id int64, ts string, statuses []entity.TableStatus, people int) entity.HistoryEntry {
	r := entity.AnalysisResult{Timestamp: ts}
	for i, s := range statuses {
		r.Tables = append(r.Tables, entity.TableDetection{ID: i + 1, BBox: entity.BoundingBox{0, 0, 1, 1}, Status: s})
	}
	for i := 0; i < people; i++ {
		r.People = append(r.People, entity.PersonDetection{ID: i + 1, BBox: entity.BoundingBox{0, 0, 1, 1}})
	}
	return entity.NewHistoryEntry(r, id)
}

func TestCreateSummaryReport(t *testing.T) {
	texts := locale.Default()
	history := []entity.HistoryEntry{
		entry(2, "2024-05-01T12:00:00", []entity.TableStatus{entity.TableOccupied}, 1),
		entry(1, "2024-05-01T11:00:00", []entity.TableStatus{entity.TableFree, entity.TableFree}, 0),
	}

	got := CreateSummaryReport(history, texts)

	if got.TablesFound != 3 || got.PeopleFound != 1 {
		t.Errorf("found = %d/%d, want 3/1", got.TablesFound, got.PeopleFound)
	}
	if got.OccupancyRate != 1.0/3.0 {
		t.Errorf("occupancy = %v, want 1/3", got.OccupancyRate)
	}
	if got.TotalAnalyses != 2 || got.AvgTables != 1.5 || got.AvgPeople != 0.5 {
		t.Errorf("totals = %d, avg %v/%v", got.TotalAnalyses, got.AvgTables, got.AvgPeople)
	}
	if got.PeriodStart != "2024-05-01T11:00:00" || got.PeriodEnd != "2024-05-01T12:00:00" {
		t.Errorf("period = %s .. %s", got.PeriodStart, got.PeriodEnd)
	}
	if got.Summary != texts.Summary(2) {
		t.Errorf("summary = %q", got.Summary)
	}
	if len(got.Tables) != 3 || got.Tables[0].AnalysisID != 2 || got.Tables[2].AnalysisID != 1 || got.Tables[2].AnalysisTime != "2024-05-01T11:00:00" {
		t.Errorf("tables = %+v", got.Tables)
	}
}

func TestCreateSummaryReportEmpty(t *testing.T) {
	texts := locale.Default()
	got := CreateSummaryReport(nil, texts)

	if got.TablesFound != 0 || got.PeopleFound != 0 || got.OccupancyRate != 0 || got.TotalAnalyses != 0 {
		t.Errorf("empty summary = %+v", got)
	}
	if got.Tables == nil || got.People == nil {
		t.Error("lists must be empty, not nil")
	}
	if got.Summary != texts.NoPeriodData {
		t.Errorf("summary = %q", got.Summary)
	}
}

func TestCreateSummaryReportRoundsAndCaps(t *testing.T) {
	var history []entity.HistoryEntry
	for i := 0; i < 3; i++ {
		statuses := make([]entity.TableStatus, 20)
		for j := range statuses {
			statuses[j] = entity.TableFree
		}
		history = append(history, entry(int64(10-i), "", statuses, 0))
	}
	history = append(history, entry(1, "", []entity.TableStatus{entity.TableOccupied}, 1))

	got := CreateSummaryReport(history, locale.Default())

	if len(got.Tables) != summaryListLimit {
		t.Errorf("tables kept = %d, want %d", len(got.Tables), summaryListLimit)
	}
	if got.AvgTables != 15.25 {
		t.Errorf("AvgTables = %v, want 15.25", got.AvgTables)
	}

	two := CreateSummaryReport([]entity.HistoryEntry{
		entry(3, "", []entity.TableStatus{entity.TableFree}, 1),
		entry(2, "", []entity.TableStatus{entity.TableFree}, 0),
		entry(1, "", nil, 0),
	}, locale.Default())
	if two.AvgTables != 0.67 || two.AvgPeople != 0.33 {
		t.Errorf("averages = %v/%v, want 0.67/0.33", two.AvgTables, two.AvgPeople)
	}
}

func TestBuildReportPayload(t *testing.T) {
	texts := locale.Default()
	current := &entity.AnalysisResult{ID: 5, Timestamp: "2024-05-01T12:00:00", Tables: []entity.TableDetection{}, People: []entity.PersonDetection{}}
	latest := entry(4, "2024-05-01T11:00:00", nil, 0)

	t.Run("current prefers on-screen result", func(t *testing.T) {
		body, err := json.Marshal(BuildReportPayload(entity.PeriodCurrent, current, &latest, nil, texts))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		s := string(body)
		if !strings.HasPrefix(s, `{"data":{"id":5`) || strings.Contains(s, `"summary"`) {
			t.Errorf("payload = %s", s)
		}
	})

	t.Run("current falls back to latest then empty", func(t *testing.T) {
		body, _ := json.Marshal(BuildReportPayload(entity.PeriodCurrent, nil, &latest, nil, texts))
		if !strings.HasPrefix(string(body), `{"data":{"id":4`) {
			t.Errorf("payload = %s", body)
		}
		body, _ = json.Marshal(BuildReportPayload(entity.PeriodCurrent, nil, nil, nil, texts))
		if string(body) != `{"data":{}}` {
			t.Errorf("payload = %s", body)
		}
	})

	t.Run("other periods send the summary form", func(t *testing.T) {
		filtered := []entity.HistoryEntry{latest}
		body, _ := json.Marshal(BuildReportPayload(entity.Period("month"), current, &latest, filtered, texts))
		s := string(body)
		for _, want := range []string{`"period":"month"`, `"summary":true`, `"history":[{"id":4`, `"total_analyses":1`} {
			if !strings.Contains(s, want) {
				t.Errorf("payload %s missing %s", s, want)
			}
		}
	})
}

func TestJSONExport(t *testing.T) {
	now := time.Date(2024, 5, 1, 23, 30, 0, 0, time.FixedZone("MSK", 3*3600))
	filtered := []entity.HistoryEntry{
		entity.NewHistoryEntry(entity.AnalysisResult{
			Timestamp:   "2024-05-01T20:15:00.123456",
			TablesFound: 2,
			PeopleFound: 1,
			Tables: []entity.TableDetection{
				{ID: 1, BBox: entity.BoundingBox{12.5, 40, 180.25, 210}, Status: entity.TableOccupied, PersonCount: 1, Confidence: 0.91},
				{ID: 2, BBox: entity.BoundingBox{300, 45.75, 420, 200}, Status: entity.TableFree, Confidence: 0.67},
			},
			People: []entity.PersonDetection{
				{ID: 1, BBox: entity.BoundingBox{30, 20, 90.5, 190}, Confidence: 0.88},
			},
			OccupancyRate: 0.5,
			ImageSize:     entity.ImageSize{Width: 640, Height: 480},
		}, 1714594500123),
		entity.NewHistoryEntry(entity.AnalysisResult{
			Timestamp: "2024-05-01T19:00:00",
			Tables:    []entity.TableDetection{},
			People:    []entity.PersonDetection{},
			ImageSize: entity.ImageSize{Width: 1280, Height: 720},
		}, 1714590000000),
	}

	data, err := NewJSONExport(entity.PeriodWeek, filtered, now).Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if !strings.Contains(string(data), "\n  \"") {
		t.Errorf("export is not indented by two spaces:\n%s", data)
	}

	var decoded struct {
		Period        string                `json:"period"`
		GeneratedAt   string                `json:"generated_at"`
		TotalAnalyses int                   `json:"total_analyses"`
		Data          []entity.HistoryEntry `json:"data"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Period != "week" || decoded.GeneratedAt != "2024-05-01T20:30:00.000Z" || decoded.TotalAnalyses != 2 {
		t.Errorf("export header = %q %q %d", decoded.Period, decoded.GeneratedAt, decoded.TotalAnalyses)
	}
	if !reflect.DeepEqual(decoded.Data, filtered) {
		t.Errorf("exported history differs:\n got %+v\nwant %+v", decoded.Data, filtered)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 5, 2, 1, 0, 0, 0, time.FixedZone("MSK", 3*3600))

	tests := []struct {
		format entity.ReportFormat
		period entity.Period
		want   string
		ctype  string
	}{
		{entity.FormatPDF, entity.PeriodDay, "cafe-report-day-2024-05-01.pdf", ContentTypePDF},
		{entity.FormatSummaryPDF, entity.PeriodWeek, "cafe-summary-report-week-2024-05-01.pdf", ContentTypePDF},
		{entity.FormatExcel, entity.PeriodAll, "cafe-report-all-2024-05-01.xlsx", ContentTypeExcel},
		{entity.FormatJSON, entity.PeriodCurrent, "cafe-analysis-current-2024-05-01.json", ContentTypeJSON},
		{entity.FormatJSON, entity.Period("../x"), "cafe-analysis-.._x-2024-05-01.json", ContentTypeJSON},
	}

	for _, tt := range tests {
		got, ctype, err := Filename(tt.format, tt.period, now)
		if err != nil || got != tt.want || ctype != tt.ctype {
			t.Errorf("Filename(%s, %s) = %q, %q, %v; want %q", tt.format, tt.period, got, ctype, err, tt.want)
		}
	}

	if _, _, err := Filename("docx", entity.PeriodDay, now); err != ErrUnsupportedFormat {
		t.Errorf("unknown format err = %v", err)
	}
}
