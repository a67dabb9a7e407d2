package report

import (
	"CafeAnalyzer/internal/entity"
	"CafeAnalyzer/pkg/locale"
	"CafeAnalyzer/pkg/utils"
	"fmt"
	"math"
	"time"
)

const summaryListLimit = 50

// CreateSummaryReport aggregates history, newest entry first.
func CreateSummaryReport(history []entity.HistoryEntry, texts locale.Texts) entity.SummaryReport {
	summary := entity.SummaryReport{
		Tables: []entity.SummaryTable{},
		People: []entity.SummaryPerson{},
	}

	if len(history) == 0 {
		summary.Summary = texts.NoPeriodData
		return summary
	}

	var totalTables, totalPeople, occupied int
	for _, entry := range history {
		totalTables += len(entry.Tables)
		totalPeople += len(entry.People)
		occupied += entry.OccupiedTables()

		for _, table := range entry.Tables {
			if len(summary.Tables) == summaryListLimit {
				break
			}
			summary.Tables = append(summary.Tables, entity.SummaryTable{
				TableDetection: table,
				AnalysisTime:   entry.Timestamp,
				AnalysisID:     entry.ID,
			})
		}
		for _, person := range entry.People {
			if len(summary.People) == summaryListLimit {
				break
			}
			summary.People = append(summary.People, entity.SummaryPerson{
				PersonDetection: person,
				AnalysisTime:    entry.Timestamp,
				AnalysisID:      entry.ID,
			})
		}
	}

	analyses := len(history)

	summary.TablesFound = totalTables
	summary.PeopleFound = totalPeople
	if totalTables > 0 {
		summary.OccupancyRate = float64(occupied) / float64(totalTables)
	}
	summary.TotalAnalyses = analyses
	summary.AvgTables = round2(float64(totalTables) / float64(analyses))
	summary.AvgPeople = round2(float64(totalPeople) / float64(analyses))
	summary.PeriodStart = history[analyses-1].Timestamp
	summary.PeriodEnd = history[0].Timestamp
	summary.Summary = texts.Summary(analyses)

	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BuildReportPayload picks what the renderer receives. For the current period
// that is the on-screen result, else the newest entry, else an empty object.
func BuildReportPayload(
	period entity.Period,
	current *entity.AnalysisResult,
	latest *entity.HistoryEntry,
	filtered []entity.HistoryEntry,
	texts locale.Texts,
) ReportPayload {
	if period.IsCurrent() {
		var data interface{} = map[string]interface{}{}
		switch {
		case current != nil:
			data = current
		case latest != nil:
			data = latest
		}
		return ReportPayload{Period: period, Data: data}
	}

	return ReportPayload{
		Period:  period,
		Data:    CreateSummaryReport(filtered, texts),
		History: filtered,
		Summary: true,
	}
}

// Filename names the artifact of a format; the date is the UTC calendar day.
func Filename(format entity.ReportFormat, period entity.Period, now time.Time) (string, string, error) {
	p := utils.SafeFilenamePart(string(period))
	date := now.UTC().Format("2006-01-02")

	switch format {
	case entity.FormatPDF:
		return fmt.Sprintf("cafe-report-%s-%s.pdf", p, date), ContentTypePDF, nil
	case entity.FormatSummaryPDF:
		return fmt.Sprintf("cafe-summary-report-%s-%s.pdf", p, date), ContentTypePDF, nil
	case entity.FormatExcel:
		return fmt.Sprintf("cafe-report-%s-%s.xlsx", p, date), ContentTypeExcel, nil
	case entity.FormatJSON:
		return fmt.Sprintf("cafe-analysis-%s-%s.json", p, date), ContentTypeJSON, nil
	default:
		return "", "", ErrUnsupportedFormat
	}
}
