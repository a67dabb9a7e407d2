package entity

import "strings"

type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodAll     Period = "all"
	PeriodCurrent Period = "current"
)

// ParsePeriod keeps the raw name; Kind reports how it filters.
func ParsePeriod(s string) Period {
	return Period(strings.TrimSpace(s))
}

// Kind maps unrecognized period names onto current.
func (p Period) Kind() Period {
	switch p {
	case PeriodDay, PeriodWeek, PeriodAll, PeriodCurrent:
		return p
	default:
		return PeriodCurrent
	}
}

func (p Period) IsCurrent() bool {
	return p == PeriodCurrent
}

type ReportFormat string

const (
	FormatPDF        ReportFormat = "pdf"
	FormatSummaryPDF ReportFormat = "summary_pdf"
	FormatExcel      ReportFormat = "excel"
	FormatJSON       ReportFormat = "json"
)

func (f ReportFormat) Valid() bool {
	switch f {
	case FormatPDF, FormatSummaryPDF, FormatExcel, FormatJSON:
		return true
	default:
		return false
	}
}

// Rendered reports whether the backend renders this format.
func (f ReportFormat) Rendered() bool {
	return f == FormatPDF || f == FormatSummaryPDF || f == FormatExcel
}

type SummaryTable struct {
	TableDetection
	AnalysisTime string `json:"analysis_time"`
	AnalysisID   int64  `json:"analysis_id"`
}

type SummaryPerson struct {
	PersonDetection
	AnalysisTime string `json:"analysis_time"`
	AnalysisID   int64  `json:"analysis_id"`
}

type SummaryReport struct {
	TablesFound   int             `json:"tables_found"`
	PeopleFound   int             `json:"people_found"`
	Tables        []SummaryTable  `json:"tables"`
	People        []SummaryPerson `json:"people"`
	OccupancyRate float64         `json:"occupancy_rate"`
	TotalAnalyses int             `json:"total_analyses"`
	AvgTables     float64         `json:"avg_tables_per_analysis"`
	AvgPeople     float64         `json:"avg_people_per_analysis"`
	PeriodStart   string          `json:"period_start,omitempty"`
	PeriodEnd     string          `json:"period_end,omitempty"`
	Summary       string          `json:"summary"`
}
