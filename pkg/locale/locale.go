package locale

import (
	"fmt"
	"strings"
)

// Texts holds every user-visible string of the analyzer UI.
type Texts struct {
	Code string

	Person         string
	Table          string
	StatusOccupied string
	StatusFree     string
	Confidence     string
	People         string

	AnalysisDone      string
	ProcessedFormat   string
	TableFreeFormat   string
	TableBusyFormat   string
	NoTables          string
	NoPeople          string
	NoHistory         string
	NoPeriodData      string
	SummaryFormat     string
	ReportReady       string
	ReportFailed      string
	CameraActivated   string
	CameraDenied      string
	ServerUnavailable string
	AnalysisFailed    string

	DateLayout string
}

var russian = Texts{
	Code:              "ru",
	Person:            "Человек",
	Table:             "Стол",
	StatusOccupied:    "Занят",
	StatusFree:        "Свободен",
	Confidence:        "Уверенность",
	People:            "Людей",
	AnalysisDone:      "Анализ завершен!",
	ProcessedFormat:   "Обработано: %d столов, %d людей обнаружено",
	TableFreeFormat:   "Стол %d: Свободен",
	TableBusyFormat:   "Стол %d: Занят (%d чел)",
	NoTables:          "Столы не обнаружены",
	NoPeople:          "Люди не обнаружены",
	NoHistory:         "Нет данных в истории",
	NoPeriodData:      "Нет данных за выбранный период",
	SummaryFormat:     "Сводный отчет за период: %d анализов",
	ReportReady:       "Отчет успешно сформирован!",
	ReportFailed:      "Ошибка генерации отчета: %s",
	CameraActivated:   "Камера активирована! Нажмите \"Запустить анализ\" для обработки кадра.",
	CameraDenied:      "Не удалось получить доступ к камере",
	ServerUnavailable: "Сервер анализа недоступен",
	AnalysisFailed:    "Ошибка обработки: %s",
	DateLayout:        "02.01.2006, 15:04:05",
}

var english = Texts{
	Code:              "en",
	Person:            "Person",
	Table:             "Table",
	StatusOccupied:    "Occupied",
	StatusFree:        "Free",
	Confidence:        "Confidence",
	People:            "People",
	AnalysisDone:      "Analysis complete!",
	ProcessedFormat:   "Processed: %d tables, %d people detected",
	TableFreeFormat:   "Table %d: Free",
	TableBusyFormat:   "Table %d: Occupied (%d people)",
	NoTables:          "No tables detected",
	NoPeople:          "No people detected",
	NoHistory:         "No history yet",
	NoPeriodData:      "No data for the selected period",
	SummaryFormat:     "Summary report for the period: %d analyses",
	ReportReady:       "Report generated!",
	ReportFailed:      "Report generation failed: %s",
	CameraActivated:   "Camera activated! Press \"Run analysis\" to process a frame.",
	CameraDenied:      "Could not access the camera",
	ServerUnavailable: "Analysis server is unavailable",
	AnalysisFailed:    "Processing failed: %s",
	DateLayout:        "2006-01-02 15:04:05",
}

// For returns the texts for a language code; Russian is the default.
func For(code string) Texts {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "en", "en-us", "en-gb":
		return english
	default:
		return russian
	}
}

func Default() Texts {
	return russian
}

func (t Texts) PersonCaption(id int) string {
	return fmt.Sprintf("%s %d", t.Person, id)
}

func (t Texts) TableCaption(id int, occupied bool) string {
	return fmt.Sprintf("%s %d (%s)", t.Table, id, t.Status(occupied))
}

func (t Texts) Status(occupied bool) string {
	if occupied {
		return t.StatusOccupied
	}
	return t.StatusFree
}

func (t Texts) PeopleCaption(n int) string {
	return fmt.Sprintf("%s: %d", t.People, n)
}

func (t Texts) ConfidenceCaption(confidence float64) string {
	return fmt.Sprintf("%s: %s", t.Confidence, Percent(confidence, 1))
}

func (t Texts) Processed(tables, people int) string {
	return fmt.Sprintf(t.ProcessedFormat, tables, people)
}

func (t Texts) TableLine(id int, occupied bool, personCount int) string {
	if occupied {
		return fmt.Sprintf(t.TableBusyFormat, id, personCount)
	}
	return fmt.Sprintf(t.TableFreeFormat, id)
}

func (t Texts) Summary(analyses int) string {
	return fmt.Sprintf(t.SummaryFormat, analyses)
}

// Percent renders a [0,1] ratio as value*100 with the given decimals.
func Percent(ratio float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, ratio*100)
}
