package history

import (
	"CafeAnalyzer/internal/entity"
	"CafeAnalyzer/pkg/locale"
	"time"
)

type HistoryQuery struct {
	Period string `query:"period" validate:"omitempty,max=32"`
}

type HistoryItem struct {
	ID             int64  `json:"id"`
	Date           string `json:"date"`
	Timestamp      string `json:"timestamp"`
	TotalTables    int    `json:"total_tables"`
	OccupiedTables int    `json:"occupied_tables"`
	FreeTables     int    `json:"free_tables"`
	People         int    `json:"people"`
	Occupancy      string `json:"occupancy"`
}

type HistoryListResponse struct {
	Period      string        `json:"period"`
	Total       int           `json:"total"`
	Items       []HistoryItem `json:"items"`
	Placeholder string        `json:"placeholder,omitempty"`
}

// NewHistoryItem summarizes one entry the way the history panel lists it.
func NewHistoryItem(entry entity.HistoryEntry, texts locale.Texts, now time.Time) HistoryItem {
	date := entry.Timestamp
	if t, ok := entry.Time(now); ok {
		date = t.Local().Format(texts.DateLayout)
	}

	return HistoryItem{
		ID:             entry.ID,
		Date:           date,
		Timestamp:      entry.Timestamp,
		TotalTables:    entry.TotalTables(),
		OccupiedTables: entry.OccupiedTables(),
		FreeTables:     entry.FreeTables(),
		People:         len(entry.People),
		Occupancy:      locale.Percent(entry.OccupancyRate, 0),
	}
}

func NewHistoryListResponse(period string, entries []entity.HistoryEntry, texts locale.Texts, now time.Time) HistoryListResponse {
	items := make([]HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, NewHistoryItem(e, texts, now))
	}

	resp := HistoryListResponse{
		Period: period,
		Total:  len(items),
		Items:  items,
	}
	if len(items) == 0 {
		resp.Placeholder = texts.NoHistory
	}

	return resp
}
