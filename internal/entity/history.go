package entity

import (
	"errors"
	"time"
)

const (
	HistoryStorageKey = "cafeAnalysisHistory"
	HistoryLimit      = 50
)

// HistoryEntry is a saved AnalysisResult without any image payload.
type HistoryEntry struct {
	AnalysisResult
}

func NewHistoryEntry(result AnalysisResult, id int64) HistoryEntry {
	result.ID = id
	result.Image = nil
	return HistoryEntry{AnalysisResult: result}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp accepts RFC 3339 and the zone-less ISO form emitted by the
// detection service, which is read in local time.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized timestamp: " + s)
}

func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
