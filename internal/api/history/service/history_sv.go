package historyService

import (
	"CafeAnalyzer/internal/api/history"
	"CafeAnalyzer/internal/entity"
	contextPkg "CafeAnalyzer/pkg/context"
	"CafeAnalyzer/pkg/response"
	"context"
	"errors"
	"github.com/sirupsen/logrus"
	"time"
)

const (
	dayWindow  = 24 * time.Hour
	weekWindow = 7 * 24 * time.Hour
)

// Load replaces the in-memory history with the persisted one. A missing or
// corrupt blob leaves the history empty.
func (s *historyService) Load(ctx context.Context) error {
	requestID := contextPkg.GetRequestID(ctx)

	entries, err := s.repo.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err == nil:
	case errors.Is(err, history.ErrHistoryNotFound):
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Info("No saved history, starting empty")
		entries, err = nil, nil
	case errors.Is(err, history.ErrCorruptHistory):
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Saved history is corrupt, starting empty")
		entries, err = nil, nil
	default:
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("History backend unavailable, starting empty")
		entries = nil
	}

	if len(entries) > entity.HistoryLimit {
		entries = entries[:entity.HistoryLimit]
	}
	for i := range entries {
		entries[i].Image = nil
	}

	s.entries = entries
	s.metrics.SetHistoryEntries(len(s.entries))

	return err
}

// Append saves result as the newest entry. If persisting fails the entry is
// still kept in memory and returned together with ErrSaveHistory.
func (s *historyService) Append(ctx context.Context, result entity.AnalysisResult) (entity.HistoryEntry, error) {
	requestID := contextPkg.GetRequestID(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if len(s.entries) > 0 && id <= s.entries[0].ID {
		id = s.entries[0].ID + 1
	}

	entry := entity.NewHistoryEntry(result, id)

	entries := make([]entity.HistoryEntry, 0, min(len(s.entries)+1, entity.HistoryLimit))
	entries = append(entries, entry)
	entries = append(entries, s.entries...)
	if len(entries) > entity.HistoryLimit {
		entries = entries[:entity.HistoryLimit]
	}
	s.entries = entries
	s.metrics.SetHistoryEntries(len(s.entries))

	if err := s.repo.Save(ctx, s.entries); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"entry_id":   id,
			"error":      err.Error(),
		}).Warn("History kept in memory only")
		return entry, response.Wrap(history.ErrSaveHistory, err)
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"entry_id":   id,
		"entries":    len(s.entries),
	}).Debug("Analysis saved to history")

	return entry, nil
}

// FilterByPeriod keeps history order. Unrecognized periods filter as current.
func (s *historyService) FilterByPeriod(period entity.Period, currentID int64) []entity.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	filtered := make([]entity.HistoryEntry, 0, len(s.entries))

	for _, e := range s.entries {
		include := false

		switch period.Kind() {
		case entity.PeriodDay:
			include = withinWindow(e, now, dayWindow)
		case entity.PeriodWeek:
			include = withinWindow(e, now, weekWindow)
		case entity.PeriodAll:
			include = true
		default:
			include = currentID != 0 && e.ID == currentID
		}

		if include {
			filtered = append(filtered, e)
		}
	}

	return filtered
}

func withinWindow(e entity.HistoryEntry, now time.Time, window time.Duration) bool {
	t, ok := e.Time(now)
	if !ok {
		return false
	}
	return now.Sub(t) <= window
}

func (s *historyService) Entries() []entity.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *historyService) Latest() (entity.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return entity.HistoryEntry{}, false
	}
	return s.entries[0], true
}

func (s *historyService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
