package historyRepository

import (
	"CafeAnalyzer/internal/api/history"
	"CafeAnalyzer/internal/entity"
	contextPkg "CafeAnalyzer/pkg/context"
	"context"
	"errors"
	"github.com/sirupsen/logrus"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store is a string key-value backend. A missing key is
// history.ErrHistoryNotFound.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

type Repository interface {
	Load(ctx context.Context) ([]entity.HistoryEntry, error)
	Save(ctx context.Context, entries []entity.HistoryEntry) error
}

type repository struct {
	store Store
	key   string
	log   *logrus.Logger
}

// New keeps the whole history as one JSON array under entity.HistoryStorageKey.
func New(store Store, log *logrus.Logger) Repository {
	return &repository{
		store: store,
		key:   entity.HistoryStorageKey,
		log:   log,
	}
}

func (r *repository) Load(ctx context.Context) ([]entity.HistoryEntry, error) {
	requestID := contextPkg.GetRequestID(ctx)

	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		if !errors.Is(err, history.ErrHistoryNotFound) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to read history")
		}
		return nil, err
	}

	var entries []entity.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Stored history is not valid JSON")
		return nil, history.ErrCorruptHistory
	}

	return entries, nil
}

func (r *repository) Save(ctx context.Context, entries []entity.HistoryEntry) error {
	requestID := contextPkg.GetRequestID(ctx)

	if entries == nil {
		entries = []entity.HistoryEntry{}
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to encode history")
		return err
	}

	if err := r.store.Set(ctx, r.key, string(payload)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to write history")
		return err
	}

	return nil
}
