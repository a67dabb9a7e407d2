package historyRepository

import (
	"CafeAnalyzer/internal/api/history"
	contextPkg "CafeAnalyzer/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"time"
)

type SQLExecutor interface {
	sqlx.ExtContext
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

type sqlStore struct {
	q   SQLExecutor
	log *logrus.Logger
	now func() time.Time
}

// NewSQLStore creates the storage table if needed. It serves both the sqlite3
// and postgres drivers.
func NewSQLStore(ctx context.Context, db *sqlx.DB, log *logrus.Logger) (Store, error) {
	if _, err := db.ExecContext(ctx, queryCreateStorage); err != nil {
		log.WithFields(logrus.Fields{
			"driver": db.DriverName(),
			"error":  err.Error(),
		}).Error("Failed to create app_storage table")
		return nil, err
	}

	return &sqlStore{q: db, log: log, now: time.Now}, nil
}

func (s *sqlStore) Get(ctx context.Context, key string) (string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryGetPayload, map[string]interface{}{
		"storage_key": key,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPayload named query preparation err")
		return "", err
	}
	query = s.q.Rebind(query)

	var payload string
	if err := s.q.QueryRowxContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", history.ErrHistoryNotFound
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPayload execution err")
		return "", err
	}

	return payload, nil
}

func (s *sqlStore) Set(ctx context.Context, key string, value string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryUpsertPayload, map[string]interface{}{
		"storage_key": key,
		"payload":     value,
		"updated_at":  s.now().UTC(),
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpsertPayload named query preparation err")
		return err
	}
	query = s.q.Rebind(query)

	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpsertPayload execution err")
		return err
	}

	return nil
}
