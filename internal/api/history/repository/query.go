package historyRepository

const (
	queryCreateStorage = `
		CREATE TABLE IF NOT EXISTS app_storage (
			storage_key TEXT PRIMARY KEY,
			payload     TEXT NOT NULL,
			updated_at  TIMESTAMP NOT NULL
		)
	`

	queryGetPayload = `
		SELECT
			payload
		FROM app_storage
		WHERE storage_key = :storage_key
	`

	queryUpsertPayload = `
		INSERT INTO app_storage (
			storage_key,
			payload,
			updated_at
		) VALUES (
			:storage_key,
			:payload,
			:updated_at
		)
		ON CONFLICT (storage_key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`
)
