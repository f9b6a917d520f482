package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/worker-service/executors"
)

// PostgresIdempotencyStore implements executors.IdempotencyStore on the
// shared database. Claim rides on the primary key: the first insert wins.
type PostgresIdempotencyStore struct {
	db *sqlx.DB
}

// NewPostgresIdempotencyStore creates a new PostgresIdempotencyStore
func NewPostgresIdempotencyStore(db *sqlx.DB) *PostgresIdempotencyStore {
	return &PostgresIdempotencyStore{db: db}
}

type postgresIdempotencyRecord struct {
	Key        string    `db:"key"`
	Applied    bool      `db:"applied"`
	Reference  string    `db:"reference"`
	RecordedAt time.Time `db:"recorded_at"`
}

// Get returns the record for a key, or nil when absent
func (s *PostgresIdempotencyStore) Get(ctx context.Context, key string) (*executors.IdempotencyRecord, error) {
	query := `
		SELECT key, applied, reference, recorded_at
		FROM idempotency_records
		WHERE key = $1`

	var row postgresIdempotencyRecord
	err := s.db.GetContext(ctx, &row, query, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read idempotency record")
	}

	return &executors.IdempotencyRecord{
		Key:        row.Key,
		Applied:    row.Applied,
		Reference:  row.Reference,
		RecordedAt: row.RecordedAt,
	}, nil
}

// Claim inserts an unapplied record if the key is absent. Returns true when
// this caller won the claim.
func (s *PostgresIdempotencyStore) Claim(ctx context.Context, key string) (bool, error) {
	query := `
		INSERT INTO idempotency_records (key, applied, reference, recorded_at)
		VALUES ($1, false, '', $2)
		ON CONFLICT (key) DO NOTHING`

	result, err := s.db.ExecContext(ctx, query, key, time.Now())
	if err != nil {
		return false, errors.Wrap(err, "failed to claim idempotency key")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to read claim result")
	}

	return affected > 0, nil
}

// Record marks the side effect applied with the collaborator's reference
func (s *PostgresIdempotencyStore) Record(ctx context.Context, key, reference string) error {
	query := `
		INSERT INTO idempotency_records (key, applied, reference, recorded_at)
		VALUES ($1, true, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			applied = true,
			reference = EXCLUDED.reference,
			recorded_at = EXCLUDED.recorded_at`

	_, err := s.db.ExecContext(ctx, query, key, reference, time.Now())
	if err != nil {
		return errors.Wrap(err, "failed to record idempotency result")
	}

	return nil
}
