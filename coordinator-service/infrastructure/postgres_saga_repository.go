package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/coordinator-service/domain"
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/saga"
)

// PostgresSagaRepository implements SagaRepository using PostgreSQL. History
// and attempt counters live in jsonb columns; the row is the saga snapshot
// the status API and the reconciler read.
type PostgresSagaRepository struct {
	db *sqlx.DB
}

// NewPostgresSagaRepository creates a new PostgresSagaRepository
func NewPostgresSagaRepository(db *sqlx.DB) *PostgresSagaRepository {
	return &PostgresSagaRepository{db: db}
}

// postgresSagaInstance represents a saga instance in the database
type postgresSagaInstance struct {
	BookingID     string          `db:"booking_id"`
	State         string          `db:"state"`
	History       json.RawMessage `db:"history"`
	Attempts      json.RawMessage `db:"attempts"`
	Compensating  bool            `db:"compensating"`
	StepStartedAt *time.Time      `db:"step_started_at"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
	Version       int             `db:"version"`
}

// Save upserts a saga instance under optimistic locking. The insert path
// covers a freshly opened saga; the update path only wins when the stored
// version is exactly one behind.
func (r *PostgresSagaRepository) Save(ctx context.Context, instance *domain.SagaInstance) error {
	pgInstance, err := r.toPostgres(instance)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO saga_instances (
			booking_id, state, history, attempts, compensating,
			step_started_at, created_at, updated_at, version
		) VALUES (
			:booking_id, :state, :history, :attempts, :compensating,
			:step_started_at, :created_at, :updated_at, :version
		)
		ON CONFLICT (booking_id) DO UPDATE SET
			state = EXCLUDED.state,
			history = EXCLUDED.history,
			attempts = EXCLUDED.attempts,
			compensating = EXCLUDED.compensating,
			step_started_at = EXCLUDED.step_started_at,
			updated_at = EXCLUDED.updated_at,
			version = EXCLUDED.version
		WHERE saga_instances.version = EXCLUDED.version - 1`

	result, err := r.db.NamedExecContext(ctx, query, pgInstance)
	if err != nil {
		return errors.Wrap(err, "failed to save saga instance")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read save result")
	}
	if affected == 0 {
		return errors.Wrapf(domain.ErrVersionConflict, "saga for booking %s version %d", instance.BookingID, instance.Version.Value)
	}

	return nil
}

// FindByBookingID finds the saga instance for a booking
func (r *PostgresSagaRepository) FindByBookingID(ctx context.Context, bookingID models.ID) (*domain.SagaInstance, error) {
	query := `
		SELECT booking_id, state, history, attempts, compensating,
			   step_started_at, created_at, updated_at, version
		FROM saga_instances
		WHERE booking_id = $1`

	var pgInstance postgresSagaInstance
	err := r.db.GetContext(ctx, &pgInstance, query, bookingID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Wrapf(domain.ErrSagaNotFound, "booking %s", bookingID)
		}
		return nil, errors.Wrap(err, "failed to find saga instance")
	}

	return r.toDomain(&pgInstance)
}

// FindStalled returns non-terminal instances whose step clock started before
// the given time. Instances without a step in flight never stall.
func (r *PostgresSagaRepository) FindStalled(ctx context.Context, olderThan time.Time) ([]*domain.SagaInstance, error) {
	query := `
		SELECT booking_id, state, history, attempts, compensating,
			   step_started_at, created_at, updated_at, version
		FROM saga_instances
		WHERE state NOT IN ($1, $2)
		  AND step_started_at IS NOT NULL
		  AND step_started_at < $3
		ORDER BY step_started_at ASC`

	var pgInstances []postgresSagaInstance
	err := r.db.SelectContext(ctx, &pgInstances, query,
		string(saga.StateConfirmed), string(saga.StateCancelled), olderThan)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find stalled sagas")
	}

	instances := make([]*domain.SagaInstance, len(pgInstances))
	for i := range pgInstances {
		instance, err := r.toDomain(&pgInstances[i])
		if err != nil {
			return nil, err
		}
		instances[i] = instance
	}

	return instances, nil
}

// toPostgres converts a domain saga instance to the postgres model
func (r *PostgresSagaRepository) toPostgres(instance *domain.SagaInstance) (*postgresSagaInstance, error) {
	history, err := json.Marshal(instance.History)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal saga history")
	}

	attempts, err := json.Marshal(instance.Attempts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal saga attempts")
	}

	return &postgresSagaInstance{
		BookingID:     instance.BookingID.String(),
		State:         string(instance.State),
		History:       history,
		Attempts:      attempts,
		Compensating:  instance.Compensating,
		StepStartedAt: instance.StepStartedAt,
		CreatedAt:     instance.Timestamps.CreatedAt,
		UpdatedAt:     instance.Timestamps.UpdatedAt,
		Version:       instance.Version.Value,
	}, nil
}

// toDomain converts the postgres model to a domain saga instance
func (r *PostgresSagaRepository) toDomain(pgInstance *postgresSagaInstance) (*domain.SagaInstance, error) {
	bookingID, err := models.NewID(pgInstance.BookingID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid booking ID")
	}

	var history []domain.StepRecord
	if err := json.Unmarshal(pgInstance.History, &history); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal saga history")
	}

	var attempts map[saga.StepKind]int
	if err := json.Unmarshal(pgInstance.Attempts, &attempts); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal saga attempts")
	}
	if attempts == nil {
		attempts = make(map[saga.StepKind]int)
	}

	return &domain.SagaInstance{
		BookingID:     bookingID,
		State:         saga.State(pgInstance.State),
		History:       history,
		Attempts:      attempts,
		Compensating:  pgInstance.Compensating,
		StepStartedAt: pgInstance.StepStartedAt,
		Timestamps: models.Timestamps{
			CreatedAt: pgInstance.CreatedAt,
			UpdatedAt: pgInstance.UpdatedAt,
		},
		Version: models.Version{Value: pgInstance.Version},
	}, nil
}
