package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/ticketflow/booking-system/shared/events"
	"github.com/ticketflow/booking-system/shared/models"
)

var _ events.TransitionLog = (*PostgresTransitionLog)(nil)

// PostgresTransitionLog stores every applied saga transition append-only.
// The log is the audit trail behind the metrics/event hook; the saga row
// remains the authority on current state.
type PostgresTransitionLog struct {
	db *sqlx.DB
}

// NewPostgresTransitionLog creates a new PostgresTransitionLog
func NewPostgresTransitionLog(db *sqlx.DB) *PostgresTransitionLog {
	return &PostgresTransitionLog{db: db}
}

type postgresTransition struct {
	ID            string    `db:"id"`
	BookingID     string    `db:"booking_id"`
	EventType     string    `db:"event_type"`
	Version       string    `db:"version"`
	Data          []byte    `db:"data"`
	Metadata      []byte    `db:"metadata"`
	Timestamp     time.Time `db:"timestamp"`
	CorrelationID string    `db:"correlation_id"`
	Sequence      int       `db:"sequence"`
}

// Append appends transition events for a booking
func (l *PostgresTransitionLog) Append(ctx context.Context, bookingID models.ID, evts []*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	var lastSequence int
	err = tx.GetContext(ctx, &lastSequence,
		"SELECT COALESCE(MAX(sequence), 0) FROM booking_transitions WHERE booking_id = $1",
		bookingID.String())
	if err != nil && err != sql.ErrNoRows {
		return errors.Wrap(err, "failed to get last sequence")
	}

	for i, event := range evts {
		row, err := l.toPostgres(event, bookingID, lastSequence+i+1)
		if err != nil {
			return errors.Wrap(err, "failed to convert event")
		}

		query := `
			INSERT INTO booking_transitions (
				id, booking_id, event_type, version, data, metadata,
				timestamp, correlation_id, sequence
			) VALUES (
				:id, :booking_id, :event_type, :version, :data, :metadata,
				:timestamp, :correlation_id, :sequence
			)`

		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return errors.Wrap(err, "failed to insert transition")
		}
	}

	return tx.Commit()
}

// History retrieves all transition events for a booking in order
func (l *PostgresTransitionLog) History(ctx context.Context, bookingID models.ID) ([]*events.Event, error) {
	query := `
		SELECT id, booking_id, event_type, version, data, metadata,
			   timestamp, correlation_id, sequence
		FROM booking_transitions
		WHERE booking_id = $1
		ORDER BY sequence ASC`

	var rows []postgresTransition
	err := l.db.SelectContext(ctx, &rows, query, bookingID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transitions")
	}

	evts := make([]*events.Event, len(rows))
	for i, row := range rows {
		event, err := l.toDomain(&row)
		if err != nil {
			return nil, err
		}
		evts[i] = event
	}

	return evts, nil
}

func (l *PostgresTransitionLog) toPostgres(event *events.Event, bookingID models.ID, sequence int) (*postgresTransition, error) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal event data")
	}

	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal event metadata")
	}

	correlationID := ""
	if event.CorrelationID != "" {
		correlationID = event.CorrelationID.String()
	}

	return &postgresTransition{
		ID:            event.ID.String(),
		BookingID:     bookingID.String(),
		EventType:     event.EventType,
		Version:       event.Version,
		Data:          data,
		Metadata:      metadata,
		Timestamp:     event.Timestamp,
		CorrelationID: correlationID,
		Sequence:      sequence,
	}, nil
}

func (l *PostgresTransitionLog) toDomain(row *postgresTransition) (*events.Event, error) {
	id, err := models.NewID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid event ID")
	}

	bookingID, err := models.NewID(row.BookingID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid booking ID")
	}

	var data interface{}
	if err := json.Unmarshal(row.Data, &data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal event data")
	}

	var rawMetadata map[string]interface{}
	if err := json.Unmarshal(row.Metadata, &rawMetadata); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal event metadata")
	}

	metadata := make(events.Metadata)
	for k, v := range rawMetadata {
		if str, ok := v.(string); ok {
			metadata.Set(k, str)
		} else {
			metadata.Set(k, fmt.Sprintf("%v", v))
		}
	}

	var correlationID models.ID
	if row.CorrelationID != "" {
		correlationID, err = models.NewID(row.CorrelationID)
		if err != nil {
			return nil, errors.Wrap(err, "invalid correlation ID")
		}
	}

	topic, _ := events.NewTopic(row.EventType)

	return &events.Event{
		ID:            id,
		AggregateID:   bookingID,
		Topic:         topic,
		EventType:     row.EventType,
		Version:       row.Version,
		Data:          data,
		Metadata:      metadata,
		Timestamp:     row.Timestamp,
		CorrelationID: correlationID,
	}, nil
}
