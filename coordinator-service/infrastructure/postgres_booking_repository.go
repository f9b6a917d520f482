package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/coordinator-service/domain"
	"github.com/ticketflow/booking-system/shared/events"
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/saga"
)

// PostgresBookingRepository implements BookingRepository using PostgreSQL
type PostgresBookingRepository struct {
	db *sqlx.DB
}

// NewPostgresBookingRepository creates a new PostgresBookingRepository
func NewPostgresBookingRepository(db *sqlx.DB) *PostgresBookingRepository {
	return &PostgresBookingRepository{db: db}
}

// postgresBooking represents a booking in the database
type postgresBooking struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	EventID     string         `db:"event_id"`
	Seats       int            `db:"seats"`
	SeatNumbers pq.StringArray `db:"seat_numbers"`
	Amount      int64          `db:"amount"`
	Currency    string         `db:"currency"`
	State       string         `db:"state"`
	ReasonCode  string         `db:"reason_code"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
	Version     int            `db:"version"`
}

// Save saves a booking to the database
func (r *PostgresBookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	for _, event := range booking.Events() {
		if event.EventType == events.BookingCreatedEvent {
			return r.insertBooking(ctx, booking)
		}
	}
	return r.updateBooking(ctx, booking)
}

// insertBooking inserts a new booking
func (r *PostgresBookingRepository) insertBooking(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (
			id, user_id, event_id, seats, seat_numbers, amount, currency,
			state, reason_code, created_at, updated_at, version
		) VALUES (
			:id, :user_id, :event_id, :seats, :seat_numbers, :amount, :currency,
			:state, :reason_code, :created_at, :updated_at, :version
		)`

	_, err := r.db.NamedExecContext(ctx, query, r.toPostgres(booking))
	if err != nil {
		return errors.Wrap(err, "failed to insert booking")
	}

	return nil
}

// updateBooking updates an existing booking under optimistic locking
func (r *PostgresBookingRepository) updateBooking(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET state = :state, reason_code = :reason_code,
			updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":          booking.ID.String(),
		"state":       string(booking.State),
		"reason_code": booking.ReasonCode,
		"updated_at":  booking.Timestamps.UpdatedAt,
		"version":     booking.Version.Value,
		"old_version": booking.Version.Value - 1,
	})
	if err != nil {
		return errors.Wrap(err, "failed to update booking")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read update result")
	}
	if affected == 0 {
		return errors.Wrapf(domain.ErrVersionConflict, "booking %s version %d", booking.ID, booking.Version.Value)
	}

	return nil
}

// FindByID finds a booking by ID
func (r *PostgresBookingRepository) FindByID(ctx context.Context, id models.ID) (*domain.Booking, error) {
	query := `
		SELECT id, user_id, event_id, seats, seat_numbers, amount, currency,
			   state, reason_code, created_at, updated_at, deleted_at, version
		FROM bookings
		WHERE id = $1 AND deleted_at IS NULL`

	var pgBooking postgresBooking
	err := r.db.GetContext(ctx, &pgBooking, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Wrapf(domain.ErrBookingNotFound, "id %s", id)
		}
		return nil, errors.Wrap(err, "failed to find booking")
	}

	return r.toDomain(&pgBooking)
}

// FindByUserID finds bookings by user ID
func (r *PostgresBookingRepository) FindByUserID(ctx context.Context, userID models.ID) ([]*domain.Booking, error) {
	query := `
		SELECT id, user_id, event_id, seats, seat_numbers, amount, currency,
			   state, reason_code, created_at, updated_at, deleted_at, version
		FROM bookings
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	var pgBookings []postgresBooking
	err := r.db.SelectContext(ctx, &pgBookings, query, userID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to find bookings by user ID")
	}

	bookings := make([]*domain.Booking, len(pgBookings))
	for i := range pgBookings {
		booking, err := r.toDomain(&pgBookings[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = booking
	}

	return bookings, nil
}

// toPostgres converts a domain booking to the postgres model
func (r *PostgresBookingRepository) toPostgres(booking *domain.Booking) *postgresBooking {
	return &postgresBooking{
		ID:          booking.ID.String(),
		UserID:      booking.UserID.String(),
		EventID:     booking.EventID.String(),
		Seats:       booking.Seats,
		SeatNumbers: pq.StringArray(booking.SeatNumbers),
		Amount:      booking.Amount.Amount,
		Currency:    booking.Amount.Currency,
		State:       string(booking.State),
		ReasonCode:  booking.ReasonCode,
		CreatedAt:   booking.Timestamps.CreatedAt,
		UpdatedAt:   booking.Timestamps.UpdatedAt,
		DeletedAt:   booking.Timestamps.DeletedAt,
		Version:     booking.Version.Value,
	}
}

// toDomain converts the postgres model to a domain booking
func (r *PostgresBookingRepository) toDomain(pgBooking *postgresBooking) (*domain.Booking, error) {
	id, err := models.NewID(pgBooking.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid booking ID")
	}

	userID, err := models.NewID(pgBooking.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user ID")
	}

	eventID, err := models.NewID(pgBooking.EventID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid event ID")
	}

	return &domain.Booking{
		ID:          id,
		UserID:      userID,
		EventID:     eventID,
		Seats:       pgBooking.Seats,
		SeatNumbers: []string(pgBooking.SeatNumbers),
		Amount:      models.NewMoney(pgBooking.Amount, pgBooking.Currency),
		State:       saga.State(pgBooking.State),
		ReasonCode:  pgBooking.ReasonCode,
		Timestamps: models.Timestamps{
			CreatedAt: pgBooking.CreatedAt,
			UpdatedAt: pgBooking.UpdatedAt,
			DeletedAt: pgBooking.DeletedAt,
		},
		Version: models.Version{Value: pgBooking.Version},
	}, nil
}
