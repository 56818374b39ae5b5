package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"salajuntas/internal/db"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

// ListByDate returns every reservation for the given date ordered by start
// time, which is the order the day grid relies on.
func (r *ReservationRepository) ListByDate(ctx context.Context, date string) ([]db.Reservation, error) {
	query := `
		SELECT id, date, start_time, end_time, organizer, subject, attendees, created_by, created_at
		FROM reservations
		WHERE date = $1
		ORDER BY start_time`

	rows, err := r.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations for date %s: %w", date, err)
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		var res db.Reservation
		if err := rows.Scan(
			&res.ID, &res.Date, &res.Start, &res.End,
			&res.Organizer, &res.Subject, &res.Attendees, &res.CreatedBy, &res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservation rows: %w", err)
	}
	return reservations, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res *db.Reservation) error {
	query := `
		INSERT INTO reservations
		(date, start_time, end_time, organizer, subject, attendees, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		res.Date,
		res.Start,
		res.End,
		res.Organizer,
		res.Subject,
		res.Attendees,
		res.CreatedBy,
		time.Now().UTC(),
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting reservation: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when no reservation has the given id.
func (r *ReservationRepository) GetByID(ctx context.Context, id int) (*db.Reservation, error) {
	var res db.Reservation
	query := `
		SELECT id, date, start_time, end_time, organizer, subject, attendees, created_by, created_at
		FROM reservations WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&res.ID, &res.Date, &res.Start, &res.End,
		&res.Organizer, &res.Subject, &res.Attendees, &res.CreatedBy, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying reservation %d: %w", id, err)
	}
	return &res, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("error deleting reservation %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading rows affected for reservation %d: %w", id, err)
	}
	return affected, nil
}

// DeleteDatesBefore removes every reservation for dates strictly before the
// given YYYY-MM-DD cutoff. Used by the retention job.
func (r *ReservationRepository) DeleteDatesBefore(ctx context.Context, cutoff string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM reservations WHERE date < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error purging reservations before %s: %w", cutoff, err)
	}
	return result.RowsAffected()
}
