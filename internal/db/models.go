package db

import (
	"database/sql"
	"time"
)

// Reservation is one booked slot of the meeting room. Start and End are
// stored as "HH:00" labels. End is the inclusive last hour of the range and
// is absent for one-hour reservations.
type Reservation struct {
	ID        int
	Date      string // YYYY-MM-DD, partition key for the day grid
	Start     string
	End       sql.NullString
	Organizer string
	Subject   string
	Attendees string
	CreatedBy string
	CreatedAt time.Time
}

type User struct {
	ID           int
	Email        string
	PasswordHash string
}
