package entities

import "salajuntas/internal/schedule"

// DaySchedule is the rendered grid for one date, one row per hour of the
// operating window.
type DaySchedule struct {
	Date string         `json:"date"`
	Rows []schedule.Row `json:"rows"`
}

// ReservationDetail backs the detail/cancel dialog.
type ReservationDetail struct {
	ID        int    `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Organizer string `json:"organizer"`
	Subject   string `json:"subject"`
	Attendees string `json:"attendees,omitempty"`
	CreatedBy string `json:"created_by"`
	CanDelete bool   `json:"can_delete"`
	MailtoURL string `json:"mailto_url,omitempty"`
}
