package entities

// ReservationRequest is a submission from the creation form. EndHour is
// optional; zero or equal to StartHour means a one-hour reservation.
type ReservationRequest struct {
	Date      string `json:"date"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Organizer string `json:"organizer"`
	Subject   string `json:"subject"`
	Attendees string `json:"attendees"`
}
