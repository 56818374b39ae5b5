package entities

// InviteEmailData carries the fields rendered into an invitation email.
type InviteEmailData struct {
	Organizer string
	Subject   string
	DateLabel string
	TimeLabel string
	AgendaURL string
}
