package service

import (
	"log"
	"os"
	"strings"
	"time"

	"salajuntas/internal/db"
	"salajuntas/internal/entities"
	"salajuntas/internal/schedule"
	"salajuntas/internal/utils"
)

// InviteService emails meeting invitations to the addresses found in the
// attendee text of a new reservation.
type InviteService struct {
	appURL string
}

func NewInviteService() *InviteService {
	return &InviteService{appURL: os.Getenv("APP_URL")}
}

// SendInvites fires one email per attendee address, asynchronously. A
// reservation without parseable addresses sends nothing.
func (s *InviteService) SendInvites(res db.Reservation) {
	emails := utils.ParseAttendeeEmails(res.Attendees)
	if len(emails) == 0 {
		return
	}

	subject := InviteSubject(res)
	body := InviteBody(res, s.appURL)

	for _, to := range emails {
		go func(toEmail string) {
			if err := SendEmailWithSendGrid(toEmail, "", subject, body, ""); err != nil {
				log.Printf("ALERT (async): invite email for reservation %d to %s failed: %v", res.ID, toEmail, err)
			}
		}(to)
	}
}

func InviteSubject(res db.Reservation) string {
	if res.Subject != "" {
		return "Reservación: " + res.Subject
	}
	return "Invitación Sala de Juntas"
}

// InviteBody renders the invitation text, matching the wording the booking
// screen has always used.
func InviteBody(res db.Reservation, appURL string) string {
	data := entities.InviteEmailData{
		Organizer: res.Organizer,
		Subject:   res.Subject,
		DateLabel: dateLabel(res.Date),
		TimeLabel: schedule.RangeLabel(res),
		AgendaURL: appURL,
	}

	lines := []string{
		"Invitación a reservación - Sala de Juntas",
		"",
		"Organizado por: " + data.Organizer,
		"Asunto: " + data.Subject,
		"Fecha: " + data.DateLabel,
		"Hora: " + data.TimeLabel,
	}
	if data.AgendaURL != "" {
		lines = append(lines, "", "Enlace a la agenda: "+data.AgendaURL)
	}
	return strings.Join(lines, "\r\n")
}

func dateLabel(date string) string {
	t, err := time.Parse(schedule.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02 Jan 2006")
}
