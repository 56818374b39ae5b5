package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"salajuntas/internal/db"
	"salajuntas/internal/entities"
	apperrors "salajuntas/internal/errors"
	"salajuntas/internal/schedule"
	"salajuntas/internal/utils"
)

// ReservationStore is the persistence contract the service consumes:
// filtered query, insert, and delete by row id.
type ReservationStore interface {
	ListByDate(ctx context.Context, date string) ([]db.Reservation, error)
	Create(ctx context.Context, res *db.Reservation) error
	GetByID(ctx context.Context, id int) (*db.Reservation, error)
	Delete(ctx context.Context, id int) (int64, error)
}

// Inviter sends invitations for a freshly created reservation.
type Inviter interface {
	SendInvites(res db.Reservation)
}

type ReservationService struct {
	store   ReservationStore
	inviter Inviter
}

// NewReservationService builds the service. inviter may be nil when invite
// email is not configured.
func NewReservationService(store ReservationStore, inviter Inviter) *ReservationService {
	return &ReservationService{store: store, inviter: inviter}
}

// NewDayView binds a live day view to this service's store.
func (s *ReservationService) NewDayView(date string) *schedule.DayView {
	return schedule.NewDayView(s.store, date)
}

// DaySchedule renders the grid for one date. A failed query renders the day
// empty instead of surfacing the error; the failure is only logged.
func (s *ReservationService) DaySchedule(ctx context.Context, date string) entities.DaySchedule {
	reservations, err := s.store.ListByDate(ctx, date)
	if err != nil {
		log.Printf("Error loading reservations for %s: %v", date, err)
		reservations = nil
	}
	day := schedule.Day{Date: date, Reservations: reservations}
	return entities.DaySchedule{Date: date, Rows: day.Rows()}
}

// Create validates a submission, rejects conflicting times against a fresh
// read of the date, and writes the reservation. The creator is recorded from
// the session, and invitations go out to any attendee emails.
func (s *ReservationService) Create(ctx context.Context, req entities.ReservationRequest, sessionEmail string) (*db.Reservation, error) {
	organizer := strings.TrimSpace(req.Organizer)
	subject := strings.TrimSpace(req.Subject)
	if organizer == "" || subject == "" {
		return nil, apperrors.ErrValidation("organizer and subject are required")
	}
	if _, err := time.Parse(schedule.DateLayout, req.Date); err != nil {
		return nil, apperrors.ErrValidation("date must be YYYY-MM-DD")
	}
	if req.StartHour < schedule.HourStart || req.StartHour > schedule.HourEnd {
		return nil, apperrors.ErrValidation(fmt.Sprintf("start hour must be between %02d and %02d", schedule.HourStart, schedule.HourEnd))
	}
	if req.EndHour != 0 && (req.EndHour < req.StartHour || req.EndHour > schedule.HourEnd) {
		return nil, apperrors.ErrValidation(fmt.Sprintf("end hour must be between the start hour and %02d", schedule.HourEnd))
	}

	start, end := schedule.CandidateInterval(req.StartHour, req.EndHour)

	// Fresh same-date read: conflicts are rejected at insert time, not only
	// against whatever the submitter's grid last showed.
	existing, err := s.store.ListByDate(ctx, req.Date)
	if err != nil {
		return nil, fmt.Errorf("error checking schedule for %s: %w", req.Date, err)
	}
	day := schedule.Day{Date: req.Date, Reservations: existing}
	if conflicts := day.Conflicts(start, end); len(conflicts) > 0 {
		return nil, apperrors.ErrConflict(conflictMessage(req.StartHour, req.EndHour))
	}

	res := &db.Reservation{
		Date:      req.Date,
		Start:     schedule.HourLabel(req.StartHour),
		Organizer: organizer,
		Subject:   subject,
		Attendees: strings.TrimSpace(req.Attendees),
		CreatedBy: sessionEmail,
	}
	if req.EndHour > req.StartHour {
		res.End = sql.NullString{String: schedule.HourLabel(req.EndHour), Valid: true}
	}

	if err := s.store.Create(ctx, res); err != nil {
		log.Printf("Error creating reservation in repository: %v", err)
		return nil, err
	}

	if s.inviter != nil {
		s.inviter.SendInvites(*res)
	}
	return res, nil
}

func conflictMessage(startHour, endHour int) string {
	rangeLabel := "from " + schedule.HourLabel(startHour)
	if endHour > startHour {
		rangeLabel += " to " + schedule.HourLabel(endHour)
	}
	return fmt.Sprintf("there is already a reservation overlapping that time (%s)", rangeLabel)
}

// Detail returns the detail-dialog view of one reservation, with the delete
// affordance computed against the session email and a ready invite link when
// the attendee text contains addresses.
func (s *ReservationService) Detail(ctx context.Context, id int, sessionEmail string) (*entities.ReservationDetail, error) {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, apperrors.ErrNotFound("reservation not found")
	}

	detail := &entities.ReservationDetail{
		ID:        res.ID,
		Date:      res.Date,
		Time:      schedule.RangeLabel(*res),
		Organizer: res.Organizer,
		Subject:   res.Subject,
		Attendees: res.Attendees,
		CreatedBy: res.CreatedBy,
		CanDelete: res.CreatedBy == sessionEmail,
	}
	if emails := utils.ParseAttendeeEmails(res.Attendees); len(emails) > 0 {
		detail.MailtoURL = utils.BuildMailtoLink(emails, InviteSubject(*res), InviteBody(*res, ""))
	}
	return detail, nil
}

// Delete removes a reservation. Only its creator may do so.
func (s *ReservationService) Delete(ctx context.Context, id int, requesterEmail string) error {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if res == nil {
		return apperrors.ErrNotFound("reservation not found")
	}
	if res.CreatedBy != requesterEmail {
		return apperrors.ErrForbidden("only the creator can cancel this reservation")
	}
	if _, err := s.store.Delete(ctx, id); err != nil {
		log.Printf("Error deleting reservation %d: %v", id, err)
		return err
	}
	return nil
}
