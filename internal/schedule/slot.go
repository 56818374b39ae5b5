package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"salajuntas/internal/db"
)

// Operating window of the room. The grid shows one row per hour from
// HourStart to HourEnd inclusive.
const (
	HourStart = 8
	HourEnd   = 18
)

const DateLayout = "2006-01-02"

// HourLabel formats an hour as the stored "HH:00" label.
func HourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// ParseHour extracts the leading hour from a "HH:00" label.
func ParseHour(label string) (int, bool) {
	i := 0
	for i < len(label) && i < 2 && label[i] >= '0' && label[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	h, err := strconv.Atoi(label[:i])
	if err != nil {
		return 0, false
	}
	return h, true
}

// Overlap reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) share at least one hour. Touching endpoints do not overlap.
func Overlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// CandidateInterval derives the half-open interval of a submission. Only a
// strictly later end hour counts as a range; anything else collapses to a
// single hour.
func CandidateInterval(startHour, endHour int) (int, int) {
	if endHour > startHour {
		return startHour, endHour + 1
	}
	return startHour, startHour + 1
}

// Interval derives the half-open interval of a stored reservation. The
// stored end label is inclusive, so a valid end extends the interval to
// end+1; a missing or unparseable end means one hour.
func Interval(r db.Reservation) (int, int, bool) {
	start, ok := ParseHour(r.Start)
	if !ok {
		return 0, 0, false
	}
	if r.End.Valid {
		if end, ok := ParseHour(r.End.String); ok {
			return start, end + 1, true
		}
	}
	return start, start + 1, true
}

// RangeLabel renders the displayed time of a reservation: "09:00 - 11:00"
// for ranges, the bare start label otherwise.
func RangeLabel(r db.Reservation) string {
	if r.End.Valid && strings.TrimSpace(r.End.String) != "" && r.End.String != r.Start {
		return r.Start + " - " + r.End.String
	}
	return r.Start
}

// Day holds the reservations loaded for a single date, ordered by start
// time as the store returns them.
type Day struct {
	Date         string
	Reservations []db.Reservation
}

// StartingAt returns the reservation whose start hour equals the given hour,
// matched on the zero-padded two-digit prefix of the start label. With the
// no-overlap invariant enforced at insert there is at most one.
func (d Day) StartingAt(hour int) *db.Reservation {
	prefix := HourLabel(hour)[:2]
	for i := range d.Reservations {
		s := d.Reservations[i].Start
		if len(s) >= 2 && s[:2] == prefix {
			return &d.Reservations[i]
		}
	}
	return nil
}

// Conflicts returns every same-date reservation whose interval overlaps the
// half-open candidate interval [start,end).
func (d Day) Conflicts(start, end int) []db.Reservation {
	var out []db.Reservation
	for _, r := range d.Reservations {
		if r.Date != d.Date {
			continue
		}
		rStart, rEnd, ok := Interval(r)
		if !ok {
			continue
		}
		if Overlap(start, end, rStart, rEnd) {
			out = append(out, r)
		}
	}
	return out
}

// Row is one rendered line of the day grid.
type Row struct {
	Hour          int    `json:"hour"`
	Time          string `json:"time"`
	Occupied      bool   `json:"occupied"`
	ReservationID int    `json:"reservation_id,omitempty"`
	Organizer     string `json:"organizer,omitempty"`
	Subject       string `json:"subject,omitempty"`
	Attendees     string `json:"attendees,omitempty"`
}

// Rows renders the full operating window, one row per hour. Hours with no
// reservation starting on them come back unoccupied with the bare hour label.
func (d Day) Rows() []Row {
	rows := make([]Row, 0, HourEnd-HourStart+1)
	for h := HourStart; h <= HourEnd; h++ {
		row := Row{Hour: h, Time: HourLabel(h)}
		if r := d.StartingAt(h); r != nil {
			row.Occupied = true
			row.Time = RangeLabel(*r)
			row.ReservationID = r.ID
			row.Organizer = r.Organizer
			row.Subject = r.Subject
			row.Attendees = r.Attendees
		}
		rows = append(rows, row)
	}
	return rows
}
