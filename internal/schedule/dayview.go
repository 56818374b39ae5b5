package schedule

import (
	"context"
	"log"
	"sync"
	"time"

	"salajuntas/internal/db"
)

// Store is the slice of the persistence layer a day view needs.
type Store interface {
	ListByDate(ctx context.Context, date string) ([]db.Reservation, error)
}

// DayView owns the state of one displayed day: the viewed date and the
// reservations loaded for it. Every date change bumps a generation counter
// so that a load still in flight for the old date is discarded instead of
// overwriting newer state.
type DayView struct {
	mu    sync.Mutex
	store Store
	date  string
	day   Day
	gen   uint64
}

func NewDayView(store Store, date string) *DayView {
	return &DayView{store: store, date: date, day: Day{Date: date}}
}

func (v *DayView) Date() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.date
}

// SetDate switches the viewed date, dropping the previous date's set
// immediately.
func (v *DayView) SetDate(date string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setDateLocked(date)
}

func (v *DayView) setDateLocked(date string) {
	v.date = date
	v.gen++
	v.day = Day{Date: date}
}

// Prev moves the view one day back.
func (v *DayView) Prev() { v.shift(-1) }

// Next moves the view one day forward.
func (v *DayView) Next() { v.shift(1) }

func (v *DayView) shift(days int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	t, err := time.Parse(DateLayout, v.date)
	if err != nil {
		log.Printf("Invalid view date %q: %v", v.date, err)
		return
	}
	v.setDateLocked(t.AddDate(0, 0, days).Format(DateLayout))
}

// Load fetches the viewed date's reservations and replaces the backing set.
// A query failure leaves the day empty rather than surfacing the error; the
// grid renders blank and the next change-feed signal or navigation retries.
// Responses for a date that is no longer viewed are discarded.
func (v *DayView) Load(ctx context.Context) {
	v.mu.Lock()
	gen, date := v.gen, v.date
	v.mu.Unlock()

	reservations, err := v.store.ListByDate(ctx, date)
	if err != nil {
		log.Printf("Error loading reservations for %s: %v", date, err)
		reservations = nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen != gen {
		return // stale response, a newer date took over
	}
	v.day = Day{Date: date, Reservations: reservations}
}

// Rows renders the currently loaded day.
func (v *DayView) Rows() []Row {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.day.Rows()
}

// Conflicts checks a candidate half-open interval against the loaded set.
func (v *DayView) Conflicts(start, end int) []db.Reservation {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.day.Conflicts(start, end)
}
