package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salajuntas/internal/db"
	"salajuntas/internal/entities"
	apperrors "salajuntas/internal/errors"
)

type fakeStore struct {
	rows      map[string][]db.Reservation
	byID      map[int]db.Reservation
	listErr   error
	createErr error
	deleteErr error

	listCalls int
	created   []db.Reservation
	deleted   []int
}

func (f *fakeStore) ListByDate(ctx context.Context, date string) ([]db.Reservation, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows[date], nil
}

func (f *fakeStore) Create(ctx context.Context, res *db.Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	res.ID = 100 + len(f.created)
	res.CreatedAt = time.Now().UTC()
	f.created = append(f.created, *res)
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int) (*db.Reservation, error) {
	if r, ok := f.byID[id]; ok {
		res := r
		return &res, nil
	}
	return nil, nil
}

func (f *fakeStore) Delete(ctx context.Context, id int) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return 1, nil
}

type fakeInviter struct {
	sent []db.Reservation
}

func (f *fakeInviter) SendInvites(res db.Reservation) {
	f.sent = append(f.sent, res)
}

func withEnd(r db.Reservation, end string) db.Reservation {
	r.End = sql.NullString{String: end, Valid: true}
	return r
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Code
}

func validRequest() entities.ReservationRequest {
	return entities.ReservationRequest{
		Date:      "2025-03-10",
		StartHour: 9,
		Organizer: "ana@example.com",
		Subject:   "Sprint review",
	}
}

func TestCreateValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*entities.ReservationRequest)
	}{
		{"missing organizer", func(r *entities.ReservationRequest) { r.Organizer = "  " }},
		{"missing subject", func(r *entities.ReservationRequest) { r.Subject = "" }},
		{"bad date", func(r *entities.ReservationRequest) { r.Date = "10/03/2025" }},
		{"start before window", func(r *entities.ReservationRequest) { r.StartHour = 7 }},
		{"start after window", func(r *entities.ReservationRequest) { r.StartHour = 19 }},
		{"end before start", func(r *entities.ReservationRequest) { r.StartHour = 10; r.EndHour = 9 }},
		{"end after window", func(r *entities.ReservationRequest) { r.EndHour = 19 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := NewReservationService(store, nil)
			req := validRequest()
			tc.mutate(&req)

			_, err := svc.Create(context.Background(), req, "ana@example.com")

			assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
			assert.Zero(t, store.listCalls, "validation failures must not hit the store")
			assert.Empty(t, store.created)
		})
	}
}

func TestCreateConflict(t *testing.T) {
	store := &fakeStore{rows: map[string][]db.Reservation{
		"2025-03-10": {
			{ID: 1, Date: "2025-03-10", Start: "09:00"},
			withEnd(db.Reservation{ID: 2, Date: "2025-03-10", Start: "14:00"}, "15:00"),
		},
	}}
	svc := NewReservationService(store, nil)

	req := validRequest()
	req.StartHour = 13
	req.EndHour = 14 // candidate [13,15) overlaps the 14:00-15:00 booking

	_, err := svc.Create(context.Background(), req, "ana@example.com")
	assert.Equal(t, http.StatusConflict, httpCode(t, err))
	assert.Contains(t, err.Error(), "13:00")
	assert.Contains(t, err.Error(), "14:00")
	assert.Empty(t, store.created, "conflicting submissions must not be written")
}

func TestCreateGapBetweenReservations(t *testing.T) {
	store := &fakeStore{rows: map[string][]db.Reservation{
		"2025-03-10": {
			{ID: 1, Date: "2025-03-10", Start: "09:00"},
			withEnd(db.Reservation{ID: 2, Date: "2025-03-10", Start: "14:00"}, "15:00"),
		},
	}}
	svc := NewReservationService(store, nil)

	req := validRequest()
	req.StartHour = 13
	req.EndHour = 13 // collapses to [13,14), fits the gap

	res, err := svc.Create(context.Background(), req, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "13:00", res.Start)
	assert.False(t, res.End.Valid, "single-hour reservations store no end label")
}

func TestCreateRange(t *testing.T) {
	store := &fakeStore{}
	inviter := &fakeInviter{}
	svc := NewReservationService(store, inviter)

	req := validRequest()
	req.EndHour = 11
	req.Attendees = "luis@example.com, marta@example.com"

	res, err := svc.Create(context.Background(), req, "session@example.com")
	require.NoError(t, err)
	assert.Equal(t, "09:00", res.Start)
	require.True(t, res.End.Valid)
	assert.Equal(t, "11:00", res.End.String)
	assert.Equal(t, "session@example.com", res.CreatedBy)
	require.Len(t, store.created, 1)
	require.Len(t, inviter.sent, 1)
	assert.Equal(t, res.ID, inviter.sent[0].ID)
}

func TestCreateStoreError(t *testing.T) {
	store := &fakeStore{createErr: errors.New("duplicate key")}
	svc := NewReservationService(store, nil)

	_, err := svc.Create(context.Background(), validRequest(), "ana@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestDayScheduleFailsOpen(t *testing.T) {
	store := &fakeStore{listErr: errors.New("connection refused")}
	svc := NewReservationService(store, nil)

	day := svc.DaySchedule(context.Background(), "2025-03-10")
	require.Len(t, day.Rows, 11)
	for _, row := range day.Rows {
		assert.False(t, row.Occupied)
	}
}

func TestDetail(t *testing.T) {
	store := &fakeStore{byID: map[int]db.Reservation{
		5: withEnd(db.Reservation{
			ID: 5, Date: "2025-03-10", Start: "09:00",
			Organizer: "ana@example.com", Subject: "Sprint review",
			Attendees: "luis@example.com equipo de ventas",
			CreatedBy: "ana@example.com",
		}, "11:00"),
	}}
	svc := NewReservationService(store, nil)

	detail, err := svc.Detail(context.Background(), 5, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "09:00 - 11:00", detail.Time)
	assert.True(t, detail.CanDelete)
	assert.Contains(t, detail.MailtoURL, "mailto:")
	assert.Contains(t, detail.MailtoURL, "luis%40example.com")

	detail, err = svc.Detail(context.Background(), 5, "otro@example.com")
	require.NoError(t, err)
	assert.False(t, detail.CanDelete)

	_, err = svc.Detail(context.Background(), 99, "ana@example.com")
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestDeleteOwnerGate(t *testing.T) {
	store := &fakeStore{byID: map[int]db.Reservation{
		5: {ID: 5, Date: "2025-03-10", Start: "09:00", CreatedBy: "ana@example.com"},
	}}
	svc := NewReservationService(store, nil)

	err := svc.Delete(context.Background(), 5, "otro@example.com")
	assert.Equal(t, http.StatusForbidden, httpCode(t, err))
	assert.Empty(t, store.deleted)

	require.NoError(t, svc.Delete(context.Background(), 5, "ana@example.com"))
	assert.Equal(t, []int{5}, store.deleted)

	err = svc.Delete(context.Background(), 99, "ana@example.com")
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestDeleteStoreErrorSurfaces(t *testing.T) {
	store := &fakeStore{
		byID:      map[int]db.Reservation{5: {ID: 5, CreatedBy: "ana@example.com"}},
		deleteErr: errors.New("deadlock detected"),
	}
	svc := NewReservationService(store, nil)

	err := svc.Delete(context.Background(), 5, "ana@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadlock")
}
