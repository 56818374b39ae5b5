package api

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salajuntas/internal/db"
	"salajuntas/internal/entities"
	"salajuntas/internal/realtime"
	"salajuntas/internal/service"
)

// watchStore serves the stream test; the handler goroutine reads while the
// test mutates, so access is locked.
type watchStore struct {
	mu   sync.Mutex
	rows map[string][]db.Reservation
}

func (s *watchStore) ListByDate(ctx context.Context, date string) ([]db.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]db.Reservation(nil), s.rows[date]...), nil
}

func (s *watchStore) add(res db.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[res.Date] = append(s.rows[res.Date], res)
}

func (s *watchStore) Create(ctx context.Context, res *db.Reservation) error { return nil }
func (s *watchStore) GetByID(ctx context.Context, id int) (*db.Reservation, error) {
	return nil, nil
}
func (s *watchStore) Delete(ctx context.Context, id int) (int64, error) { return 0, nil }

func readFrame(t *testing.T, r *bufio.Reader) entities.DaySchedule {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var day entities.DaySchedule
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &day))
		return day
	}
}

func TestWatchDaySchedulePushesOnChangeFeedSignal(t *testing.T) {
	store := &watchStore{rows: map[string][]db.Reservation{
		"2025-03-10": {{ID: 1, Date: "2025-03-10", Start: "09:00", Organizer: "ana@example.com", Subject: "Sprint review"}},
	}}
	svc := service.NewReservationService(store, nil)
	feed := realtime.NewHub()
	handler := NewScheduleHandler(svc, feed)

	router := mux.NewRouter()
	router.HandleFunc("/api/schedule/{date}/watch", handler.WatchDaySchedule)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/schedule/2025-03-10/watch")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	// One frame on connect with the current grid.
	day := readFrame(t, reader)
	assert.Equal(t, "2025-03-10", day.Date)
	require.Len(t, day.Rows, 11)
	assert.True(t, day.Rows[1].Occupied)
	assert.Equal(t, "ana@example.com", day.Rows[1].Organizer)
	assert.False(t, day.Rows[6].Occupied)

	// A change feed signal reloads the date and pushes the fresh grid.
	store.add(db.Reservation{
		ID: 2, Date: "2025-03-10", Start: "14:00",
		End:       sql.NullString{String: "15:00", Valid: true},
		Organizer: "luis@example.com", Subject: "Planning",
	})
	feed.Broadcast()

	day = readFrame(t, reader)
	assert.True(t, day.Rows[1].Occupied)
	require.True(t, day.Rows[6].Occupied)
	assert.Equal(t, "14:00 - 15:00", day.Rows[6].Time)
	assert.Equal(t, "luis@example.com", day.Rows[6].Organizer)
}

func TestWatchDayScheduleRejectsBadDate(t *testing.T) {
	handler := NewScheduleHandler(service.NewReservationService(&watchStore{}, nil), realtime.NewHub())

	router := mux.NewRouter()
	router.HandleFunc("/api/schedule/{date}/watch", handler.WatchDaySchedule)

	req := httptest.NewRequest("GET", "/api/schedule/10-03-2025/watch", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
