package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"salajuntas/internal/entities"
	"salajuntas/internal/realtime"
	"salajuntas/internal/schedule"
	"salajuntas/internal/service"
)

type ScheduleHandler struct {
	Service *service.ReservationService
	Feed    *realtime.Hub
}

func NewScheduleHandler(svc *service.ReservationService, feed *realtime.Hub) *ScheduleHandler {
	return &ScheduleHandler{Service: svc, Feed: feed}
}

func (h *ScheduleHandler) GetDaySchedule(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if _, err := time.Parse(schedule.DateLayout, date); err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Service.DaySchedule(r.Context(), date))
}

// WatchDaySchedule streams the rendered grid over SSE: once on connect and
// again after every change-feed signal, for as long as the client stays.
func (h *ScheduleHandler) WatchDaySchedule(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if _, err := time.Parse(schedule.DateLayout, date); err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	view := h.Service.NewDayView(date)
	sub := h.Feed.Subscribe()
	defer h.Feed.Unsubscribe(sub)

	push := func() {
		view.Load(r.Context())
		payload, err := json.Marshal(entities.DaySchedule{Date: view.Date(), Rows: view.Rows()})
		if err != nil {
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}

	push()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-sub:
			push()
		}
	}
}
