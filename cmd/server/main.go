package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"salajuntas/internal/api"
	"salajuntas/internal/auth"
	"salajuntas/internal/realtime"
	"salajuntas/internal/repository"
	"salajuntas/internal/service"
)

const defaultRetentionDays = 90

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	reservationRepo := repository.NewReservationRepository(db)
	userRepo := repository.NewUserRepository(db)

	inviteSvc := service.NewInviteService()
	reservationSvc := service.NewReservationService(reservationRepo, inviteSvc)
	authSvc := service.NewAuthService(userRepo)
	jobSvc := service.NewJobService(reservationRepo)

	feed := realtime.NewHub()
	listener, err := realtime.Listen(dbURL, feed)
	if err != nil {
		log.Fatalf("Failed to start change feed listener: %v", err)
	}
	defer listener.Close()

	retentionDays := defaultRetentionDays
	if v := os.Getenv("RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			retentionDays = n
		}
	}
	c := cron.New()
	c.AddFunc("0 3 * * *", func() {
		if err := jobSvc.PurgeOldReservations(retentionDays); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.Start()

	authHandler := api.NewAuthHandler(authSvc)
	scheduleHandler := api.NewScheduleHandler(reservationSvc, feed)
	reservationHandler := api.NewReservationHandler(reservationSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Session-protected endpoints
	app := r.PathPrefix("/api").Subrouter()
	app.Use(auth.SessionMiddleware)
	app.HandleFunc("/schedule/{date}", scheduleHandler.GetDaySchedule).Methods("GET")
	app.HandleFunc("/schedule/{date}/watch", scheduleHandler.WatchDaySchedule).Methods("GET")
	app.HandleFunc("/reservations", reservationHandler.CreateReservation).Methods("POST")
	app.HandleFunc("/reservations/{id}", reservationHandler.GetReservation).Methods("GET")
	app.HandleFunc("/reservations/{id}", reservationHandler.DeleteReservation).Methods("DELETE")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, api.AccessLogHandler(os.Stdout, cors(r))))
}
