package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"salajuntas/internal/repository"
	"salajuntas/internal/schedule"
)

type JobService struct {
	Repo *repository.ReservationRepository
}

func NewJobService(repo *repository.ReservationRepository) *JobService {
	return &JobService{Repo: repo}
}

// PurgeOldReservations deletes reservations for dates older than the
// retention window. The grid never navigates that far back, and rows for
// past days only grow the table.
func (s *JobService) PurgeOldReservations(retentionDays int) error {
	cutoff := time.Now().AddDate(0, 0, -retentionDays).Format(schedule.DateLayout)
	log.Printf("Cron Job: Purging reservations for dates before %s...", cutoff)

	deleted, err := s.Repo.DeleteDatesBefore(context.Background(), cutoff)
	if err != nil {
		return fmt.Errorf("cron job: failed to purge old reservations: %w", err)
	}

	if deleted == 0 {
		log.Println("Cron Job: No old reservations to purge.")
		return nil
	}
	log.Printf("Cron Job: Purged %d reservations older than %s.", deleted, cutoff)
	return nil
}
