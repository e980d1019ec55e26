package helper

import (
	"log"
	"time"

	"movie_booking/model"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

var cleanupScheduler gocron.Scheduler

// StartShowCleanupScheduler removes shows whose date has passed, once a day.
// Seats go first in the same transaction so a show is never left without its
// inventory. Bookings are kept; the booking read path hides ones whose show
// is gone.
func StartShowCleanupScheduler(db *gorm.DB) {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("cleanup scheduler init failed: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(3, 0, 0),
			),
		),
		gocron.NewTask(CleanupPastShows, db),
	)
	if err != nil {
		log.Printf("cleanup job registration failed: %v", err)
		return
	}

	s.Start()
	cleanupScheduler = s
	log.Println("Show cleanup scheduler started (daily at 03:00)")
}

func StopShowCleanupScheduler() {
	if cleanupScheduler != nil {
		_ = cleanupScheduler.Shutdown()
	}
}

func CleanupPastShows(db *gorm.DB) {
	today := time.Now().Format("2006-01-02")

	var shows []model.Show
	if err := db.Where("date < ?", today).Find(&shows).Error; err != nil {
		log.Printf("cleanup: listing past shows failed: %v", err)
		return
	}
	if len(shows) == 0 {
		return
	}

	ids := make([]uint, 0, len(shows))
	for _, s := range shows {
		ids = append(ids, s.ID)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("show_id IN ?", ids).Delete(&model.Seat{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.Show{}).Error
	})
	if err != nil {
		log.Printf("cleanup: deleting past shows failed: %v", err)
		return
	}

	log.Printf("cleanup: removed %d past shows", len(shows))
}
