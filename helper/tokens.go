package helper

import (
	"log"
	"time"

	"event_ticketing/database"
	"event_ticketing/model"

	"github.com/go-co-op/gocron/v2"
)

var tokenScheduler gocron.Scheduler

func PurgeExpiredResetTokens() {
	result := database.DB.
		Where("expires_at < ?", time.Now()).
		Delete(&model.PasswordResetToken{})

	if result.Error != nil {
		log.Printf("failed to purge expired reset tokens: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("purged %d expired password reset tokens", result.RowsAffected)
	}
}

func StartTokenCleanupScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	tokenScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(3, 0, 0),
			),
		),
		gocron.NewTask(PurgeExpiredResetTokens),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("token cleanup scheduler started (daily 03:00)")
}

func StopTokenCleanupScheduler() {
	if tokenScheduler != nil {
		_ = tokenScheduler.Shutdown()
	}
}
