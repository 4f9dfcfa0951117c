package helper

import (
	"log"
	"time"

	"event_ticketing/database"
	"event_ticketing/model"

	"github.com/robfig/cron/v3"
)

var transactionScheduler *cron.Cron

func StartTransactionScheduler() {
	transactionScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := transactionScheduler.AddFunc("*/10 * * * *", failStalePendingTransactions)
	if err != nil {
		log.Printf("failed to start transaction scheduler: %v", err)
		return
	}

	transactionScheduler.Start()
	log.Println("transaction scheduler started (every 10 minutes)")
}

// failStalePendingTransactions marks PENDING transactions older than 30
// minutes as FAILED. A purchase either completes synchronously or not at all,
// so anything stuck in PENDING is an aborted attempt.
func failStalePendingTransactions() {
	cutoff := time.Now().Add(-30 * time.Minute)
	result := database.DB.Model(&model.Transaction{}).
		Where("status = ? AND created_at < ?", model.TransactionPending, cutoff).
		Update("status", model.TransactionFailed)

	if result.Error != nil {
		log.Printf("failed to expire pending transactions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("marked %d stale pending transactions as FAILED", result.RowsAffected)
	}
}

func StopTransactionScheduler() {
	if transactionScheduler != nil {
		transactionScheduler.Stop()
	}
}
