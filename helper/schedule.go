package helper

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

var closeScheduler gocron.Scheduler

// StartAutoCloseScheduler closes the finished business day right after the
// boundary hour rolls over. Opt-in; a manual close later the same day simply
// overwrites the stored amount.
func StartAutoCloseScheduler(db *gorm.DB, rule DayRule) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(rule.Location()),
	)
	if err != nil {
		log.Printf("auto-close scheduler init failed: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(uint(rule.startHour), 5, 0),
			),
		),
		gocron.NewTask(func() {
			// The day that just ended, not the one that just began.
			ended := rule.DateOf(time.Now().Add(-time.Hour))
			rep, err := CloseDay(db, rule, ended)
			if err != nil {
				log.Printf("auto-close for %s failed: %v", ended.Format("2006-01-02"), err)
				return
			}
			log.Printf("auto-closed %s at %.2f", rep.Date, rep.CashOnHand)
		}),
	)
	if err != nil {
		log.Printf("auto-close job registration failed: %v", err)
		return
	}

	s.Start()
	closeScheduler = s
	log.Println("auto-close scheduler started")
}

func StopAutoCloseScheduler() {
	if closeScheduler != nil {
		closeScheduler.Shutdown()
	}
}
