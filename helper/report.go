package helper

import (
	"errors"
	"time"

	"github.com/BlckXI/sistema-restaurante/model"
	"github.com/BlckXI/sistema-restaurante/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FetchDailyReport loads one business day's rows and reconciles them.
// The opening balance is the most recent close strictly before the date;
// a first-ever day opens at zero.
func FetchDailyReport(db *gorm.DB, rule DayRule, date time.Time) (*DailyReport, error) {
	dayStart, dayEnd := rule.Window(date)

	opening := 0.0
	var lastClose model.DailyClose
	err := db.Where("date < ?", date.Format("2006-01-02")).
		Order("date DESC").First(&lastClose).Error
	if err == nil {
		opening = lastClose.FinalAmount
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var orders []model.Order
	if err := db.Preload("Items").
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}

	var expenses []model.Expense
	if err := db.Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Order("id DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}

	var incomes []model.ExtraIncome
	if err := db.Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Order("id DESC").Find(&incomes).Error; err != nil {
		return nil, err
	}

	return BuildDailyReport(date.Format("2006-01-02"), opening, orders, expenses, incomes), nil
}

// CloseDay recomputes the day's reconciliation and upserts the close row.
// The stored amount is always recomputed server-side, never taken from a
// client; re-closing after late corrections overwrites the previous value.
func CloseDay(db *gorm.DB, rule DayRule, date time.Time) (*DailyReport, error) {
	rep, err := FetchDailyReport(db, rule, date)
	if err != nil {
		return nil, err
	}

	row := model.DailyClose{
		Date:        utils.NewCustomDate(date),
		FinalAmount: rep.CashOnHand,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"final_amount", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return rep, nil
}
