package model

import "github.com/BlckXI/sistema-restaurante/utils"

type Expense struct {
	DTO
	Description string  `gorm:"size:255;not null" json:"description"`
	Amount      float64 `gorm:"not null" json:"amount"`
}

type ExtraIncome struct {
	DTO
	Description string  `gorm:"size:255;not null" json:"description"`
	Amount      float64 `gorm:"not null" json:"amount"`
}

// DailyClose stores the reconciled cash for a business date. Re-closing a
// date overwrites the previous amount.
type DailyClose struct {
	DTO
	Date        utils.CustomDate `gorm:"type:date;uniqueIndex;not null" json:"date"`
	FinalAmount float64          `gorm:"not null" json:"finalAmount"`
}

type CreateEntryInput struct {
	Description string  `json:"description" validate:"required,min=1,max=255"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}
