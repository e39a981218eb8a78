package model

import "time"

const (
	OrderPending   = "pending"
	OrderReady     = "ready"
	OrderDelivered = "delivered"
	OrderVoided    = "voided"
)

const (
	KindDineIn   = "dine_in"
	KindPickup   = "pickup"
	KindDelivery = "delivery"
	KindStaff    = "staff"
)

type Order struct {
	DTO
	PublicCode  string      `gorm:"size:20;uniqueIndex" json:"publicCode"` // ORD-XXXXXXXX
	DailyNumber int         `gorm:"not null" json:"dailyNumber"`
	Customer    string      `gorm:"size:120;not null" json:"customer"`
	Kind        string      `gorm:"size:20;not null" json:"kind"`
	Address     string      `gorm:"size:255" json:"address,omitempty"`
	Phone       string      `gorm:"size:20" json:"phone,omitempty"`
	ScheduledAt *time.Time  `json:"scheduledAt,omitempty"`
	Notes       string      `gorm:"size:500" json:"notes,omitempty"`
	Total       float64     `gorm:"not null" json:"total"`
	Status      string      `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem is a snapshot of a dish at submission time, not a live reference.
type OrderItem struct {
	DTO
	OrderID uint    `gorm:"index;not null" json:"orderId"`
	DishID  uint    `gorm:"not null" json:"dishId"`
	Name    string  `gorm:"size:120;not null" json:"name"`
	Price   float64 `gorm:"not null" json:"price"`
	Qty     int     `gorm:"not null" json:"qty"`
}

type OrderItemInput struct {
	DishID uint `json:"dishId" validate:"required"`
	Qty    int  `json:"qty" validate:"required,min=1"`
}

type CreateOrderInput struct {
	Customer    string           `json:"customer" validate:"required,min=1,max=120"`
	Kind        string           `json:"kind" validate:"required,oneof=dine_in pickup delivery staff"`
	Address     string           `json:"address" validate:"required_if=Kind delivery,max=255"`
	Phone       string           `json:"phone" validate:"required_if=Kind delivery,omitempty,len=8,numeric"`
	ScheduledAt *string          `json:"scheduledAt" validate:"omitempty,datetime=15:04"`
	Notes       string           `json:"notes" validate:"max=500"`
	Items       []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}
