package handler

import (
	"github.com/BlckXI/sistema-restaurante/helper"
	"gorm.io/gorm"
)

// Handler carries the datastore client and collaborators every route needs.
// Built once in main and passed to the router.
type Handler struct {
	DB   *gorm.DB
	Hub  *Hub
	Rule helper.DayRule
}

func New(db *gorm.DB, hub *Hub, rule helper.DayRule) *Handler {
	return &Handler{DB: db, Hub: hub, Rule: rule}
}
