package helper

import (
	"errors"
	"fmt"
	"sort"

	"github.com/BlckXI/sistema-restaurante/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockLine is one debit or credit against a dish's stock owner.
type StockLine struct {
	DishID uint
	Qty    int
}

// ShortageError rejects an order line that asks for more units than the
// stock owner holds.
type ShortageError struct {
	Name      string
	Remaining int
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: only %d left", e.Name, e.Remaining)
}

type resolvedLine struct {
	dish    model.Dish
	qty     int
	ownerID uint
}

// resolveLines reads each dish and sorts the lines by owner id. Only owner
// rows are ever locked, and always in ascending id order, so concurrent
// transactions cannot take row locks in inverted sequences and deadlock.
func resolveLines(tx *gorm.DB, lines []StockLine) ([]resolvedLine, error) {
	resolved := make([]resolvedLine, 0, len(lines))
	for _, l := range lines {
		var d model.Dish
		if err := tx.First(&d, l.DishID).Error; err != nil {
			return nil, err
		}
		resolved = append(resolved, resolvedLine{dish: d, qty: l.Qty, ownerID: d.StockOwnerID()})
	}
	sort.Slice(resolved, func(i, j int) bool {
		if resolved[i].ownerID != resolved[j].ownerID {
			return resolved[i].ownerID < resolved[j].ownerID
		}
		return resolved[i].dish.ID < resolved[j].dish.ID
	})
	return resolved, nil
}

// lockedOwner re-reads the owner row under FOR UPDATE.
func lockedOwner(tx *gorm.DB, ownerID uint) (*model.Dish, error) {
	var owner model.Dish
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&owner, ownerID).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}

// DebitStock takes every line's quantity from its stock owner, or none at
// all. Lines sharing one owner drain the same counter cumulatively. The
// guarded update keeps the counter from going negative even if the row lock
// were bypassed.
func DebitStock(tx *gorm.DB, lines []StockLine) error {
	resolved, err := resolveLines(tx, lines)
	if err != nil {
		return err
	}
	for _, l := range resolved {
		owner, err := lockedOwner(tx, l.ownerID)
		if err != nil {
			return err
		}
		if owner.Stock < l.qty {
			return &ShortageError{Name: l.dish.Name, Remaining: owner.Stock}
		}
		res := tx.Model(&model.Dish{}).
			Where("id = ? AND stock >= ?", owner.ID, l.qty).
			Update("stock", gorm.Expr("stock - ?", l.qty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &ShortageError{Name: l.dish.Name, Remaining: owner.Stock}
		}
	}
	return nil
}

// CreditStock returns every line's quantity to its stock owner (order void).
// A dish removed from the menu after the sale has no counter left to
// restore and is skipped.
func CreditStock(tx *gorm.DB, lines []StockLine) error {
	kept := make([]StockLine, 0, len(lines))
	for _, l := range lines {
		var d model.Dish
		if err := tx.First(&d, l.DishID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		kept = append(kept, l)
	}

	resolved, err := resolveLines(tx, kept)
	if err != nil {
		return err
	}
	for _, l := range resolved {
		owner, err := lockedOwner(tx, l.ownerID)
		if err != nil {
			return err
		}
		if err := tx.Model(&model.Dish{}).
			Where("id = ?", owner.ID).
			Update("stock", gorm.Expr("stock + ?", l.qty)).Error; err != nil {
			return err
		}
	}
	return nil
}

// ApplyEffectiveStock rewrites each variant's stock to its owner's counter,
// so every reader sees the shared number. Owner rows are untouched.
func ApplyEffectiveStock(dishes []model.Dish) {
	byID := make(map[uint]int, len(dishes))
	for _, d := range dishes {
		if d.ParentID == nil {
			byID[d.ID] = d.Stock
		}
	}
	for i := range dishes {
		if p := dishes[i].ParentID; p != nil {
			if stock, ok := byID[*p]; ok {
				dishes[i].Stock = stock
			}
		}
	}
}
