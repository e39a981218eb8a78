package helper

import (
	"fmt"
	"sort"
	"time"

	"github.com/BlckXI/sistema-restaurante/model"
)

// DayRule defines the business day: a fixed UTC offset plus the hour the
// register day rolls over. The window is always 24h wide, so a day that
// starts at 04:00 runs until 04:00 of the next calendar date.
type DayRule struct {
	loc       *time.Location
	startHour int
}

func NewDayRule(offsetHours, startHour int) DayRule {
	name := fmt.Sprintf("UTC%+03d", offsetHours)
	return DayRule{
		loc:       time.FixedZone(name, offsetHours*3600),
		startHour: startHour,
	}
}

func (r DayRule) Location() *time.Location {
	return r.loc
}

// DateOf maps an instant to the business date it belongs to.
func (r DayRule) DateOf(t time.Time) time.Time {
	lt := t.In(r.loc).Add(-time.Duration(r.startHour) * time.Hour)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, r.loc)
}

// Window resolves [start, end) for a business date.
func (r DayRule) Window(date time.Time) (time.Time, time.Time) {
	d := date.In(r.loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), r.startHour, 0, 0, 0, r.loc)
	return start, start.Add(24 * time.Hour)
}

func (r DayRule) Today() time.Time {
	return r.DateOf(time.Now())
}

type DishCount struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

type KindSummary struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type DailyReport struct {
	Date             string                 `json:"date"`
	OpeningBalance   float64                `json:"openingBalance"`
	SalesTotal       float64                `json:"salesTotal"`
	ExtraIncomeTotal float64                `json:"extraIncomeTotal"`
	ExpenseTotal     float64                `json:"expenseTotal"`
	VoidedTotal      float64                `json:"voidedTotal"`
	CashOnHand       float64                `json:"cashOnHand"`
	OrderCount       int                    `json:"orderCount"`
	Ranking          []DishCount            `json:"ranking"`
	ByKind           map[string]KindSummary `json:"byKind"`
	Orders           []model.Order          `json:"orders"`
	Expenses         []model.Expense        `json:"expenses"`
	ExtraIncomes     []model.ExtraIncome    `json:"extraIncomes"`
}

// BuildDailyReport reconciles one business day from its raw rows.
// Voided orders count only toward VoidedTotal; everything else accumulates
// from active orders. cashOnHand = opening + sales + extra income - expenses.
// Pure over its inputs, so calling it twice with the same rows returns the
// same snapshot.
func BuildDailyReport(date string, opening float64, orders []model.Order, expenses []model.Expense, incomes []model.ExtraIncome) *DailyReport {
	rep := &DailyReport{
		Date:           date,
		OpeningBalance: opening,
		ByKind:         make(map[string]KindSummary),
		Orders:         orders,
		Expenses:       expenses,
		ExtraIncomes:   incomes,
	}

	dishQty := make(map[string]int)
	for _, o := range orders {
		if o.Status == model.OrderVoided {
			rep.VoidedTotal += o.Total
			continue
		}
		rep.SalesTotal += o.Total
		rep.OrderCount++
		ks := rep.ByKind[o.Kind]
		ks.Count++
		ks.Total += o.Total
		rep.ByKind[o.Kind] = ks
		for _, it := range o.Items {
			dishQty[it.Name] += it.Qty
		}
	}

	for _, e := range expenses {
		rep.ExpenseTotal += e.Amount
	}
	for _, i := range incomes {
		rep.ExtraIncomeTotal += i.Amount
	}

	rep.CashOnHand = rep.OpeningBalance + rep.SalesTotal + rep.ExtraIncomeTotal - rep.ExpenseTotal

	rep.Ranking = make([]DishCount, 0, len(dishQty))
	for name, qty := range dishQty {
		rep.Ranking = append(rep.Ranking, DishCount{Name: name, Qty: qty})
	}
	// Qty desc, name asc so the ranking is stable between calls.
	sort.Slice(rep.Ranking, func(i, j int) bool {
		if rep.Ranking[i].Qty != rep.Ranking[j].Qty {
			return rep.Ranking[i].Qty > rep.Ranking[j].Qty
		}
		return rep.Ranking[i].Name < rep.Ranking[j].Name
	})

	return rep
}
