package models

import (
	"time"

	"github.com/budgetwise/backend/internal/types"
	"gorm.io/gorm"
)

// Window is a half-open time range [From, To). A zero bound
// does not restrict the range in that direction.
type Window struct {
	From time.Time
	To   time.Time
}

// AllTime is the unrestricted Window.
var AllTime = Window{}

// MonthWindow returns the Window covering the whole month.
func MonthWindow(m types.Month) Window {
	return Window{
		From: m.Start(),
		To:   m.End(),
	}
}

// DateWindow returns the Window for an inclusive range of calendar dates.
// Either bound may be nil.
func DateWindow(from, to *types.Date) Window {
	var w Window
	if from != nil && !from.IsZero() {
		w.From = from.Time()
	}

	if to != nil && !to.IsZero() {
		w.To = to.AddDays(1).Time()
	}

	return w
}

// Empty reports whether no instant can be inside the window.
func (w Window) Empty() bool {
	return !w.From.IsZero() && !w.To.IsZero() && !w.From.Before(w.To)
}

// Scope restricts the column to the window.
func (w Window) Scope(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !w.From.IsZero() {
			db = db.Where(column+" >= ?", w.From)
		}

		if !w.To.IsZero() {
			db = db.Where(column+" < ?", w.To)
		}

		return db
	}
}
