package model

import "time"

const dateFormat = "2006-01-02"

// Period is an inclusive date range. A zero From means "since inception".
type Period struct {
	From time.Time
	To   time.Time
}

// AsOf returns the period covering everything up to and including date.
func AsOf(date time.Time) Period {
	return Period{To: date}
}

// Contains reports whether t falls inside the period (dates compared by day).
func (p Period) Contains(t time.Time) bool {
	d := truncate(t)
	if !p.From.IsZero() && d.Before(truncate(p.From)) {
		return false
	}
	return !d.After(truncate(p.To))
}

// Cumulative reports whether the period starts at inception.
func (p Period) Cumulative() bool {
	return p.From.IsZero()
}

// Days returns the number of calendar days in a bounded period.
func (p Period) Days() int {
	if p.Cumulative() {
		return 0
	}
	return int(truncate(p.To).Sub(truncate(p.From)).Hours()/24) + 1
}

// Prior returns the equally long window that ends the day before p.From.
// For a cumulative period it returns the balances as of one year before p.To.
func (p Period) Prior() Period {
	if p.Cumulative() {
		return AsOf(truncate(p.To).AddDate(-1, 0, 0))
	}
	end := truncate(p.From).AddDate(0, 0, -1)
	return Period{From: end.AddDate(0, 0, 1-p.Days()), To: end}
}

// Opening returns the cumulative period ending the day before p.From.
func (p Period) Opening() Period {
	return AsOf(truncate(p.From).AddDate(0, 0, -1))
}

// String renders the period as "YYYY-MM-DD..YYYY-MM-DD" (or "..YYYY-MM-DD").
func (p Period) String() string {
	if p.Cumulative() {
		return ".." + p.To.Format(dateFormat)
	}
	return p.From.Format(dateFormat) + ".." + p.To.Format(dateFormat)
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
