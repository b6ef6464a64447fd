package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ViewMode selects how the ledger view windows the record set.
type ViewMode string

const (
	ViewModeDay    ViewMode = "day"
	ViewModeWeek   ViewMode = "week"
	ViewModeMonth  ViewMode = "month"
	ViewModeYear   ViewMode = "year"
	ViewModeCustom ViewMode = "custom"
)

// Valid reports whether m is a known view mode.
func (m ViewMode) Valid() bool {
	switch m {
	case ViewModeDay, ViewModeWeek, ViewModeMonth, ViewModeYear, ViewModeCustom:
		return true
	}
	return false
}

// RangeFilter selects the analytics cadence. Unlike ViewMode it is always
// anchored to "now" and carries a comparable previous period, except "all"
// which has none.
type RangeFilter string

const (
	RangeFilterWeek    RangeFilter = "week"
	RangeFilterMonth   RangeFilter = "month"
	RangeFilterQuarter RangeFilter = "quarter"
	RangeFilterYear    RangeFilter = "year"
	RangeFilterAll     RangeFilter = "all"
)

// Valid reports whether f is a known range filter.
func (f RangeFilter) Valid() bool {
	switch f {
	case RangeFilterWeek, RangeFilterMonth, RangeFilterQuarter, RangeFilterYear, RangeFilterAll:
		return true
	}
	return false
}

// Window is an inclusive [Start, End] instant pair, normalized so
// Start <= End before it ever reaches a consumer.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Contains reports inclusive interval containment.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// IsZero reports whether the window is the empty null range.
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Summary holds the headline totals for a filtered subset.
type Summary struct {
	TotalIn     decimal.Decimal `json:"totalIn"`
	TotalOut    decimal.Decimal `json:"totalOut"`
	NetFlow     decimal.Decimal `json:"netFlow"`
	SavingsRate decimal.Decimal `json:"savingsRate"`
}

// DirectionStats are the standard statistics over one direction's amounts.
// All fields are zero for an empty subset, never NaN.
type DirectionStats struct {
	Sum   decimal.Decimal `json:"sum"`
	Count int             `json:"count"`
	Mean  decimal.Decimal `json:"mean"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
}

// CategoryStat is one bucket of a category breakdown.
type CategoryStat struct {
	Category   CategoryDescriptor `json:"category"`
	Amount     decimal.Decimal    `json:"amount"`
	Percentage decimal.Decimal    `json:"percentage"`
}

// DayBucket groups one calendar day's transactions for the ledger list view.
type DayBucket struct {
	DateKey      string          `json:"dateKey"`
	Transactions []*Transaction  `json:"transactions"`
	SumIn        decimal.Decimal `json:"sumIn"`
	SumOut       decimal.Decimal `json:"sumOut"`
	IsToday      bool            `json:"isToday"`
}

// SeriesPoint is one day of the cumulative expense series. RunningTotal is
// the prefix sum of DaySum up to and including this point.
type SeriesPoint struct {
	Date         time.Time       `json:"date"`
	DaySum       decimal.Decimal `json:"daySum"`
	RunningTotal decimal.Decimal `json:"runningTotal"`
}

// Comparison holds period-over-period growth. Growth from a zero base is
// reported as 0, never Infinity.
type Comparison struct {
	HasPrevious      bool            `json:"hasPrevious"`
	PrevTotalIn      decimal.Decimal `json:"prevTotalIn"`
	PrevTotalOut     decimal.Decimal `json:"prevTotalOut"`
	IncomeGrowthPct  decimal.Decimal `json:"incomeGrowthPct"`
	ExpenseGrowthPct decimal.Decimal `json:"expenseGrowthPct"`
}

// AnalyticsReport is the full derived-data payload for one range filter.
type AnalyticsReport struct {
	Filter           RangeFilter       `json:"filter"`
	Window           Window            `json:"window"`
	PreviousWindow   Window            `json:"previousWindow"`
	Summary          Summary           `json:"summary"`
	Comparison       Comparison        `json:"comparison"`
	DailyAvgSpend    decimal.Decimal   `json:"dailyAvgSpend"`
	DailyAvgIncome   decimal.Decimal   `json:"dailyAvgIncome"`
	ExpenseStats     DirectionStats    `json:"expenseStats"`
	ExpenseByCat     []CategoryStat    `json:"expenseByCategory"`
	IncomeByCat      []CategoryStat    `json:"incomeByCategory"`
	HourHistogram    []decimal.Decimal `json:"hourHistogram"`
	WeekdayHistogram []decimal.Decimal `json:"weekdayHistogram"`
	CumulativeSeries []SeriesPoint     `json:"cumulativeSeries"`
}

// LedgerView is the windowed main-view payload: totals plus day buckets in
// most-recent-first order.
type LedgerView struct {
	Window   Window          `json:"window"`
	TotalIn  decimal.Decimal `json:"totalIn"`
	TotalOut decimal.Decimal `json:"totalOut"`
	Net      decimal.Decimal `json:"net"`
	Buckets  []DayBucket     `json:"buckets"`
}
