package service

import (
	"sort"
	"time"

	"github.com/cashbookhq/cashbook-backend/internal/domain"
	"github.com/cashbookhq/cashbook-backend/internal/period"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// AnalyticsService derives aggregate views from the flat record set. Every
// method is a total function: empty subsets, zero divisors and dangling
// category references all produce well-defined zero results, never an error.
type AnalyticsService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository) *AnalyticsService {
	return &AnalyticsService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// countable reports whether a record's amount may participate in sums.
// Upstream validation rejects non-positive amounts at the write path; this
// is the second line of defense so one bad record cannot corrupt a total.
func countable(t *domain.Transaction) bool {
	return t.Amount.IsPositive()
}

// FilterByWindow returns the subset of records whose date falls inside the
// window, inclusive at both ends. The input is never mutated and the
// subset preserves input order.
func FilterByWindow(records []*domain.Transaction, w domain.Window) []*domain.Transaction {
	subset := make([]*domain.Transaction, 0, len(records))
	for _, t := range records {
		if w.Contains(t.Date) {
			subset = append(subset, t)
		}
	}
	return subset
}

// FilterByDay returns the subset whose date falls on the same calendar day
// as anchor. Day views compare calendar identity rather than instant range
// so a boundary timestamp is never double counted.
func FilterByDay(records []*domain.Transaction, anchor time.Time) []*domain.Transaction {
	subset := make([]*domain.Transaction, 0, len(records))
	for _, t := range records {
		if period.SameDay(t.Date, anchor) {
			subset = append(subset, t)
		}
	}
	return subset
}

// DirectionTotal sums the amounts of one direction. Empty input sums to 0.
func DirectionTotal(subset []*domain.Transaction, direction domain.Direction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range subset {
		if t.Direction == direction && countable(t) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// Stats computes sum, count, mean, min and max over one direction's
// amounts. All fields are zero for an empty subset; the mean of an empty
// set is 0, not a division by zero.
func Stats(subset []*domain.Transaction, direction domain.Direction) domain.DirectionStats {
	stats := domain.DirectionStats{
		Sum:  decimal.Zero,
		Mean: decimal.Zero,
		Min:  decimal.Zero,
		Max:  decimal.Zero,
	}
	for _, t := range subset {
		if t.Direction != direction || !countable(t) {
			continue
		}
		if stats.Count == 0 {
			stats.Min = t.Amount
			stats.Max = t.Amount
		} else {
			if t.Amount.LessThan(stats.Min) {
				stats.Min = t.Amount
			}
			if t.Amount.GreaterThan(stats.Max) {
				stats.Max = t.Amount
			}
		}
		stats.Sum = stats.Sum.Add(t.Amount)
		stats.Count++
	}
	if stats.Count > 0 {
		stats.Mean = stats.Sum.Div(decimal.NewFromInt(int64(stats.Count)))
	}
	return stats
}

// Summarize computes the headline totals. savingsRate is netFlow as a
// percentage of income, 0 when there is no income.
func Summarize(subset []*domain.Transaction) domain.Summary {
	totalIn := DirectionTotal(subset, domain.DirectionIn)
	totalOut := DirectionTotal(subset, domain.DirectionOut)
	netFlow := totalIn.Sub(totalOut)

	savingsRate := decimal.Zero
	if totalIn.IsPositive() {
		savingsRate = netFlow.Div(totalIn).Mul(oneHundred)
	}

	return domain.Summary{
		TotalIn:     totalIn,
		TotalOut:    totalOut,
		NetFlow:     netFlow,
		SavingsRate: savingsRate,
	}
}

// GrowthPercent computes period-over-period growth. Growth from a zero base
// is undefined, so previous <= 0 reports 0 rather than Infinity.
func GrowthPercent(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(oneHundred)
}

// DailyAverage divides a total by the window's elapsed days, clamped to now
// so days that have not happened yet never dilute the average.
func DailyAverage(total decimal.Decimal, w domain.Window, now time.Time) decimal.Decimal {
	return total.Div(decimal.NewFromInt(int64(period.DaysElapsed(w, now))))
}

// CategoryBreakdown groups one direction's amounts by category, including a
// bucket for uncategorized records, with each bucket's share of the
// direction total. Buckets are sorted descending by amount; ties keep first-
// seen order.
func CategoryBreakdown(subset []*domain.Transaction, direction domain.Direction, customs []*domain.CustomCategory) []domain.CategoryStat {
	directionTotal := DirectionTotal(subset, direction)

	sums := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, t := range subset {
		if t.Direction != direction || !countable(t) {
			continue
		}
		key := ""
		if t.CategoryID != nil {
			key = *t.CategoryID
		}
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] = sums[key].Add(t.Amount)
	}

	breakdown := make([]domain.CategoryStat, 0, len(order))
	for _, key := range order {
		amount := sums[key]
		percentage := decimal.Zero
		if directionTotal.IsPositive() {
			percentage = amount.Div(directionTotal).Mul(oneHundred)
		}
		id := key
		breakdown = append(breakdown, domain.CategoryStat{
			Category:   Resolve(&id, direction, customs),
			Amount:     amount,
			Percentage: percentage,
		})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
	})
	return breakdown
}

// CumulativeSeries produces one point per calendar day from the window
// start through min(now, window end), each carrying that day's expense sum
// and the running total so far. Days without activity still appear with a
// zero day sum, so the series is dense and the running total never
// decreases.
func CumulativeSeries(subset []*domain.Transaction, w domain.Window, now time.Time) []domain.SeriesPoint {
	end := period.ClampEnd(w, now)
	if end.Before(w.Start) {
		return []domain.SeriesPoint{}
	}

	daySums := make(map[string]decimal.Decimal)
	for _, t := range subset {
		if t.Direction != domain.DirectionOut || !countable(t) {
			continue
		}
		key := period.DayKey(t.Date)
		daySums[key] = daySums[key].Add(t.Amount)
	}

	series := make([]domain.SeriesPoint, 0, period.DaysElapsed(w, now))
	runningTotal := decimal.Zero
	lastDay := period.StartOfDay(end)
	for day := period.StartOfDay(w.Start); !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		daySum, ok := daySums[period.DayKey(day)]
		if !ok {
			daySum = decimal.Zero
		}
		runningTotal = runningTotal.Add(daySum)
		series = append(series, domain.SeriesPoint{
			Date:         day,
			DaySum:       daySum,
			RunningTotal: runningTotal,
		})
	}
	return series
}

// HourHistogram sums amounts by hour of day (0-23, local to each record's
// timestamp), both directions combined. Zero-initialized, no normalization.
func HourHistogram(subset []*domain.Transaction) []decimal.Decimal {
	hist := zeroHistogram(24)
	for _, t := range subset {
		if !countable(t) {
			continue
		}
		hour := t.Date.Hour()
		hist[hour] = hist[hour].Add(t.Amount)
	}
	return hist
}

// WeekdayHistogram sums amounts by day of week, 0 = Sunday.
func WeekdayHistogram(subset []*domain.Transaction) []decimal.Decimal {
	hist := zeroHistogram(7)
	for _, t := range subset {
		if !countable(t) {
			continue
		}
		weekday := int(t.Date.Weekday())
		hist[weekday] = hist[weekday].Add(t.Amount)
	}
	return hist
}

func zeroHistogram(n int) []decimal.Decimal {
	hist := make([]decimal.Decimal, n)
	for i := range hist {
		hist[i] = decimal.Zero
	}
	return hist
}

// BuildReport assembles the full analytics payload for a range filter over
// the given record set. It is a pure function; Report is the repository-
// backed convenience wrapper.
func BuildReport(records []*domain.Transaction, filter domain.RangeFilter, customs []*domain.CustomCategory, now time.Time) (*domain.AnalyticsReport, error) {
	window, err := period.ResolveFilter(filter, now)
	if err != nil {
		return nil, err
	}
	prevWindow, hasPrev := period.ResolvePreviousFilter(filter, now)

	current := FilterByWindow(records, window)
	summary := Summarize(current)

	comparison := domain.Comparison{
		HasPrevious:      hasPrev,
		PrevTotalIn:      decimal.Zero,
		PrevTotalOut:     decimal.Zero,
		IncomeGrowthPct:  decimal.Zero,
		ExpenseGrowthPct: decimal.Zero,
	}
	if hasPrev {
		previous := FilterByWindow(records, prevWindow)
		comparison.PrevTotalIn = DirectionTotal(previous, domain.DirectionIn)
		comparison.PrevTotalOut = DirectionTotal(previous, domain.DirectionOut)
		comparison.IncomeGrowthPct = GrowthPercent(summary.TotalIn, comparison.PrevTotalIn)
		comparison.ExpenseGrowthPct = GrowthPercent(summary.TotalOut, comparison.PrevTotalOut)
	}

	return &domain.AnalyticsReport{
		Filter:           filter,
		Window:           window,
		PreviousWindow:   prevWindow,
		Summary:          summary,
		Comparison:       comparison,
		DailyAvgSpend:    DailyAverage(summary.TotalOut, window, now),
		DailyAvgIncome:   DailyAverage(summary.TotalIn, window, now),
		ExpenseStats:     Stats(current, domain.DirectionOut),
		ExpenseByCat:     CategoryBreakdown(current, domain.DirectionOut, customs),
		IncomeByCat:      CategoryBreakdown(current, domain.DirectionIn, customs),
		HourHistogram:    HourHistogram(current),
		WeekdayHistogram: WeekdayHistogram(current),
		CumulativeSeries: CumulativeSeries(current, window, now),
	}, nil
}

// Report loads the live record set and custom categories from the store and
// builds the analytics payload for the requested filter.
func (s *AnalyticsService) Report(filter domain.RangeFilter, now time.Time) (*domain.AnalyticsReport, error) {
	records, err := s.transactionRepo.GetAll()
	if err != nil {
		return nil, err
	}
	customs, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return BuildReport(records, filter, customs, now)
}
