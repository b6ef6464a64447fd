package service

import (
	"sort"
	"time"

	"github.com/cashbookhq/cashbook-backend/internal/domain"
	"github.com/cashbookhq/cashbook-backend/internal/period"
	"github.com/shopspring/decimal"
)

// LedgerService produces the windowed main view: the resolved window, its
// totals, and the day buckets of its transactions.
type LedgerService struct {
	transactionRepo domain.TransactionRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(transactionRepo domain.TransactionRepository) *LedgerService {
	return &LedgerService{transactionRepo: transactionRepo}
}

// GroupByDay buckets a subset by calendar day, most recent day first. Each
// bucket keeps its transactions in input order and carries its own in/out
// sub-totals; the buckets partition the subset exactly. The caller is
// expected to have the superset sorted newest-first already.
func GroupByDay(subset []*domain.Transaction, now time.Time) []domain.DayBucket {
	byKey := make(map[string]*domain.DayBucket)
	keys := make([]string, 0)
	for _, t := range subset {
		key := period.DayKey(t.Date)
		bucket, ok := byKey[key]
		if !ok {
			bucket = &domain.DayBucket{
				DateKey: key,
				SumIn:   decimal.Zero,
				SumOut:  decimal.Zero,
				IsToday: key == period.DayKey(now),
			}
			byKey[key] = bucket
			keys = append(keys, key)
		}
		bucket.Transactions = append(bucket.Transactions, t)
		switch t.Direction {
		case domain.DirectionIn:
			bucket.SumIn = bucket.SumIn.Add(t.Amount)
		case domain.DirectionOut:
			bucket.SumOut = bucket.SumOut.Add(t.Amount)
		}
	}

	// Day keys are zero-padded ISO dates, so lexicographic order is
	// chronological order.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	buckets := make([]domain.DayBucket, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, *byKey[key])
	}
	return buckets
}

// GlobalBalance folds the whole record set into the running balance shown
// in the application header: income adds, expense subtracts.
func GlobalBalance(records []*domain.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range records {
		if !countable(t) {
			continue
		}
		switch t.Direction {
		case domain.DirectionIn:
			balance = balance.Add(t.Amount)
		case domain.DirectionOut:
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}

// BuildView windows and groups a record set. Day mode filters by calendar-
// day identity; every other mode filters by inclusive interval containment.
func BuildView(records []*domain.Transaction, mode domain.ViewMode, anchor time.Time, custom *period.CustomRange, now time.Time) (*domain.LedgerView, error) {
	window, err := period.Resolve(mode, anchor, custom, now)
	if err != nil {
		return nil, err
	}

	var subset []*domain.Transaction
	if mode == domain.ViewModeDay {
		subset = FilterByDay(records, anchor)
	} else {
		subset = FilterByWindow(records, window)
	}

	totalIn := DirectionTotal(subset, domain.DirectionIn)
	totalOut := DirectionTotal(subset, domain.DirectionOut)

	return &domain.LedgerView{
		Window:   window,
		TotalIn:  totalIn,
		TotalOut: totalOut,
		Net:      totalIn.Sub(totalOut),
		Buckets:  GroupByDay(subset, now),
	}, nil
}

// View loads the live record set and builds the windowed ledger view.
func (s *LedgerService) View(mode domain.ViewMode, anchor time.Time, custom *period.CustomRange, now time.Time) (*domain.LedgerView, error) {
	records, err := s.transactionRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return BuildView(records, mode, anchor, custom, now)
}

// Balance loads the live record set and returns the all-time balance.
func (s *LedgerService) Balance() (decimal.Decimal, error) {
	records, err := s.transactionRepo.GetAll()
	if err != nil {
		return decimal.Zero, err
	}
	return GlobalBalance(records), nil
}
