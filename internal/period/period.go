package period

import (
	"fmt"
	"time"

	"github.com/cashbookhq/cashbook-backend/internal/domain"
)

// dayKeyFormat is the calendar-day identity used for grouping and labels.
const dayKeyFormat = "2006-01-02"

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns midnight of the Monday of t's ISO week.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return day.AddDate(0, 0, -offset)
}

// EndOfWeek returns the last instant of the Sunday ending t's ISO week.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last instant of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// StartOfYear returns midnight of January 1st of t's year.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// EndOfYear returns the last instant of t's year.
func EndOfYear(t time.Time) time.Time {
	return StartOfYear(t).AddDate(1, 0, 0).Add(-time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayKey returns the calendar-day identity of t, independent of time of day.
func DayKey(t time.Time) string {
	return t.Format(dayKeyFormat)
}

// CustomRange is a caller-supplied pair of bounds for the custom view mode.
type CustomRange struct {
	Start time.Time
	End   time.Time
}

// Resolve computes the active window for a view mode and anchor date.
// Custom ranges with start after end are rejected so no consumer ever sees a
// window with Start > End; the caller keeps its previous valid window.
func Resolve(mode domain.ViewMode, anchor time.Time, custom *CustomRange, now time.Time) (domain.Window, error) {
	switch mode {
	case domain.ViewModeDay:
		return domain.Window{
			Start: StartOfDay(anchor),
			End:   EndOfDay(anchor),
			Label: dayLabel(anchor, now),
		}, nil
	case domain.ViewModeWeek:
		start, end := StartOfWeek(anchor), EndOfWeek(anchor)
		return domain.Window{
			Start: start,
			End:   end,
			Label: fmt.Sprintf("%s - %s", start.Format("02 Jan"), end.Format("02 Jan")),
		}, nil
	case domain.ViewModeMonth:
		return domain.Window{
			Start: StartOfMonth(anchor),
			End:   EndOfMonth(anchor),
			Label: anchor.Format("January 2006"),
		}, nil
	case domain.ViewModeYear:
		return domain.Window{
			Start: StartOfYear(anchor),
			End:   EndOfYear(anchor),
			Label: anchor.Format("2006"),
		}, nil
	case domain.ViewModeCustom:
		if custom == nil {
			return domain.Window{}, domain.ErrCustomRangeRequired
		}
		if custom.Start.After(custom.End) {
			return domain.Window{}, domain.ErrInvalidRange
		}
		return domain.Window{
			Start: custom.Start,
			End:   custom.End,
			Label: fmt.Sprintf("%s - %s", custom.Start.Format("02 Jan"), custom.End.Format("02 Jan")),
		}, nil
	}
	return domain.Window{}, domain.ErrInvalidViewMode
}

func dayLabel(anchor, now time.Time) string {
	switch {
	case SameDay(anchor, now):
		return "Today"
	case SameDay(anchor, now.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return anchor.Format("02 Jan")
	}
}

// ResolveFilter computes the current analytics window for a range filter,
// always anchored to now. The quarter filter covers the trailing three
// calendar months including the current one.
func ResolveFilter(filter domain.RangeFilter, now time.Time) (domain.Window, error) {
	switch filter {
	case domain.RangeFilterWeek:
		return domain.Window{Start: StartOfWeek(now), End: EndOfWeek(now), Label: "This Week"}, nil
	case domain.RangeFilterMonth:
		return domain.Window{Start: StartOfMonth(now), End: EndOfMonth(now), Label: now.Format("January 2006")}, nil
	case domain.RangeFilterQuarter:
		return domain.Window{Start: StartOfMonth(now.AddDate(0, -2, 0)), End: EndOfMonth(now), Label: "Last 3 Months"}, nil
	case domain.RangeFilterYear:
		return domain.Window{Start: StartOfYear(now), End: EndOfYear(now), Label: now.Format("2006")}, nil
	case domain.RangeFilterAll:
		return domain.Window{Start: time.Unix(0, 0), End: now, Label: "All Time"}, nil
	}
	return domain.Window{}, domain.ErrInvalidRangeFilter
}

// ResolvePreviousFilter computes the immediately preceding window of equal
// cadence. The second return value is false for the "all" filter, which has
// no meaningful previous period: dependent growth figures must report "no
// prior data" instead of a number.
func ResolvePreviousFilter(filter domain.RangeFilter, now time.Time) (domain.Window, bool) {
	switch filter {
	case domain.RangeFilterWeek:
		prev := now.AddDate(0, 0, -7)
		return domain.Window{Start: StartOfWeek(prev), End: EndOfWeek(prev)}, true
	case domain.RangeFilterMonth:
		prev := now.AddDate(0, -1, 0)
		return domain.Window{Start: StartOfMonth(prev), End: EndOfMonth(prev)}, true
	case domain.RangeFilterQuarter:
		return domain.Window{
			Start: StartOfMonth(now.AddDate(0, -5, 0)),
			End:   EndOfMonth(now.AddDate(0, -3, 0)),
		}, true
	case domain.RangeFilterYear:
		prev := now.AddDate(-1, 0, 0)
		return domain.Window{Start: StartOfYear(prev), End: EndOfYear(prev)}, true
	}
	return domain.Window{}, false
}

// ClampEnd caps a window end that extends into the future. Day enumeration
// and daily averages must never cover days that have not happened yet.
func ClampEnd(w domain.Window, now time.Time) time.Time {
	if now.Before(w.End) {
		return now
	}
	return w.End
}

// DaysElapsed counts the calendar days of the window that have already
// happened, never less than 1 so it is always safe as a divisor.
func DaysElapsed(w domain.Window, now time.Time) int {
	end := ClampEnd(w, now)
	if end.Before(w.Start) {
		return 1
	}
	days := int(StartOfDay(end).Sub(StartOfDay(w.Start)).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}
