// Package agenda computes the date-relative views of schedulable items:
// which items belong to "today" and which are overdue. It is pure — callers
// supply the reference date, the package never reads a clock.
package agenda

import (
	"sort"
	"time"

	"github.com/sandeepkv93/dayplan/internal/model"
)

// View is the result of one aggregation pass. Overdue items also appear in
// Today so a single list covers everything that needs attention; callers
// that want the distinction read Overdue.
type View struct {
	Today   []model.Item
	Overdue []model.Item
}

// TodayIn projects an instant into the user's zone and truncates to the
// calendar date.
func TodayIn(now time.Time, loc *time.Location) model.Date {
	if loc == nil {
		loc = time.UTC
	}
	return model.DateOf(now.In(loc))
}

// Compute builds the today and overdue lists for the given date.
//
// Done items are excluded everywhere. Items that fail validation are skipped
// so one corrupt record cannot abort the batch. The today list is ordered by
// priority (high first), overdue before non-overdue, earlier start time,
// then earlier due date, with input order as the stable fallback. The
// overdue list is ordered by ascending due date, oldest first.
func Compute(items []model.Item, today model.Date) View {
	type entry struct {
		item    model.Item
		overdue bool
	}

	todayEntries := make([]entry, 0, len(items))
	overdue := make([]model.Item, 0)

	for _, item := range items {
		if item.Status == model.StatusDone {
			continue
		}
		if err := item.Validate(); err != nil {
			continue
		}

		isOverdue := item.DueDate != nil && item.DueDate.Before(today)
		if isOverdue {
			overdue = append(overdue, item)
		}
		if isOverdue || occursToday(item, today) {
			todayEntries = append(todayEntries, entry{item: item, overdue: isOverdue})
		}
	}

	sort.SliceStable(todayEntries, func(i, j int) bool {
		a, b := todayEntries[i], todayEntries[j]
		if ra, rb := a.item.Priority.Rank(), b.item.Priority.Rank(); ra != rb {
			return ra > rb
		}
		if a.overdue != b.overdue {
			return a.overdue
		}
		if ha, hb := a.item.StartTime != "", b.item.StartTime != ""; ha != hb {
			return ha
		}
		if a.item.StartTime != b.item.StartTime {
			return a.item.StartTime < b.item.StartTime
		}
		if ha, hb := a.item.DueDate != nil, b.item.DueDate != nil; ha != hb {
			return ha
		}
		if a.item.DueDate != nil && b.item.DueDate != nil && !a.item.DueDate.Equal(*b.item.DueDate) {
			return a.item.DueDate.Before(*b.item.DueDate)
		}
		return false
	})

	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].DueDate.Before(*overdue[j].DueDate)
	})

	out := View{
		Today:   make([]model.Item, 0, len(todayEntries)),
		Overdue: overdue,
	}
	for _, e := range todayEntries {
		out.Today = append(out.Today, e.item)
	}
	return out
}

func occursToday(item model.Item, today model.Date) bool {
	if item.StartDate != nil && item.StartDate.Equal(today) {
		return true
	}
	if item.DueDate != nil && item.DueDate.Equal(today) {
		return true
	}
	return item.Recurrence != nil && item.Recurrence.OccursOn(today)
}
