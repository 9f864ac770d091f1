// Package notify decides when notification rules fire and runs the tick
// loop that turns those decisions into delivered events. The evaluation
// functions are stateless predicates of the supplied instant; fired-state
// bookkeeping lives in the Ledger consulted by the engine, never here.
package notify

import (
	"time"

	"github.com/sandeepkv93/dayplan/internal/model"
)

// ShouldFire reports whether a rule should fire at the given instant,
// projected into loc. Quiet suppression is checked first: the quiet-hours
// window (wrapping past midnight when end < start) while enabled, and quiet
// days unconditionally. Inactive and malformed rules never fire.
func ShouldFire(rule model.NotificationRule, quiet model.QuietConfig, now time.Time, loc *time.Location) bool {
	if !rule.IsActive {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	localNow := now.In(loc)

	if suppressed(quiet, localNow) {
		return false
	}

	switch rule.Type {
	case model.NotificationTime:
		want, err := model.ParseMinute(rule.Time)
		if err != nil {
			return false
		}
		return model.MinuteOf(localNow) == want
	case model.NotificationDay:
		// Date-only matching: any stored time on a day rule is ignored.
		for _, d := range rule.DaysOfWeek {
			if d == localNow.Weekday() {
				return true
			}
		}
		return false
	case model.NotificationDate:
		return rule.SpecificDate != nil && rule.SpecificDate.Equal(model.DateOf(localNow))
	default:
		return false
	}
}

// DueRules evaluates a batch and returns the ids of rules that should fire.
func DueRules(rules []model.NotificationRule, quiet model.QuietConfig, now time.Time, loc *time.Location) []string {
	out := make([]string, 0)
	for _, rule := range rules {
		if ShouldFire(rule, quiet, now, loc) {
			out = append(out, rule.ID)
		}
	}
	return out
}

func suppressed(quiet model.QuietConfig, localNow time.Time) bool {
	for _, d := range quiet.QuietDays {
		if d == localNow.Weekday() {
			return true
		}
	}
	if !quiet.QuietHoursEnabled {
		return false
	}
	start, err := model.ParseMinute(quiet.QuietStart)
	if err != nil {
		return false
	}
	end, err := model.ParseMinute(quiet.QuietEnd)
	if err != nil {
		return false
	}
	return inWindow(model.MinuteOf(localNow), start, end)
}

// inWindow reports whether a minute-of-day falls in [from, to), wrapping
// past midnight when to < from. A zero-length window contains nothing.
func inWindow(localM, fromM, toM int) bool {
	if fromM == toM {
		return false
	}
	if fromM < toM {
		return localM >= fromM && localM < toM
	}
	return localM >= fromM || localM < toM
}
