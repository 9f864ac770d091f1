package model

import (
	"errors"
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestDailyOccursEveryDay(t *testing.T) {
	rule := RecurrenceRule{Enabled: true, Type: RecurrenceDaily}
	for _, day := range []string{"2024-01-01", "2024-02-29", "2024-12-31"} {
		if !rule.OccursOn(mustDate(t, day)) {
			t.Fatalf("daily rule should occur on %s", day)
		}
	}
}

func TestDisabledRuleNeverOccurs(t *testing.T) {
	rule := RecurrenceRule{Enabled: false, Type: RecurrenceDaily}
	if rule.OccursOn(mustDate(t, "2024-03-15")) {
		t.Fatal("disabled rule must not occur")
	}
}

func TestWeeklyMatchesConfiguredWeekdays(t *testing.T) {
	rule := RecurrenceRule{
		Enabled:  true,
		Type:     RecurrenceWeekly,
		WeekDays: []time.Weekday{time.Monday, time.Wednesday},
	}
	if !rule.OccursOn(mustDate(t, "2024-03-11")) { // Monday
		t.Fatal("weekly rule should occur on Monday")
	}
	if !rule.OccursOn(mustDate(t, "2024-03-13")) { // Wednesday
		t.Fatal("weekly rule should occur on Wednesday")
	}
	if rule.OccursOn(mustDate(t, "2024-03-12")) { // Tuesday
		t.Fatal("weekly rule should not occur on Tuesday")
	}
}

func TestWeeklyWithEmptySetNeverOccurs(t *testing.T) {
	rule := RecurrenceRule{Enabled: true, Type: RecurrenceWeekly}
	if rule.OccursOn(mustDate(t, "2024-03-11")) {
		t.Fatal("weekly rule with no weekdays must not occur")
	}
}

func TestMonthlyMatchesDayOfMonth(t *testing.T) {
	rule := RecurrenceRule{Enabled: true, Type: RecurrenceMonthly, MonthDay: 15}
	if !rule.OccursOn(mustDate(t, "2024-03-15")) {
		t.Fatal("monthly rule should occur on the 15th")
	}
	if rule.OccursOn(mustDate(t, "2024-03-14")) {
		t.Fatal("monthly rule should not occur on the 14th")
	}
}

func TestMonthlyDay31SkipsShortMonths(t *testing.T) {
	rule := RecurrenceRule{Enabled: true, Type: RecurrenceMonthly, MonthDay: 31}
	// Every day of February 2024 (leap year) and April: never occurs.
	for _, month := range []time.Month{time.February, time.April} {
		for day := 1; day <= DaysIn(2024, month); day++ {
			d := NewDate(2024, month, day)
			if rule.OccursOn(d) {
				t.Fatalf("monthDay=31 must not occur on %s", d)
			}
		}
	}
	if !rule.OccursOn(mustDate(t, "2024-03-31")) {
		t.Fatal("monthDay=31 should occur on March 31")
	}
}

func TestMonthlyWithoutMonthDayNeverOccurs(t *testing.T) {
	rule := RecurrenceRule{Enabled: true, Type: RecurrenceMonthly}
	if rule.OccursOn(mustDate(t, "2024-03-01")) {
		t.Fatal("malformed monthly rule must evaluate to false")
	}
}

func TestWeekdaysExcludesWeekends(t *testing.T) {
	rule := RecurrenceRule{Enabled: true, Type: RecurrenceWeekdays}
	// 2024-03-11 is a Monday; walk one full week.
	for i := 0; i < 7; i++ {
		d := mustDate(t, "2024-03-11").AddDays(i)
		wd := d.Weekday()
		want := wd != time.Saturday && wd != time.Sunday
		if got := rule.OccursOn(d); got != want {
			t.Fatalf("weekdays rule on %s (%s): got %v want %v", d, wd, got, want)
		}
	}
}

func TestCustomMatchesExactDates(t *testing.T) {
	rule := RecurrenceRule{
		Enabled:     true,
		Type:        RecurrenceCustom,
		CustomDates: []Date{mustDate(t, "2024-03-15"), mustDate(t, "2024-06-01")},
	}
	if !rule.OccursOn(mustDate(t, "2024-06-01")) {
		t.Fatal("custom rule should occur on a listed date")
	}
	if rule.OccursOn(mustDate(t, "2024-06-02")) {
		t.Fatal("custom rule should not occur on an unlisted date")
	}
}

func TestUnknownTypeNeverOccurs(t *testing.T) {
	rule := RecurrenceRule{Enabled: true, Type: RecurrenceType("biweekly")}
	if rule.OccursOn(mustDate(t, "2024-03-15")) {
		t.Fatal("unknown rule type must evaluate to false")
	}
}

func TestRecurrenceValidate(t *testing.T) {
	cases := []struct {
		name    string
		rule    RecurrenceRule
		wantErr error
	}{
		{"daily ok", RecurrenceRule{Type: RecurrenceDaily}, nil},
		{"weekdays ok", RecurrenceRule{Type: RecurrenceWeekdays}, nil},
		{"weekly empty", RecurrenceRule{Type: RecurrenceWeekly}, ErrEmptyWeekdaySet},
		{"monthly zero", RecurrenceRule{Type: RecurrenceMonthly}, ErrInvalidMonthDay},
		{"monthly 32", RecurrenceRule{Type: RecurrenceMonthly, MonthDay: 32}, ErrInvalidMonthDay},
		{"custom empty", RecurrenceRule{Type: RecurrenceCustom}, ErrEmptyCustomDates},
		{"bad type", RecurrenceRule{Type: "yearly"}, ErrInvalidRecurrenceType},
	}
	for _, tc := range cases {
		err := tc.rule.Validate()
		if tc.wantErr == nil {
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tc.name, err)
			}
			continue
		}
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestRecurrenceValidateRejectsDuplicateWeekdays(t *testing.T) {
	rule := RecurrenceRule{
		Type:     RecurrenceWeekly,
		WeekDays: []time.Weekday{time.Monday, time.Monday},
	}
	if err := rule.Validate(); err == nil {
		t.Fatal("expected duplicate weekday error")
	}
}
