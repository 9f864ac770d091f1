package agenda

import (
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/dayplan/internal/model"
)

func date(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func dateRef(t *testing.T, s string) *model.Date {
	t.Helper()
	d := date(t, s)
	return &d
}

func ids(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestComputeIncludesDueAndStartingToday(t *testing.T) {
	today := date(t, "2024-03-15")
	items := []model.Item{
		{ID: "due-today", Title: "a", Priority: model.PriorityLow, Status: model.StatusTodo, DueDate: dateRef(t, "2024-03-15")},
		{ID: "starts-today", Title: "b", Priority: model.PriorityLow, Status: model.StatusTodo, StartDate: dateRef(t, "2024-03-15")},
		{ID: "due-later", Title: "c", Priority: model.PriorityLow, Status: model.StatusTodo, DueDate: dateRef(t, "2024-03-20")},
	}
	view := Compute(items, today)
	got := ids(view.Today)
	want := []string{"due-today", "starts-today"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected today list: %v", got)
	}
	if len(view.Overdue) != 0 {
		t.Fatalf("expected no overdue items, got %v", ids(view.Overdue))
	}
}

func TestComputeIncludesRecurringItems(t *testing.T) {
	today := date(t, "2024-03-13") // Wednesday
	items := []model.Item{
		{
			ID: "standup", Title: "standup", Priority: model.PriorityMedium, Status: model.StatusTodo,
			Recurrence: &model.RecurrenceRule{Enabled: true, Type: model.RecurrenceWeekly, WeekDays: []time.Weekday{time.Wednesday}},
		},
		{
			ID: "friday-report", Title: "report", Priority: model.PriorityMedium, Status: model.StatusTodo,
			Recurrence: &model.RecurrenceRule{Enabled: true, Type: model.RecurrenceWeekly, WeekDays: []time.Weekday{time.Friday}},
		},
	}
	view := Compute(items, today)
	if !reflect.DeepEqual(ids(view.Today), []string{"standup"}) {
		t.Fatalf("unexpected today list: %v", ids(view.Today))
	}
}

func TestComputeOverdueAppearsInBothLists(t *testing.T) {
	today := date(t, "2024-03-15")
	items := []model.Item{
		{ID: "fresh", Title: "a", Priority: model.PriorityHigh, Status: model.StatusTodo, DueDate: dateRef(t, "2024-03-15")},
		{ID: "late", Title: "b", Priority: model.PriorityHigh, Status: model.StatusTodo, DueDate: dateRef(t, "2024-03-14")},
	}
	view := Compute(items, today)
	if !reflect.DeepEqual(ids(view.Overdue), []string{"late"}) {
		t.Fatalf("unexpected overdue list: %v", ids(view.Overdue))
	}
	// Same priority: overdue sorts ahead of the item merely due today.
	if !reflect.DeepEqual(ids(view.Today), []string{"late", "fresh"}) {
		t.Fatalf("unexpected today order: %v", ids(view.Today))
	}
}

func TestComputeExcludesDoneItems(t *testing.T) {
	today := date(t, "2024-03-15")
	items := []model.Item{
		{
			ID: "done-late", Title: "a", Priority: model.PriorityHigh, Status: model.StatusDone,
			DueDate:    dateRef(t, "2024-03-01"),
			Recurrence: &model.RecurrenceRule{Enabled: true, Type: model.RecurrenceDaily},
		},
	}
	view := Compute(items, today)
	if len(view.Today) != 0 || len(view.Overdue) != 0 {
		t.Fatalf("done item leaked into views: today=%v overdue=%v", ids(view.Today), ids(view.Overdue))
	}
}

func TestComputeSkipsMalformedItems(t *testing.T) {
	today := date(t, "2024-03-15")
	items := []model.Item{
		{ID: "bad", Title: "a", Priority: "urgent", Status: model.StatusTodo, DueDate: dateRef(t, "2024-03-10")},
		{ID: "good", Title: "b", Priority: model.PriorityLow, Status: model.StatusTodo, DueDate: dateRef(t, "2024-03-15")},
	}
	view := Compute(items, today)
	if !reflect.DeepEqual(ids(view.Today), []string{"good"}) {
		t.Fatalf("malformed item not skipped: %v", ids(view.Today))
	}
	if len(view.Overdue) != 0 {
		t.Fatalf("malformed item leaked into overdue: %v", ids(view.Overdue))
	}
}

func TestComputeTodayOrdering(t *testing.T) {
	today := date(t, "2024-03-15")
	items := []model.Item{
		{ID: "low-timed", Title: "a", Priority: model.PriorityLow, Status: model.StatusTodo, StartDate: dateRef(t, "2024-03-15"), StartTime: "08:00"},
		{ID: "high-late", Title: "b", Priority: model.PriorityHigh, Status: model.StatusTodo, StartDate: dateRef(t, "2024-03-15"), StartTime: "14:00"},
		{ID: "high-early", Title: "c", Priority: model.PriorityHigh, Status: model.StatusTodo, StartDate: dateRef(t, "2024-03-15"), StartTime: "09:00"},
		{ID: "high-due", Title: "d", Priority: model.PriorityHigh, Status: model.StatusTodo, DueDate: dateRef(t, "2024-03-15")},
		{ID: "high-bare", Title: "e", Priority: model.PriorityHigh, Status: model.StatusTodo, StartDate: dateRef(t, "2024-03-15")},
		{ID: "med-overdue", Title: "f", Priority: model.PriorityMedium, Status: model.StatusTodo, DueDate: dateRef(t, "2024-03-10")},
	}
	view := Compute(items, today)
	want := []string{
		"high-early", // priority then start time
		"high-late",
		"high-due",  // no time, has due date
		"high-bare", // no time, no due date
		"med-overdue",
		"low-timed",
	}
	if !reflect.DeepEqual(ids(view.Today), want) {
		t.Fatalf("unexpected ordering:\n got %v\nwant %v", ids(view.Today), want)
	}
}

func TestComputeStableForEqualItems(t *testing.T) {
	today := date(t, "2024-03-15")
	items := []model.Item{
		{ID: "first", Title: "a", Priority: model.PriorityHigh, Status: model.StatusTodo, StartDate: dateRef(t, "2024-03-15")},
		{ID: "second", Title: "b", Priority: model.PriorityHigh, Status: model.StatusTodo, StartDate: dateRef(t, "2024-03-15")},
	}
	view := Compute(items, today)
	if !reflect.DeepEqual(ids(view.Today), []string{"first", "second"}) {
		t.Fatalf("equal items lost input order: %v", ids(view.Today))
	}
}

func TestComputeOverdueSortedOldestFirst(t *testing.T) {
	today := date(t, "2024-03-15")
	items := []model.Item{
		{ID: "recent", Title: "a", Priority: model.PriorityLow, Status: model.StatusTodo, DueDate: dateRef(t, "2024-03-14")},
		{ID: "ancient", Title: "b", Priority: model.PriorityLow, Status: model.StatusTodo, DueDate: dateRef(t, "2024-02-01")},
		{ID: "middling", Title: "c", Priority: model.PriorityLow, Status: model.StatusTodo, DueDate: dateRef(t, "2024-03-01")},
	}
	view := Compute(items, today)
	want := []string{"ancient", "middling", "recent"}
	if !reflect.DeepEqual(ids(view.Overdue), want) {
		t.Fatalf("unexpected overdue order: %v", ids(view.Overdue))
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	today := date(t, "2024-03-15")
	items := []model.Item{
		{ID: "x", Title: "a", Priority: model.PriorityHigh, Status: model.StatusTodo, DueDate: dateRef(t, "2024-03-10")},
		{ID: "y", Title: "b", Priority: model.PriorityLow, Status: model.StatusTodo, StartDate: dateRef(t, "2024-03-15")},
		{
			ID: "z", Title: "c", Priority: model.PriorityMedium, Status: model.StatusTodo,
			Recurrence: &model.RecurrenceRule{Enabled: true, Type: model.RecurrenceDaily},
		},
	}
	first := Compute(items, today)
	second := Compute(items, today)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ between identical calls:\n%v\n%v", first, second)
	}
}

func TestComputeEndToEndOverdueScenario(t *testing.T) {
	today := date(t, "2024-03-15")
	items := []model.Item{
		{ID: "filler", Title: "a", Priority: model.PriorityMedium, Status: model.StatusTodo, DueDate: dateRef(t, "2024-03-15")},
		{ID: "tax-docs", Title: "b", Priority: model.PriorityHigh, Status: model.StatusTodo, DueDate: dateRef(t, "2024-03-10")},
	}
	view := Compute(items, today)
	if !reflect.DeepEqual(ids(view.Overdue), []string{"tax-docs"}) {
		t.Fatalf("expected tax-docs overdue, got %v", ids(view.Overdue))
	}
	if !reflect.DeepEqual(ids(view.Today), []string{"tax-docs", "filler"}) {
		t.Fatalf("high-priority overdue item should lead today list: %v", ids(view.Today))
	}
}

func TestTodayIn(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	// 01:30 UTC on the 16th is still the 15th at UTC-3.
	now := time.Date(2024, 3, 16, 1, 30, 0, 0, time.UTC)
	if got := TodayIn(now, loc); !got.Equal(model.NewDate(2024, time.March, 15)) {
		t.Fatalf("unexpected local date: %s", got)
	}
	if got := TodayIn(now, nil); !got.Equal(model.NewDate(2024, time.March, 16)) {
		t.Fatalf("nil location should default to UTC, got %s", got)
	}
}
