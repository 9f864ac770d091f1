package model

import (
	"errors"
	"testing"
)

func TestItemValidate(t *testing.T) {
	due := NewDate(2024, 3, 15)
	item := Item{
		ID:       "item-1",
		Title:    "Review budget",
		Priority: PriorityHigh,
		Status:   StatusTodo,
		DueDate:  &due,
	}
	if err := item.Validate(); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}
}

func TestItemValidateRejectsBadFields(t *testing.T) {
	base := Item{ID: "item-1", Title: "t", Priority: PriorityLow, Status: StatusTodo}

	missing := base
	missing.ID = " "
	if err := missing.Validate(); err == nil {
		t.Fatal("expected error for blank id")
	}

	badStatus := base
	badStatus.Status = "archived"
	if err := badStatus.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	badPriority := base
	badPriority.Priority = "urgent"
	if err := badPriority.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}

	badTime := base
	badTime.StartTime = "24:61"
	if err := badTime.Validate(); !errors.Is(err, ErrInvalidMinute) {
		t.Fatalf("expected ErrInvalidMinute, got %v", err)
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	if PriorityHigh.Rank() <= PriorityMedium.Rank() {
		t.Fatal("high must outrank medium")
	}
	if PriorityMedium.Rank() <= PriorityLow.Rank() {
		t.Fatal("medium must outrank low")
	}
	if Priority("bogus").Rank() != 0 {
		t.Fatal("unknown priority must rank lowest")
	}
}
