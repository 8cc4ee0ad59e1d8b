package deadline

import (
	"testing"
	"time"

	"estatekeeper/internal/types"
)

func TestCalculate_NoAnchorDates(t *testing.T) {
	summary := Calculate(&types.EstateProfile{DecedentFullName: "Jane Doe"})
	if !summary.Empty() {
		t.Errorf("Expected empty summary without anchor dates, got %+v", summary)
	}

	if got := Calculate(nil); !got.Empty() {
		t.Errorf("Expected empty summary for nil profile, got %+v", got)
	}
}

func TestCalculate_LettersGranted(t *testing.T) {
	summary := Calculate(&types.EstateProfile{LettersGrantedDate: "2024-01-01"})

	if summary.Rule105Notice != "2024-04-01" {
		t.Errorf("rule105Notice = %q, want 2024-04-01", summary.Rule105Notice)
	}
	if summary.CertificationOfNotice != "2024-04-11" {
		t.Errorf("certificationOfNotice = %q, want 2024-04-11", summary.CertificationOfNotice)
	}
	if summary.InventoryDue != "" {
		t.Errorf("inventoryDue should be absent without dateOfDeath, got %q", summary.InventoryDue)
	}
}

func TestCalculate_DateOfDeath(t *testing.T) {
	summary := Calculate(&types.EstateProfile{DateOfDeath: "2024-01-01"})

	if summary.InventoryDue != "2024-10-01" {
		t.Errorf("inventoryDue = %q, want 2024-10-01", summary.InventoryDue)
	}
	if summary.InheritanceTaxDue != "2024-10-01" {
		t.Errorf("inheritanceTaxDue = %q, want 2024-10-01", summary.InheritanceTaxDue)
	}
	if summary.InheritanceTaxDiscount != "2024-04-01" {
		t.Errorf("inheritanceTaxDiscount = %q, want 2024-04-01", summary.InheritanceTaxDiscount)
	}
}

func TestCalculate_FirstAdvertisement(t *testing.T) {
	summary := Calculate(&types.EstateProfile{FirstAdvertisementDate: "2024-03-15"})

	if summary.CreditorBarDate != "2025-03-15" {
		t.Errorf("creditorBarDate = %q, want 2025-03-15", summary.CreditorBarDate)
	}
}

func TestCalculate_MalformedDateTreatedAsAbsent(t *testing.T) {
	summary := Calculate(&types.EstateProfile{
		DateOfDeath:        "not-a-date",
		LettersGrantedDate: "2024-13-45",
	})
	if !summary.Empty() {
		t.Errorf("Malformed dates should produce an empty summary, got %+v", summary)
	}
}

func TestAddMonths_ClampsToEndOfMonth(t *testing.T) {
	cases := []struct {
		start  string
		months int
		want   string
	}{
		{"2024-01-31", 1, "2024-02-29"}, // leap year
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-05-31", 1, "2024-06-30"},
		{"2024-03-31", 12, "2025-03-31"},
		{"2023-11-30", 3, "2024-02-29"},
	}
	for _, tc := range cases {
		start, ok := ParseDate(tc.start)
		if !ok {
			t.Fatalf("bad test input %q", tc.start)
		}
		got := AddMonths(start, tc.months).Format(ISODate)
		if got != tc.want {
			t.Errorf("AddMonths(%s, %d) = %s, want %s", tc.start, tc.months, got, tc.want)
		}
	}
}

func TestWeeksFrom(t *testing.T) {
	if got := WeeksFrom("2024-01-01", 2); got != "2024-01-15" {
		t.Errorf("WeeksFrom = %q, want 2024-01-15", got)
	}
	if got := WeeksFrom("", 2); got != "" {
		t.Errorf("WeeksFrom on empty input = %q, want empty", got)
	}
	if got := WeeksFrom("garbage", 1); got != "" {
		t.Errorf("WeeksFrom on malformed input = %q, want empty", got)
	}
}

func TestOverdueAndDueSoon(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

	if !IsOverdue("2024-06-14", now) {
		t.Error("yesterday should be overdue")
	}
	if IsOverdue("2024-06-15", now) {
		t.Error("today should not be overdue")
	}
	if IsOverdue("bogus", now) {
		t.Error("malformed date should not be overdue")
	}

	if !IsDueSoon("2024-06-20", now, 14) {
		t.Error("date within window should be due soon")
	}
	if IsDueSoon("2024-08-01", now, 14) {
		t.Error("date past window should not be due soon")
	}
	if IsDueSoon("2024-06-14", now, 14) {
		t.Error("past date should not be due soon")
	}
}

func TestBuildCalendarEvents(t *testing.T) {
	tasks := []types.Task{
		{ID: "t1", Title: "File petition", DueDate: "2024-05-01", Status: types.StatusTodo},
		{ID: "t2", Title: "No due date", Status: types.StatusTodo},
	}
	deadlines := types.DeadlineSummary{
		Rule105Notice: "2024-04-01",
		InventoryDue:  "2024-10-01",
	}

	events := BuildCalendarEvents(tasks, deadlines)

	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	// Sorted by date: rule105 notice, task, inventory
	if events[0].Title != "Rule 10.5 heir notices due" || events[0].Type != "Deadline" {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].ID != "task-t1" || events[1].ReferenceID != "t1" {
		t.Errorf("second event = %+v", events[1])
	}
	if events[2].Date != "2024-10-01" {
		t.Errorf("third event = %+v", events[2])
	}
}

func TestUpcomingEvents(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	events := []types.CalendarEvent{
		{ID: "past", Date: "2024-05-01"},
		{ID: "soon", Date: "2024-06-10"},
		{ID: "edge", Date: "2024-08-30"},
		{ID: "far", Date: "2024-12-01"},
		{ID: "bad", Date: "nope"},
	}

	upcoming := UpcomingEvents(events, now, 90)

	if len(upcoming) != 2 {
		t.Fatalf("Expected 2 upcoming events, got %d: %+v", len(upcoming), upcoming)
	}
	if upcoming[0].ID != "soon" || upcoming[1].ID != "edge" {
		t.Errorf("upcoming = %+v", upcoming)
	}
}
