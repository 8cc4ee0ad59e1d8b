// Package deadline derives statutory estate-administration deadlines and
// calendar events from the estate profile. Everything here is pure
// computation over ISO calendar dates; malformed or missing anchor dates
// simply leave the dependent deadlines absent.
package deadline

import (
	"fmt"
	"sort"
	"time"

	"estatekeeper/internal/types"
)

// ISODate is the calendar date layout used throughout the application.
const ISODate = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string. The second return is false for empty
// or malformed input; callers treat that the same as a missing date.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(ISODate, value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddMonths advances t by the given number of calendar months, clamping to
// the last day of the target month. Jan 31 + 1 month is Feb 29 in a leap
// year, never Mar 2.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddWeeks advances t by whole weeks.
func AddWeeks(t time.Time, weeks int) time.Time {
	return t.AddDate(0, 0, 7*weeks)
}

// WeeksFrom returns start + weeks as an ISO date, or "" when start is
// missing or malformed.
func WeeksFrom(start string, weeks int) string {
	base, ok := ParseDate(start)
	if !ok {
		return ""
	}
	return AddWeeks(base, weeks).Format(ISODate)
}

// Calculate computes the deadline summary for a profile. A nil profile or an
// unparseable anchor date yields the corresponding deadlines empty.
//
// Offsets:
//   - rule105Notice         = lettersGrantedDate + 3 months
//   - certificationOfNotice = rule105Notice + 10 days
//   - inventoryDue          = dateOfDeath + 9 months
//   - inheritanceTaxDue     = dateOfDeath + 9 months
//   - inheritanceTaxDiscount = dateOfDeath + 3 months
//   - creditorBarDate       = firstAdvertisementDate + 12 months
func Calculate(profile *types.EstateProfile) types.DeadlineSummary {
	var summary types.DeadlineSummary
	if profile == nil {
		return summary
	}

	if letters, ok := ParseDate(profile.LettersGrantedDate); ok {
		notice := AddMonths(letters, 3)
		summary.Rule105Notice = notice.Format(ISODate)
		summary.CertificationOfNotice = notice.AddDate(0, 0, 10).Format(ISODate)
	}
	if dod, ok := ParseDate(profile.DateOfDeath); ok {
		summary.InventoryDue = AddMonths(dod, 9).Format(ISODate)
		summary.InheritanceTaxDue = AddMonths(dod, 9).Format(ISODate)
		summary.InheritanceTaxDiscount = AddMonths(dod, 3).Format(ISODate)
	}
	if firstAd, ok := ParseDate(profile.FirstAdvertisementDate); ok {
		summary.CreditorBarDate = AddMonths(firstAd, 12).Format(ISODate)
	}
	return summary
}

// IsOverdue reports whether an ISO date lies strictly before today.
func IsOverdue(value string, now time.Time) bool {
	due, ok := ParseDate(value)
	if !ok {
		return false
	}
	today := now.UTC().Truncate(24 * time.Hour)
	return due.Before(today)
}

// IsDueSoon reports whether an ISO date falls within the next `days` days
// (today inclusive).
func IsDueSoon(value string, now time.Time, days int) bool {
	due, ok := ParseDate(value)
	if !ok {
		return false
	}
	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	if due.Before(today) {
		return false
	}
	return !due.After(today.AddDate(0, 0, days))
}

// deadlineTitles pairs each summary field with its calendar label, in the
// stable order events are emitted.
func deadlineEntries(d types.DeadlineSummary) []struct{ title, date string } {
	return []struct{ title, date string }{
		{"Rule 10.5 heir notices due", d.Rule105Notice},
		{"Certification of Notice filing", d.CertificationOfNotice},
		{"Inventory filing due", d.InventoryDue},
		{"Inheritance tax return due", d.InheritanceTaxDue},
		{"Inheritance tax 5% discount deadline", d.InheritanceTaxDiscount},
		{"Creditor claim bar date", d.CreditorBarDate},
	}
}

// BuildCalendarEvents merges due-dated tasks with the computed deadlines into
// one date-sorted event list.
func BuildCalendarEvents(tasks []types.Task, deadlines types.DeadlineSummary) []types.CalendarEvent {
	var events []types.CalendarEvent
	for _, task := range tasks {
		if task.DueDate == "" {
			continue
		}
		events = append(events, types.CalendarEvent{
			ID:          "task-" + task.ID,
			Title:       task.Title,
			Date:        task.DueDate,
			Type:        "Task",
			Status:      task.Status,
			ReferenceID: task.ID,
		})
	}

	for i, entry := range deadlineEntries(deadlines) {
		if entry.date == "" {
			continue
		}
		events = append(events, types.CalendarEvent{
			ID:    fmt.Sprintf("deadline-%d", i),
			Title: entry.title,
			Date:  entry.date,
			Type:  "Deadline",
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
	return events
}

// UpcomingEvents filters events to those falling between today and
// today + horizonDays. Events with malformed dates are dropped.
func UpcomingEvents(events []types.CalendarEvent, now time.Time, horizonDays int) []types.CalendarEvent {
	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	horizon := today.AddDate(0, 0, horizonDays)

	var upcoming []types.CalendarEvent
	for _, event := range events {
		date, ok := ParseDate(event.Date)
		if !ok {
			continue
		}
		if date.Before(today) || date.After(horizon) {
			continue
		}
		upcoming = append(upcoming, event)
	}
	return upcoming
}
