package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"estatekeeper/internal/deadline"
	"estatekeeper/internal/types"
)

var calendarDays int

var deadlinesCmd = &cobra.Command{
	Use:   "deadlines",
	Short: "Print the statutory deadline summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		profile, err := s.Profile()
		if err != nil {
			return err
		}
		if profile == nil {
			fmt.Println("No profile saved. Run 'estatekeeper profile set' to create one.")
			return nil
		}
		return printDeadlines(profile)
	},
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "List upcoming task due dates and statutory deadlines",
	RunE:  runCalendar,
}

func init() {
	calendarCmd.Flags().IntVar(&calendarDays, "days", 90, "Horizon in days (0 = everything)")
}

// printDeadlines renders the computed deadline summary with due-soon and
// overdue markers relative to today.
func printDeadlines(profile *types.EstateProfile) error {
	summary := deadline.Calculate(profile)
	if summary.Empty() {
		fmt.Println("No deadlines yet: set date-of-death, letters-granted, or first-advertisement.")
		return nil
	}

	rows := []struct{ label, date string }{
		{"Rule 10.5 notices due", summary.Rule105Notice},
		{"Certification of notice due", summary.CertificationOfNotice},
		{"Inventory due", summary.InventoryDue},
		{"Inheritance tax return due", summary.InheritanceTaxDue},
		{"Inheritance tax 5% discount", summary.InheritanceTaxDiscount},
		{"Creditor claim bar date", summary.CreditorBarDate},
	}

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		if row.date == "" {
			continue
		}
		marker := ""
		switch {
		case deadline.IsOverdue(row.date, now):
			marker = "OVERDUE"
		case deadline.IsDueSoon(row.date, now, 14):
			marker = "due soon"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.label, row.date, marker)
	}
	return w.Flush()
}

func runCalendar(cmd *cobra.Command, args []string) error {
	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	profile, err := s.Profile()
	if err != nil {
		return err
	}
	tasks, err := s.ListTasks()
	if err != nil {
		return err
	}

	var summary types.DeadlineSummary
	if profile != nil {
		summary = deadline.Calculate(profile)
	}
	events := deadline.BuildCalendarEvents(tasks, summary)
	if calendarDays > 0 {
		events = deadline.UpcomingEvents(events, time.Now(), calendarDays)
	}
	if len(events) == 0 {
		fmt.Println("Nothing on the calendar.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tTITLE\tSTATUS")
	for _, ev := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ev.Date, ev.Type, ev.Title, string(ev.Status))
	}
	return w.Flush()
}
