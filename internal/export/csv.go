// Package export renders record collections as CSV for use outside the
// application (spreadsheets, the estate attorney, the register of wills).
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"estatekeeper/internal/types"
)

var taskHeader = []string{
	"Title", "Description", "Category", "Status", "Tags",
	"Due Date", "Assigned To", "Created At", "Updated At",
}

// WriteTasksCSV writes one row per task, in the order given.
func WriteTasksCSV(w io.Writer, tasks []types.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(taskHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, task := range tasks {
		row := []string{
			task.Title,
			task.Description,
			string(task.Category),
			string(task.Status),
			strings.Join(task.Tags, ", "),
			task.DueDate,
			strings.Join(task.AssignedTo, ", "),
			task.CreatedAt,
			task.UpdatedAt,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write task %s: %w", task.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var expenseHeader = []string{
	"Date", "Payee", "Description", "Category", "Amount", "Paid From", "Reimbursed",
}

// WriteExpensesCSV writes one row per expense, in the order given. Amounts
// are rendered with two decimal places.
func WriteExpensesCSV(w io.Writer, expenses []types.ExpenseRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(expenseHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			e.Date,
			e.Payee,
			e.Description,
			string(e.Category),
			fmt.Sprintf("%.2f", e.Amount),
			e.PaidFrom,
			yesNo(e.Reimbursed),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write expense %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
