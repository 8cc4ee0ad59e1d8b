package store

import (
	"fmt"

	"estatekeeper/internal/types"
)

const expenseColumns = `id, date, payee, description, category, amount,
	paid_from, reimbursed, notes, receipt_id, created_at, updated_at`

func scanExpense(row interface{ Scan(...interface{}) error }) (types.ExpenseRecord, error) {
	var e types.ExpenseRecord
	var category string
	err := row.Scan(
		&e.ID, &e.Date, &e.Payee, &e.Description, &category, &e.Amount,
		&e.PaidFrom, &e.Reimbursed, &e.Notes, &e.ReceiptID, &e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}
	e.Category = types.ExpenseCategory(category)
	return e, nil
}

// InsertExpense adds an expense inside the transaction.
func (t *Tx) InsertExpense(e types.ExpenseRecord) error {
	_, err := t.tx.Exec(
		`INSERT INTO expenses (`+expenseColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Date, e.Payee, e.Description, string(e.Category), e.Amount,
		e.PaidFrom, e.Reimbursed, e.Notes, e.ReceiptID, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense %s: %w", e.ID, err)
	}
	t.touch(Expenses)
	return nil
}

// UpdateExpense replaces the stored row for e.ID.
func (t *Tx) UpdateExpense(e types.ExpenseRecord) error {
	res, err := t.tx.Exec(
		`UPDATE expenses SET date = ?, payee = ?, description = ?, category = ?,
			amount = ?, paid_from = ?, reimbursed = ?, notes = ?, receipt_id = ?,
			created_at = ?, updated_at = ?
		 WHERE id = ?`,
		e.Date, e.Payee, e.Description, string(e.Category), e.Amount, e.PaidFrom,
		e.Reimbursed, e.Notes, e.ReceiptID, e.CreatedAt, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", e.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("expense %s not found", e.ID)
	}
	t.touch(Expenses)
	return nil
}

// DeleteExpense removes an expense.
func (t *Tx) DeleteExpense(id string) error {
	if _, err := t.tx.Exec(`DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", id, err)
	}
	t.touch(Expenses)
	return nil
}

// ListExpenses returns all expenses, most recent date first.
func (s *Store) ListExpenses() ([]types.ExpenseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT ` + expenseColumns + ` FROM expenses ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []types.ExpenseRecord
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// AddExpense inserts a single expense in its own transaction.
func (s *Store) AddExpense(e types.ExpenseRecord) error {
	return s.RunInTx(func(tx *Tx) error { return tx.InsertExpense(e) })
}

// UpdateExpense replaces a single expense in its own transaction.
func (s *Store) UpdateExpense(e types.ExpenseRecord) error {
	return s.RunInTx(func(tx *Tx) error { return tx.UpdateExpense(e) })
}

// DeleteExpense removes a single expense in its own transaction.
func (s *Store) DeleteExpense(id string) error {
	return s.RunInTx(func(tx *Tx) error { return tx.DeleteExpense(id) })
}
