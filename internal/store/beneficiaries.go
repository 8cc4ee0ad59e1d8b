package store

import (
	"fmt"

	"estatekeeper/internal/types"
)

const beneficiaryColumns = `id, name, relation, email, phone, address,
	share_pct, rule105_notice_sent_date, notes, created_at, updated_at`

func scanBeneficiary(row interface{ Scan(...interface{}) error }) (types.BeneficiaryRecord, error) {
	var b types.BeneficiaryRecord
	err := row.Scan(
		&b.ID, &b.Name, &b.Relation, &b.Email, &b.Phone, &b.Address,
		&b.SharePct, &b.Rule105NoticeSentDate, &b.Notes, &b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

// InsertBeneficiary adds a beneficiary inside the transaction.
func (t *Tx) InsertBeneficiary(b types.BeneficiaryRecord) error {
	_, err := t.tx.Exec(
		`INSERT INTO beneficiaries (`+beneficiaryColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Relation, b.Email, b.Phone, b.Address, b.SharePct,
		b.Rule105NoticeSentDate, b.Notes, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert beneficiary %s: %w", b.ID, err)
	}
	t.touch(Beneficiaries)
	return nil
}

// UpdateBeneficiary replaces the stored row for b.ID.
func (t *Tx) UpdateBeneficiary(b types.BeneficiaryRecord) error {
	res, err := t.tx.Exec(
		`UPDATE beneficiaries SET name = ?, relation = ?, email = ?, phone = ?,
			address = ?, share_pct = ?, rule105_notice_sent_date = ?, notes = ?,
			created_at = ?, updated_at = ?
		 WHERE id = ?`,
		b.Name, b.Relation, b.Email, b.Phone, b.Address, b.SharePct,
		b.Rule105NoticeSentDate, b.Notes, b.CreatedAt, b.UpdatedAt, b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update beneficiary %s: %w", b.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("beneficiary %s not found", b.ID)
	}
	t.touch(Beneficiaries)
	return nil
}

// DeleteBeneficiary removes a beneficiary.
func (t *Tx) DeleteBeneficiary(id string) error {
	if _, err := t.tx.Exec(`DELETE FROM beneficiaries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete beneficiary %s: %w", id, err)
	}
	t.touch(Beneficiaries)
	return nil
}

// ListBeneficiaries returns all beneficiaries ordered by creation time.
func (s *Store) ListBeneficiaries() ([]types.BeneficiaryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT ` + beneficiaryColumns + ` FROM beneficiaries ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list beneficiaries: %w", err)
	}
	defer rows.Close()

	var bens []types.BeneficiaryRecord
	for rows.Next() {
		b, err := scanBeneficiary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan beneficiary: %w", err)
		}
		bens = append(bens, b)
	}
	return bens, rows.Err()
}

// AddBeneficiary inserts a single beneficiary in its own transaction.
func (s *Store) AddBeneficiary(b types.BeneficiaryRecord) error {
	return s.RunInTx(func(tx *Tx) error { return tx.InsertBeneficiary(b) })
}

// UpdateBeneficiary replaces a single beneficiary in its own transaction.
func (s *Store) UpdateBeneficiary(b types.BeneficiaryRecord) error {
	return s.RunInTx(func(tx *Tx) error { return tx.UpdateBeneficiary(b) })
}

// DeleteBeneficiary removes a single beneficiary in its own transaction.
func (s *Store) DeleteBeneficiary(id string) error {
	return s.RunInTx(func(tx *Tx) error { return tx.DeleteBeneficiary(id) })
}
