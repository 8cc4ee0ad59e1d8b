package store

import (
	"fmt"

	"estatekeeper/internal/types"
)

const assetColumns = `id, category, description, probate, pa_inheritance_taxable,
	ownership_note, dod_value, valuation_notes, documents, disposed,
	disposed_note, created_at, updated_at`

func scanAsset(row interface{ Scan(...interface{}) error }) (types.AssetRecord, error) {
	var a types.AssetRecord
	var category, docs string
	err := row.Scan(
		&a.ID, &category, &a.Description, &a.Probate, &a.PAInheritanceTaxable,
		&a.OwnershipNote, &a.DODValue, &a.ValuationNotes, &docs, &a.Disposed,
		&a.DisposedNote, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}
	a.Category = types.AssetCategory(category)
	if a.Documents, err = decodeStrings(docs); err != nil {
		return a, err
	}
	if len(a.Documents) == 0 {
		a.Documents = nil
	}
	return a, nil
}

// InsertAsset adds an asset inside the transaction.
func (t *Tx) InsertAsset(a types.AssetRecord) error {
	_, err := t.tx.Exec(
		`INSERT INTO assets (`+assetColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, string(a.Category), a.Description, a.Probate, a.PAInheritanceTaxable,
		a.OwnershipNote, a.DODValue, a.ValuationNotes, encodeStrings(a.Documents),
		a.Disposed, a.DisposedNote, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset %s: %w", a.ID, err)
	}
	t.touch(Assets)
	return nil
}

// UpdateAsset replaces the stored row for a.ID.
func (t *Tx) UpdateAsset(a types.AssetRecord) error {
	res, err := t.tx.Exec(
		`UPDATE assets SET category = ?, description = ?, probate = ?,
			pa_inheritance_taxable = ?, ownership_note = ?, dod_value = ?,
			valuation_notes = ?, documents = ?, disposed = ?, disposed_note = ?,
			created_at = ?, updated_at = ?
		 WHERE id = ?`,
		string(a.Category), a.Description, a.Probate, a.PAInheritanceTaxable,
		a.OwnershipNote, a.DODValue, a.ValuationNotes, encodeStrings(a.Documents),
		a.Disposed, a.DisposedNote, a.CreatedAt, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset %s: %w", a.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("asset %s not found", a.ID)
	}
	t.touch(Assets)
	return nil
}

// DeleteAsset removes an asset.
func (t *Tx) DeleteAsset(id string) error {
	if _, err := t.tx.Exec(`DELETE FROM assets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", id, err)
	}
	t.touch(Assets)
	return nil
}

// ListAssets returns all assets ordered by creation time.
func (s *Store) ListAssets() ([]types.AssetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT ` + assetColumns + ` FROM assets ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []types.AssetRecord
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// AddAsset inserts a single asset in its own transaction.
func (s *Store) AddAsset(a types.AssetRecord) error {
	return s.RunInTx(func(tx *Tx) error { return tx.InsertAsset(a) })
}

// UpdateAsset replaces a single asset in its own transaction.
func (s *Store) UpdateAsset(a types.AssetRecord) error {
	return s.RunInTx(func(tx *Tx) error { return tx.UpdateAsset(a) })
}

// DeleteAsset removes a single asset in its own transaction.
func (s *Store) DeleteAsset(id string) error {
	return s.RunInTx(func(tx *Tx) error { return tx.DeleteAsset(id) })
}
