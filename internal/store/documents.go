package store

import (
	"database/sql"
	"fmt"

	"estatekeeper/internal/logging"
	"estatekeeper/internal/types"
)

const documentColumns = `id, filename, mime_type, size, title, notes, tags,
	created_at, updated_at, blob_ref`

func scanDocument(row interface{ Scan(...interface{}) error }) (types.DocumentRecord, error) {
	var doc types.DocumentRecord
	var tags string
	err := row.Scan(
		&doc.ID, &doc.Filename, &doc.MimeType, &doc.Size, &doc.Title,
		&doc.Notes, &tags, &doc.CreatedAt, &doc.UpdatedAt, &doc.BlobRef,
	)
	if err != nil {
		return doc, err
	}
	doc.Tags, err = decodeDocTags(tags)
	return doc, err
}

// InsertDocument adds document metadata inside the transaction. The blob is
// stored separately via PutBlob; AddDocument on Store does both atomically.
func (t *Tx) InsertDocument(doc types.DocumentRecord) error {
	_, err := t.tx.Exec(
		`INSERT INTO documents (`+documentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Filename, doc.MimeType, doc.Size, doc.Title, doc.Notes,
		encodeDocTags(doc.Tags), doc.CreatedAt, doc.UpdatedAt, doc.BlobRef,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document %s: %w", doc.ID, err)
	}
	t.touch(Documents)
	return nil
}

// UpdateDocument replaces the stored metadata for doc.ID.
func (t *Tx) UpdateDocument(doc types.DocumentRecord) error {
	res, err := t.tx.Exec(
		`UPDATE documents SET filename = ?, mime_type = ?, size = ?, title = ?,
			notes = ?, tags = ?, created_at = ?, updated_at = ?, blob_ref = ?
		 WHERE id = ?`,
		doc.Filename, doc.MimeType, doc.Size, doc.Title, doc.Notes,
		encodeDocTags(doc.Tags), doc.CreatedAt, doc.UpdatedAt, doc.BlobRef, doc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", doc.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("document %s not found", doc.ID)
	}
	t.touch(Documents)
	return nil
}

// DeleteDocument removes document metadata inside the transaction.
func (t *Tx) DeleteDocument(id string) error {
	if _, err := t.tx.Exec(`DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	t.touch(Documents)
	return nil
}

// PutBlob stores (or replaces) raw document bytes under id.
func (t *Tx) PutBlob(id string, data []byte) error {
	_, err := t.tx.Exec(
		`INSERT INTO document_blobs (id, data) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		id, data,
	)
	if err != nil {
		return fmt.Errorf("failed to store blob %s: %w", id, err)
	}
	t.touch(DocumentBlobs)
	return nil
}

// DeleteBlob removes raw document bytes.
func (t *Tx) DeleteBlob(id string) error {
	if _, err := t.tx.Exec(`DELETE FROM document_blobs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", id, err)
	}
	t.touch(DocumentBlobs)
	return nil
}

// ListDocuments returns all document metadata, newest first.
func (s *Store) ListDocuments() ([]types.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT ` + documentColumns + ` FROM documents ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []types.DocumentRecord
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// GetDocument returns one document's metadata by id; nil when absent.
func (s *Store) GetDocument(id string) (*types.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", id, err)
	}
	return &doc, nil
}

// GetBlob returns the raw bytes for a blob reference. A dangling reference
// yields (nil, nil): lookup misses are not errors.
func (s *Store) GetBlob(id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data []byte
	err := s.db.QueryRow(`SELECT data FROM document_blobs WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load blob %s: %w", id, err)
	}
	return data, nil
}

// AddDocument stores metadata and blob together: both rows appear, or
// neither does.
func (s *Store) AddDocument(doc types.DocumentRecord, data []byte) error {
	logging.StoreDebug("Adding document %s (%s, %d bytes)", doc.ID, doc.Filename, len(data))
	return s.RunInTx(func(tx *Tx) error {
		if err := tx.PutBlob(doc.BlobRef, data); err != nil {
			return err
		}
		return tx.InsertDocument(doc)
	})
}

// UpdateDocument replaces document metadata in its own transaction.
func (s *Store) UpdateDocument(doc types.DocumentRecord) error {
	return s.RunInTx(func(tx *Tx) error { return tx.UpdateDocument(doc) })
}

// DeleteDocument removes metadata and blob together.
func (s *Store) DeleteDocument(id string) error {
	return s.RunInTx(func(tx *Tx) error {
		doc, err := tx.documentByID(id)
		if err != nil {
			return err
		}
		if err := tx.DeleteDocument(id); err != nil {
			return err
		}
		if doc != nil && doc.BlobRef != "" {
			return tx.DeleteBlob(doc.BlobRef)
		}
		return nil
	})
}

func (t *Tx) documentByID(id string) (*types.DocumentRecord, error) {
	row := t.tx.QueryRow(`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", id, err)
	}
	return &doc, nil
}
