// Package backup implements the archive export/import pipeline. An archive
// is a zip with exactly one data.json manifest (the versioned BackupPayload)
// and one documents/{id}-{filename} entry per stored document blob. Import
// validates the manifest before any destructive write, then replaces all
// record collections in a single transaction.
package backup

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"estatekeeper/internal/logging"
	"estatekeeper/internal/store"
	"estatekeeper/internal/types"
)

const manifestName = "data.json"

// ErrMissingManifest is returned when an archive has no data.json entry.
var ErrMissingManifest = errors.New("backup archive is missing " + manifestName)

// blobEntryName is the deterministic archive path for a document's bytes.
func blobEntryName(doc types.DocumentRecord) string {
	return fmt.Sprintf("documents/%s-%s", doc.ID, doc.Filename)
}

// Export reads every collection and bundles them into a single archive.
// Reads run concurrently; nothing is mutated.
func Export(s *store.Store, now time.Time) ([]byte, error) {
	timer := logging.StartTimer(logging.CategoryBackup, "Export")
	defer timer.Stop()

	payload := types.BackupPayload{
		Version:     types.BackupVersion,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}

	var g errgroup.Group
	g.Go(func() (err error) { payload.Tasks, err = s.ListTasks(); return })
	g.Go(func() (err error) { payload.Assets, err = s.ListAssets(); return })
	g.Go(func() (err error) { payload.Expenses, err = s.ListExpenses(); return })
	g.Go(func() (err error) { payload.Beneficiaries, err = s.ListBeneficiaries(); return })
	g.Go(func() (err error) { payload.Documents, err = s.ListDocuments(); return })
	g.Go(func() (err error) { payload.Profile, err = s.Profile(); return })
	g.Go(func() (err error) { payload.Settings, err = s.Settings(); return })
	g.Go(func() (err error) { payload.Metadata, err = s.Metadata(); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to read collections: %w", err)
	}
	if payload.Tasks == nil {
		payload.Tasks = []types.Task{}
	}
	if payload.Assets == nil {
		payload.Assets = []types.AssetRecord{}
	}
	if payload.Expenses == nil {
		payload.Expenses = []types.ExpenseRecord{}
	}
	if payload.Beneficiaries == nil {
		payload.Beneficiaries = []types.BeneficiaryRecord{}
	}
	if payload.Documents == nil {
		payload.Documents = []types.DocumentRecord{}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	manifest, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	w, err := zw.Create(manifestName)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest entry: %w", err)
	}
	if _, err := w.Write(manifest); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	for _, doc := range payload.Documents {
		data, err := s.GetBlob(doc.BlobRef)
		if err != nil {
			return nil, err
		}
		if data == nil {
			// Dangling blob reference; skip the entry rather than fail the
			// whole export.
			logging.Get(logging.CategoryBackup).Warn("Document %s has no blob %s, skipping", doc.ID, doc.BlobRef)
			continue
		}
		w, err := zw.Create(blobEntryName(doc))
		if err != nil {
			return nil, fmt.Errorf("failed to create blob entry for %s: %w", doc.ID, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write blob for %s: %w", doc.ID, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	logging.Backup("Exported %d tasks, %d documents, %d assets, %d expenses, %d beneficiaries (%d bytes)",
		len(payload.Tasks), len(payload.Documents), len(payload.Assets),
		len(payload.Expenses), len(payload.Beneficiaries), buf.Len())
	return buf.Bytes(), nil
}

// manifest mirrors BackupPayload with pointers for the sections whose
// absence must fall back to defaults rather than zero values.
type manifest struct {
	Version       int                       `json:"version"`
	GeneratedAt   string                    `json:"generatedAt"`
	Profile       *types.EstateProfile      `json:"profile"`
	Settings      *types.AppSettings        `json:"settings"`
	Metadata      *types.Metadata           `json:"metadata"`
	Tasks         []types.Task              `json:"tasks"`
	Assets        []types.AssetRecord       `json:"assets"`
	Expenses      []types.ExpenseRecord     `json:"expenses"`
	Beneficiaries []types.BeneficiaryRecord `json:"beneficiaries"`
	Documents     []types.DocumentRecord    `json:"documents"`
}

// parseArchive validates the archive shape and returns the manifest plus the
// remaining entries keyed by name. No store access happens here: a bad
// archive is rejected before any destructive write.
func parseArchive(data []byte) (*manifest, map[string]*zip.File, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive: %w", err)
	}

	entries := make(map[string]*zip.File, len(zr.File))
	var manifestFile *zip.File
	for _, f := range zr.File {
		if f.Name == manifestName {
			manifestFile = f
			continue
		}
		entries[f.Name] = f
	}
	if manifestFile == nil {
		return nil, nil, ErrMissingManifest
	}

	rc, err := manifestFile.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("invalid backup manifest: %w", err)
	}
	if m.Version < 1 {
		return nil, nil, fmt.Errorf("invalid backup manifest: unsupported version %d", m.Version)
	}
	if m.GeneratedAt == "" {
		return nil, nil, fmt.Errorf("invalid backup manifest: missing generatedAt")
	}
	return &m, entries, nil
}

// Import restores an archive: all six record collections are replaced in one
// transaction, profile/settings/metadata are rewritten (defaults applied for
// absent sections). The kv table itself is never cleared wholesale. A
// validation failure leaves the store untouched.
func Import(s *store.Store, data []byte) error {
	timer := logging.StartTimer(logging.CategoryBackup, "Import")
	defer timer.Stop()

	m, entries, err := parseArchive(data)
	if err != nil {
		return err
	}

	readEntry := func(f *zip.File) ([]byte, error) {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open archive entry %s: %w", f.Name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	return s.RunInTx(func(tx *store.Tx) error {
		if err := tx.ClearRecords(); err != nil {
			return err
		}

		for _, task := range m.Tasks {
			if err := tx.InsertTask(task); err != nil {
				return err
			}
		}
		for _, doc := range m.Documents {
			if err := tx.InsertDocument(doc); err != nil {
				return err
			}
			entry, ok := entries[blobEntryName(doc)]
			if !ok {
				// Archive may legitimately omit a blob; restore metadata only.
				logging.Get(logging.CategoryBackup).Warn("Archive has no blob entry for document %s", doc.ID)
				continue
			}
			blob, err := readEntry(entry)
			if err != nil {
				return err
			}
			if err := tx.PutBlob(doc.BlobRef, blob); err != nil {
				return err
			}
		}
		for _, a := range m.Assets {
			if err := tx.InsertAsset(a); err != nil {
				return err
			}
		}
		for _, e := range m.Expenses {
			if err := tx.InsertExpense(e); err != nil {
				return err
			}
		}
		for _, b := range m.Beneficiaries {
			if err := tx.InsertBeneficiary(b); err != nil {
				return err
			}
		}

		if m.Profile != nil {
			if err := tx.PutProfile(m.Profile); err != nil {
				return err
			}
		}
		settings := types.DefaultSettings()
		if m.Settings != nil {
			settings = *m.Settings
		}
		if err := tx.PutSettings(settings); err != nil {
			return err
		}
		meta := types.DefaultMetadata()
		if m.Metadata != nil {
			meta = *m.Metadata
		}
		if err := tx.PutMetadata(meta); err != nil {
			return err
		}

		logging.Backup("Imported %d tasks, %d documents, %d assets, %d expenses, %d beneficiaries",
			len(m.Tasks), len(m.Documents), len(m.Assets), len(m.Expenses), len(m.Beneficiaries))
		return nil
	})
}
