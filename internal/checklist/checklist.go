// Package checklist generates and reconciles the template-derived task list.
// The catalog is fixed; due dates are derived from the estate profile, so a
// profile edit re-propagates into the stored tasks without duplicating them
// or resurrecting tasks the user deleted.
package checklist

import (
	"time"

	"github.com/google/uuid"

	"estatekeeper/internal/logging"
	"estatekeeper/internal/store"
	"estatekeeper/internal/types"
)

// Draft is a template-derived task before it is matched against the store.
type Draft struct {
	TemplateKey string
	Title       string
	Description string
	Category    types.TaskCategory
	Tags        []string
	DueDate     string
}

// BuildDrafts produces the full ordered catalog of task drafts for a
// profile. Pure; no store access.
func BuildDrafts(profile *types.EstateProfile) []Draft {
	drafts := make([]Draft, 0, len(Catalog))
	for _, tpl := range Catalog {
		drafts = append(drafts, Draft{
			TemplateKey: tpl.Key,
			Title:       tpl.Title,
			Description: tpl.Description,
			Category:    tpl.Category,
			Tags:        tpl.Tags,
			DueDate:     tpl.Due(profile),
		})
	}
	return drafts
}

// SaveProfile stores the profile and reconciles the checklist in a single
// transaction. This is the only entry point that runs the checklist engine.
func SaveProfile(s *store.Store, profile *types.EstateProfile, now time.Time) error {
	timer := logging.StartTimer(logging.CategoryChecklist, "SaveProfile")
	defer timer.Stop()

	nowIso := now.UTC().Format(time.RFC3339)
	drafts := BuildDrafts(profile)

	return s.RunInTx(func(tx *store.Tx) error {
		if err := tx.PutProfile(profile); err != nil {
			return err
		}
		return reconcile(tx, drafts, nowIso)
	})
}

// reconcile applies the drafts to the task collection:
//
//   - a draft whose template key matches an existing task updates that task's
//     derived fields in place, preserving id, creation time, status, and
//     assignees (user edits survive re-seeding);
//   - a draft with no match is inserted only while the seeded flag is unset,
//     so a second profile save never recreates a deleted template task;
//   - the seeded flag is set after the first full pass.
func reconcile(tx *store.Tx, drafts []Draft, nowIso string) error {
	meta, err := tx.GetMetadata()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(drafts))
	for _, d := range drafts {
		keys = append(keys, d.TemplateKey)
	}
	existing, err := tx.TasksByTemplateKeys(keys)
	if err != nil {
		return err
	}
	byKey := make(map[string]types.Task, len(existing))
	for _, task := range existing {
		byKey[task.TemplateKey] = task
	}

	inserted, updated := 0, 0
	for _, draft := range drafts {
		if match, ok := byKey[draft.TemplateKey]; ok {
			match.Title = draft.Title
			match.Description = draft.Description
			match.Category = draft.Category
			match.Tags = draft.Tags
			match.DueDate = draft.DueDate
			match.UpdatedAt = nowIso
			if err := tx.UpdateTask(match); err != nil {
				return err
			}
			updated++
			continue
		}
		if meta.ChecklistSeeded {
			continue
		}
		if err := tx.InsertTask(types.Task{
			ID:          uuid.NewString(),
			TemplateKey: draft.TemplateKey,
			Title:       draft.Title,
			Description: draft.Description,
			Category:    draft.Category,
			Tags:        draft.Tags,
			Status:      types.StatusTodo,
			DueDate:     draft.DueDate,
			CreatedAt:   nowIso,
			UpdatedAt:   nowIso,
		}); err != nil {
			return err
		}
		inserted++
	}

	if !meta.ChecklistSeeded {
		meta.ChecklistSeeded = true
		if err := tx.PutMetadata(meta); err != nil {
			return err
		}
	}

	logging.Checklist("Reconciled checklist: %d inserted, %d updated", inserted, updated)
	return nil
}
