package services

import (
	"context"
	"errors"
	"notes-manager/database"
	"notes-manager/models"
	"notes-manager/utils"
	"strings"
)

// NoteService handles business logic for notes
type NoteService struct {
	repo       NoteRepository
	categories CategoryRepository
	reconciler SyncReconciler
}

// NewNoteService creates a new note service
func NewNoteService(repo NoteRepository, categories CategoryRepository, reconciler SyncReconciler) *NoteService {
	return &NoteService{
		repo:       repo,
		categories: categories,
		reconciler: reconciler,
	}
}

// List returns the actor's notes, pinned first and most recently updated
// first. A non-empty query restricts the result to notes whose title or
// content contains it.
func (ns *NoteService) List(ctx context.Context, actor *models.Actor, query string) ([]models.Note, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return ns.repo.GetNotesByUser(ctx, actor.UserID)
	}
	return ns.repo.SearchNotes(ctx, actor.UserID, query)
}

// Get retrieves a note owned by the actor
func (ns *NoteService) Get(ctx context.Context, actor *models.Actor, id int64) (*models.Note, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}

	note, err := ns.repo.GetNote(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// Create validates and stores a new note
func (ns *NoteService) Create(ctx context.Context, actor *models.Actor, req models.NoteRequest) (*models.Note, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}

	note, err := ns.buildNote(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	if err := ns.repo.CreateNote(ctx, note); err != nil {
		return nil, noteStoreError(err)
	}

	// re-read for the category name
	return ns.Get(ctx, actor, note.ID)
}

// Update replaces every editable field of a note owned by the actor
func (ns *NoteService) Update(ctx context.Context, actor *models.Actor, id int64, req models.NoteRequest) (*models.Note, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}

	note, err := ns.buildNote(ctx, actor, req)
	if err != nil {
		return nil, err
	}
	note.ID = id

	ok, err := ns.repo.UpdateNote(ctx, note)
	if err != nil {
		return nil, noteStoreError(err)
	}
	if !ok {
		return nil, ErrNoteNotFound
	}

	return ns.Get(ctx, actor, id)
}

// Delete permanently removes a note owned by the actor
func (ns *NoteService) Delete(ctx context.Context, actor *models.Actor, id int64) error {
	if actor == nil {
		return ErrAuthRequired
	}

	ok, err := ns.repo.DeleteNote(ctx, id, actor.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoteNotFound
	}
	return nil
}

// TogglePin flips the pinned flag of a note owned by the actor
func (ns *NoteService) TogglePin(ctx context.Context, actor *models.Actor, id int64) (*models.Note, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}

	note, err := ns.repo.TogglePin(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// Sync merges notes cached by an offline client into the actor's notes.
// Invalid and already synced entries are skipped without error.
func (ns *NoteService) Sync(ctx context.Context, actor *models.Actor, batch any) error {
	if actor == nil {
		return ErrAuthRequired
	}
	return ns.reconciler.Merge(ctx, actor.UserID, batch)
}

// buildNote trims and validates a request. The category must belong to the
// actor and the reminder is stored in the normalized timestamp form.
func (ns *NoteService) buildNote(ctx context.Context, actor *models.Actor, req models.NoteRequest) (*models.Note, error) {
	note := &models.Note{
		UserID:  actor.UserID,
		Title:   strings.TrimSpace(req.Title),
		Content: strings.TrimSpace(req.Content),
		Pinned:  req.Pinned,
	}
	if note.Title == "" && note.Content == "" {
		return nil, ErrEmptyNote
	}

	if req.CategoryID != nil {
		exists, err := ns.categories.CategoryExists(ctx, *req.CategoryID, actor.UserID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrCategoryNotFound
		}
		categoryID := *req.CategoryID
		note.CategoryID = &categoryID
	}

	if reminder := strings.TrimSpace(req.Reminder); reminder != "" {
		t, err := utils.ParseTimestamp(reminder)
		if err != nil {
			return nil, ErrInvalidReminder
		}
		formatted := utils.FormatTimestamp(t)
		note.Reminder = &formatted
	}

	return note, nil
}

func noteStoreError(err error) error {
	if errors.Is(err, database.ErrDuplicateNote) {
		return ErrDuplicateNote
	}
	return err
}
