package database

import (
	"context"
	"database/sql"
	"errors"
	"notes-manager/models"
	"strings"
)

// ==================== NOTE OPERATIONS ====================

// The category join is restricted to the owner's categories so a dangling or
// foreign category_id never leaks another user's category name.
const noteSelect = `
	SELECT n.id, n.user_id, n.title, n.content, n.category_id, c.name,
	       n.pinned, n.reminder, n.created_at, n.updated_at
	FROM notes n
	LEFT JOIN categories c ON c.id = n.category_id AND c.user_id = n.user_id
`

const noteOrder = `ORDER BY n.pinned DESC, n.updated_at DESC, n.id DESC`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	var note models.Note
	var categoryID sql.NullInt64
	var categoryName, reminder sql.NullString
	var pinned int
	var createdAt, updatedAt string

	if err := row.Scan(
		&note.ID, &note.UserID, &note.Title, &note.Content,
		&categoryID, &categoryName, &pinned, &reminder,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	if categoryID.Valid {
		note.CategoryID = &categoryID.Int64
	}
	if categoryName.Valid {
		note.CategoryName = &categoryName.String
	}
	if reminder.Valid {
		note.Reminder = &reminder.String
	}
	note.Pinned = pinned != 0
	note.CreatedAt = parseTime(createdAt)
	note.UpdatedAt = parseTime(updatedAt)

	return &note, nil
}

func queryNotes(ctx context.Context, q queryer, query string, args ...any) ([]models.Note, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}

	return notes, rows.Err()
}

func getNote(ctx context.Context, q queryer, id, userID int64) (*models.Note, error) {
	note, err := scanNote(q.QueryRowContext(ctx,
		noteSelect+`WHERE n.id = ? AND n.user_id = ?`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

// CreateNote inserts a new note. created_at and updated_at are both set to
// now; the generated ID and timestamps are written back into note.
func (r *Repository) CreateNote(ctx context.Context, note *models.Note) error {
	ts := now()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (user_id, title, content, category_id, pinned, reminder, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		note.UserID, note.Title, note.Content, note.CategoryID,
		boolToInt(note.Pinned), note.Reminder, ts, ts,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateNote
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	note.ID = id
	note.CreatedAt = parseTime(ts)
	note.UpdatedAt = note.CreatedAt
	return nil
}

// GetNotesByUser retrieves all notes of a user, pinned first, then most
// recently updated first
func (r *Repository) GetNotesByUser(ctx context.Context, userID int64) ([]models.Note, error) {
	return queryNotes(ctx, r.db, noteSelect+`WHERE n.user_id = ? `+noteOrder, userID)
}

// GetNote retrieves a single note owned by the user
func (r *Repository) GetNote(ctx context.Context, id, userID int64) (*models.Note, error) {
	return getNote(ctx, r.db, id, userID)
}

// UpdateNote replaces title, content, category, pinned and reminder of a
// note owned by note.UserID and refreshes updated_at.
// Returns false when no owned note matched, and ErrDuplicateNote when the
// edit would give the note the sync identity of another note.
func (r *Repository) UpdateNote(ctx context.Context, note *models.Note) (bool, error) {
	ts := now()

	res, err := r.db.ExecContext(ctx, `
		UPDATE notes
		SET title = ?, content = ?, category_id = ?, pinned = ?, reminder = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`,
		note.Title, note.Content, note.CategoryID, boolToInt(note.Pinned), note.Reminder, ts,
		note.ID, note.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrDuplicateNote
		}
		return false, err
	}

	ok, err := affected(res)
	if ok {
		note.UpdatedAt = parseTime(ts)
	}
	return ok, err
}

// DeleteNote permanently removes a note owned by the user
func (r *Repository) DeleteNote(ctx context.Context, id, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM notes WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// SearchNotes returns the user's notes whose title or content contains query.
// Matching is a LIKE substring match (case-insensitive for ASCII).
func (r *Repository) SearchNotes(ctx context.Context, userID int64, query string) ([]models.Note, error) {
	if query == "" {
		return r.GetNotesByUser(ctx, userID)
	}

	like := "%" + escapeLike(query) + "%"
	return queryNotes(ctx, r.db, noteSelect+`
		WHERE n.user_id = ?
		AND (n.title LIKE ? ESCAPE '\' OR n.content LIKE ? ESCAPE '\')
		`+noteOrder, userID, like, like)
}

// TogglePin flips the pinned flag of a note owned by the user and returns
// the updated note, or nil when no owned note matched. The flip happens in a
// single UPDATE, so concurrent toggles cannot lose an update.
func (r *Repository) TogglePin(ctx context.Context, id, userID int64) (*models.Note, error) {
	var note *models.Note

	err := r.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE notes
			SET pinned = CASE WHEN pinned = 0 THEN 1 ELSE 0 END, updated_at = ?
			WHERE id = ? AND user_id = ?
		`, now(), id, userID)
		if err != nil {
			return err
		}

		ok, err := affected(res)
		if err != nil || !ok {
			return err
		}

		note, err = getNote(ctx, tx, id, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return note, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
