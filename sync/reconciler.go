package sync

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// NoteInserter is the storage needed to merge a batch.
type NoteInserter interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
	InsertSyncedNote(ctx context.Context, tx *sql.Tx, userID int64, title, content string, createdAt time.Time) (bool, error)
}

// Report summarizes one merge. It is logged, never returned to clients.
type Report struct {
	Received   int
	Inserted   int
	Duplicates int
	Skipped    int
}

// Reconciler merges notes written by an offline client into the server copy.
type Reconciler struct {
	store NoteInserter
}

func NewReconciler(store NoteInserter) *Reconciler {
	return &Reconciler{store: store}
}

// Merge inserts every valid entry of batch for the user. Invalid entries are
// skipped and entries that were already synced are ignored, so sending the
// same batch twice is harmless. A batch that is not a JSON array is a no-op.
// Only storage failures are returned.
func (r *Reconciler) Merge(ctx context.Context, userID int64, batch any) error {
	_, err := r.merge(ctx, userID, batch)
	return err
}

func (r *Reconciler) merge(ctx context.Context, userID int64, batch any) (Report, error) {
	var report Report

	entries, ok := batch.([]any)
	if !ok {
		if batch != nil {
			slog.Debug("sync batch ignored", "user_id", userID, "type", fmt.Sprintf("%T", batch))
		}
		return report, nil
	}
	report.Received = len(entries)

	candidates := make([]Candidate, 0, len(entries))
	for i, raw := range entries {
		c, err := ParseEntry(raw)
		if err != nil {
			report.Skipped++
			slog.Debug("sync entry skipped", "user_id", userID, "index", i, "reason", err)
			continue
		}
		candidates = append(candidates, c)
	}

	if len(candidates) > 0 {
		err := r.store.WithTx(ctx, func(tx *sql.Tx) error {
			for _, c := range candidates {
				inserted, err := r.store.InsertSyncedNote(ctx, tx, userID, c.Title, c.Content, c.CreatedAt)
				if err != nil {
					return fmt.Errorf("insert synced note: %w", err)
				}
				if inserted {
					report.Inserted++
				} else {
					report.Duplicates++
				}
			}
			return nil
		})
		if err != nil {
			slog.Error("sync merge failed", "user_id", userID, "error", err)
			return Report{Received: report.Received, Skipped: report.Skipped}, err
		}
	}

	slog.Info("sync merge complete",
		"user_id", userID,
		"received", report.Received,
		"inserted", report.Inserted,
		"duplicates", report.Duplicates,
		"skipped", report.Skipped,
	)

	return report, nil
}
