package database

import (
	"context"
	"notes-manager/models"
)

// ==================== CATEGORY OPERATIONS ====================

// CreateCategory inserts a category for a user. Duplicate names are allowed.
func (r *Repository) CreateCategory(ctx context.Context, userID int64, name string) (*models.Category, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (user_id, name) VALUES (?, ?)
	`, userID, name)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Category{ID: id, UserID: userID, Name: name}, nil
}

// GetCategories retrieves all categories for a user, sorted by name
func (r *Repository) GetCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name
		FROM categories
		WHERE user_id = ?
		ORDER BY name ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// CategoryExists reports whether the category id belongs to the user
func (r *Repository) CategoryExists(ctx context.Context, id, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM categories WHERE id = ? AND user_id = ?)
	`, id, userID).Scan(&exists)
	return exists, err
}

// RenameCategory renames a category owned by the user.
// Returns false when no owned category matched.
func (r *Repository) RenameCategory(ctx context.Context, id, userID int64, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name = ?
		WHERE id = ? AND user_id = ?
	`, name, id, userID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// DeleteCategory deletes a category owned by the user. Notes referencing it
// keep their category_id.
func (r *Repository) DeleteCategory(ctx context.Context, id, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM categories WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return false, err
	}
	return affected(res)
}
