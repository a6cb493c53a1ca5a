package services

import (
	"context"
	"notes-manager/models"
	"strings"
)

// CategoryService handles business logic for categories
type CategoryService struct {
	repo CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List retrieves all categories of the actor, sorted by name
func (cs *CategoryService) List(ctx context.Context, actor *models.Actor) ([]models.Category, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}
	return cs.repo.GetCategories(ctx, actor.UserID)
}

// Create creates a category. Names need not be unique.
func (cs *CategoryService) Create(ctx context.Context, actor *models.Actor, name string) (*models.Category, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	return cs.repo.CreateCategory(ctx, actor.UserID, name)
}

// Rename renames a category owned by the actor
func (cs *CategoryService) Rename(ctx context.Context, actor *models.Actor, id int64, name string) (*models.Category, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	ok, err := cs.repo.RenameCategory(ctx, id, actor.UserID, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCategoryNotFound
	}

	return &models.Category{ID: id, UserID: actor.UserID, Name: name}, nil
}

// Delete deletes a category owned by the actor. Its notes are kept.
func (cs *CategoryService) Delete(ctx context.Context, actor *models.Actor, id int64) error {
	if actor == nil {
		return ErrAuthRequired
	}

	ok, err := cs.repo.DeleteCategory(ctx, id, actor.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}
