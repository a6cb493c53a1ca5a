package services

import "errors"

// Common service-level errors
var (
	// Auth errors
	ErrAuthRequired       = errors.New("authentication required")
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found")

	// Category errors
	ErrCategoryNameRequired = errors.New("category name required")
	ErrCategoryNotFound     = errors.New("category not found")

	// Note errors
	ErrEmptyNote       = errors.New("a note cannot be empty")
	ErrInvalidReminder = errors.New("reminder must be an ISO-8601 timestamp")
	ErrNoteNotFound    = errors.New("note not found")
	ErrDuplicateNote   = errors.New("another note already has this title and content")
)
