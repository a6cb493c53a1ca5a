package models

import "time"

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Actor is the authenticated caller of an operation.
// A nil *Actor means no identity was resolved for the request.
type Actor struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type Category struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

type Note struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CategoryID   *int64    `json:"category_id"`
	CategoryName *string   `json:"category_name"`
	Pinned       bool      `json:"pinned"`
	Reminder     *string   `json:"reminder"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Session struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
}

type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=64,username"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

type RenameCategoryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// NoteRequest is the body for both note creation and full note updates.
type NoteRequest struct {
	Title      string `json:"title" validate:"max=500"`
	Content    string `json:"content" validate:"max=100000"`
	CategoryID *int64 `json:"category_id" validate:"omitempty,gt=0"`
	Pinned     bool   `json:"pinned"`
	Reminder   string `json:"reminder" validate:"omitempty,isotimestamp"`
}

// SyncRequest carries notes cached by an offline client. Entries are kept
// untyped; the sync package parses each one on its own.
type SyncRequest struct {
	Notes any `json:"notes"`
}
