package sync

import (
	"encoding/json"
	"errors"
	"fmt"
	"notes-manager/utils"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotObject        = errors.New("sync entry is not an object")
	ErrMissingField     = errors.New("sync entry is missing a required field")
	ErrInvalidFieldType = errors.New("sync entry field must be a string or a number")
	ErrEmptyEntry       = errors.New("sync entry has empty title and content")
)

// Candidate is a client note that passed validation and is ready to be
// inserted.
type Candidate struct {
	Title     string
	Content   string
	CreatedAt time.Time
}

// ParseEntry validates one raw entry of a sync batch as decoded from JSON.
// title, content and created_at must be present and each be a string or a
// number. A created_at that is not a valid ISO-8601 timestamp is replaced by
// the current UTC time.
func ParseEntry(raw any) (Candidate, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Candidate{}, ErrNotObject
	}

	title, err := scalarField(obj, "title")
	if err != nil {
		return Candidate{}, err
	}
	content, err := scalarField(obj, "content")
	if err != nil {
		return Candidate{}, err
	}
	createdAt, err := scalarField(obj, "created_at")
	if err != nil {
		return Candidate{}, err
	}

	c := Candidate{
		Title:     strings.TrimSpace(title),
		Content:   strings.TrimSpace(content),
		CreatedAt: utils.NormalizeTimestamp(createdAt),
	}
	if c.Title == "" && c.Content == "" {
		return Candidate{}, ErrEmptyEntry
	}

	return c, nil
}

func scalarField(obj map[string]any, name string) (string, error) {
	value, ok := obj[name]
	if !ok || value == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingField, name)
	}

	switch v := value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", fmt.Errorf("%w: %s is %T", ErrInvalidFieldType, name, value)
	}
}
