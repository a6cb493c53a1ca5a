package utils

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeps     = regexp.MustCompile(`[\s_-]+`)
)

// Slugify converts text into a lowercase, dash separated slug.
// Example: "My New Category" -> "my-new-category"
func Slugify(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = nonSlugChars.ReplaceAllString(text, "")
	text = slugSeps.ReplaceAllString(text, "-")
	return strings.Trim(text, "-")
}

// NoteFilename returns the download filename for a note title.
func NoteFilename(title string) string {
	slug := Slugify(title)
	if slug == "" {
		slug = "untitled"
	}
	return slug + ".txt"
}
