package model

import "time"

// Content status values. There is no transition restriction between the
// two; any authorized actor may flip a published item back to draft.
const (
	ContentStatusDraft     = "draft"
	ContentStatusPublished = "published"
)

// Content represents a row of the `contents` table joined with the
// author's username. AuthorName is populated by the repository via a
// LEFT JOIN on users and is nil when the author row no longer exists or
// the content predates ownership tracking.
type Content struct {
	ID         uint64    `json:"id"`
	Title      string    `json:"title"`
	Body       *string   `json:"content"`
	Category   *string   `json:"category"`
	Status     string    `json:"status"`
	AuthorID   *uint64   `json:"author_id"`
	AuthorName *string   `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
