// internal/domain/kb/entity.go
package kb

import "time"

// Article is a knowledge-base entry shown on the help pages and used by the
// chatbot as a fallback source.
type Article struct {
	ID        int64     `json:"id" db:"id"`
	Slug      string    `json:"slug" db:"slug"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Tags      []string  `json:"tags" db:"tags"`
	Published bool      `json:"published" db:"published"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
