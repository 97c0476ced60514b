package models

import "time"

// ArticleRules are the author-facing writing guidelines; at most one set is active.
type ArticleRules struct {
	ID        string        `db:"id" json:"id"`
	Title     LocalizedText `db:"title" json:"title"`
	Content   LocalizedText `db:"content" json:"content"`
	IsActive  bool          `db:"is_active" json:"is_active"`
	CreatedBy *string       `db:"created_by" json:"created_by,omitempty"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}
