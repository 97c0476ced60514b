package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// ArticleStatus enumerates the editorial workflow states.
type ArticleStatus string

const (
	ArticleStatusDraft            ArticleStatus = "DRAFT"
	ArticleStatusPendingAdmin     ArticleStatus = "PENDING_ADMIN"
	ArticleStatusInReview         ArticleStatus = "IN_REVIEW"
	ArticleStatusChangesRequested ArticleStatus = "CHANGES_REQUESTED"
	ArticleStatusRejected         ArticleStatus = "REJECTED"
	ArticleStatusPublished        ArticleStatus = "PUBLISHED"
)

// ArticleStatuses lists every status in workflow order.
var ArticleStatuses = []ArticleStatus{
	ArticleStatusDraft,
	ArticleStatusPendingAdmin,
	ArticleStatusInReview,
	ArticleStatusChangesRequested,
	ArticleStatusRejected,
	ArticleStatusPublished,
}

// Valid reports whether s is a known status.
func (s ArticleStatus) Valid() bool {
	for _, known := range ArticleStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ReviewMode controls how per-category verdicts combine for multi-category articles.
type ReviewMode string

const (
	ReviewModeAllCategories ReviewMode = "ALL"
	ReviewModeAnyCategory   ReviewMode = "ANY"
)

// Supported content languages. DefaultLanguage is required on every article.
const (
	LanguageUzbek   = "uz"
	LanguageRussian = "ru"
	LanguageEnglish = "en"

	DefaultLanguage = LanguageUzbek
)

// Languages lists the supported content languages.
var Languages = []string{LanguageUzbek, LanguageRussian, LanguageEnglish}

// LocalizedText holds language keyed text stored as JSONB.
type LocalizedText map[string]string

// Get returns the text for lang, falling back to the default language and then to any non-empty value.
func (t LocalizedText) Get(lang string) string {
	if v := t[lang]; v != "" {
		return v
	}
	if v := t[DefaultLanguage]; v != "" {
		return v
	}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if t[k] != "" {
			return t[k]
		}
	}
	return ""
}

// Value implements driver.Valuer.
func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner.
func (t *LocalizedText) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = LocalizedText{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("localized text: unsupported type %T", src)
	}
	out := LocalizedText{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("localized text: %w", err)
	}
	*t = out
	return nil
}

// Article is the editorial unit moving through the workflow.
type Article struct {
	ID              string        `db:"id" json:"id"`
	Slug            string        `db:"slug" json:"slug"`
	Title           LocalizedText `db:"title" json:"title"`
	Content         LocalizedText `db:"content" json:"content"`
	Status          ArticleStatus `db:"status" json:"status"`
	ReviewMode      ReviewMode    `db:"review_mode" json:"review_mode"`
	AuthorID        string        `db:"author_id" json:"author_id"`
	Views           int           `db:"views" json:"views"`
	SubmittedAt     *time.Time    `db:"submitted_at" json:"submitted_at,omitempty"`
	PublishedAt     *time.Time    `db:"published_at" json:"published_at,omitempty"`
	AdminDecisionBy *string       `db:"admin_decision_by" json:"admin_decision_by,omitempty"`
	AdminDecisionAt *time.Time    `db:"admin_decision_at" json:"admin_decision_at,omitempty"`
	AdminNote       *string       `db:"admin_note" json:"admin_note,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`

	CategoryIDs []string `db:"-" json:"category_ids"`
	Keywords    []string `db:"-" json:"keywords"`
}

// EditableByAuthor reports whether the author may still change the article body.
func (a *Article) EditableByAuthor() bool {
	return a.Status == ArticleStatusDraft || a.Status == ArticleStatusChangesRequested
}

// Reviewable reports whether reviewers may record category reviews.
func (a *Article) Reviewable() bool {
	return a.Status == ArticleStatusInReview || a.Status == ArticleStatusChangesRequested
}

// HasCategory reports whether categoryID is one of the article's categories.
func (a *Article) HasCategory(categoryID string) bool {
	for _, id := range a.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// DisplayTitle returns the default-language title.
func (a *Article) DisplayTitle() string {
	return a.Title.Get(DefaultLanguage)
}

// ArticleFilter constrains article listing and search queries.
type ArticleFilter struct {
	Status     []ArticleStatus
	AuthorID   string
	CategoryID string
	Keyword    string
	Query      string
	Language   string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// Keyword is a normalised lower-case tag shared by articles.
type Keyword struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
