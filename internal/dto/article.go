package dto

// ArticleRequest is the payload for creating or updating a draft. Title and content are keyed
// by language code (uz, ru, en); the Uzbek title is mandatory.
type ArticleRequest struct {
	Title       map[string]string `json:"title" validate:"required,min=1,dive,keys,oneof=uz ru en,endkeys,max=300"`
	Content     map[string]string `json:"content" validate:"required,min=1,dive,keys,oneof=uz ru en,endkeys"`
	CategoryIDs []string          `json:"category_ids" validate:"required,min=1,dive,required"`
	Keywords    string            `json:"keywords" validate:"max=1000"`
	ReviewMode  string            `json:"review_mode" validate:"omitempty,oneof=ALL ANY"`
}

// ArticleListQuery holds the query string of article listing and search endpoints.
type ArticleListQuery struct {
	Query      string   `form:"q" validate:"max=200"`
	Status     []string `form:"status" validate:"dive,oneof=DRAFT PENDING_ADMIN IN_REVIEW CHANGES_REQUESTED REJECTED PUBLISHED"`
	CategoryID string   `form:"category_id"`
	Keyword    string   `form:"keyword"`
	Language   string   `form:"lang" validate:"omitempty,oneof=uz ru en"`
	Page       int      `form:"page" validate:"omitempty,min=1"`
	PageSize   int      `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy     string   `form:"sort_by" validate:"omitempty,oneof=created_at updated_at published_at views"`
	SortOrder  string   `form:"sort_order" validate:"omitempty,oneof=asc desc ASC DESC"`
}
