package dto

// CreateRulesRequest creates a set of writing guidelines.
type CreateRulesRequest struct {
	Title    map[string]string `json:"title" validate:"required,min=1,dive,keys,oneof=uz ru en,endkeys,max=300"`
	Content  map[string]string `json:"content" validate:"required,min=1,dive,keys,oneof=uz ru en,endkeys"`
	Activate bool              `json:"activate"`
}
