package workflow

import (
	"github.com/Burkhanovich/article-site/internal/models"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
)

// Result is the structured outcome of a workflow operation. Business rule failures are
// reported here with OK=false rather than as errors so bulk callers can tally them.
type Result struct {
	OK       bool                 `json:"ok"`
	Code     string               `json:"code,omitempty"`
	Message  string               `json:"message"`
	Status   models.ArticleStatus `json:"status,omitempty"`
	Assigned int                  `json:"assigned,omitempty"`
}

// Succeeded builds a successful result reporting the article's resulting status.
func Succeeded(status models.ArticleStatus, message string) *Result {
	return &Result{OK: true, Status: status, Message: message}
}

// Failed builds an unsuccessful result tagged with an error code from pkg/errors.
func Failed(code, message string) *Result {
	return &Result{OK: false, Code: code, Message: message}
}

func Denied(message string) *Result {
	return Failed(appErrors.ErrPermissionDenied.Code, message)
}

func Invalid(message string) *Result {
	return Failed(appErrors.ErrValidation.Code, message)
}

func Ineligible(message string) *Result {
	return Failed(appErrors.ErrInvalidTransition.Code, message)
}

// Err converts a failed result into a typed error; successful results yield nil.
func (r *Result) Err() error {
	if r == nil || r.OK {
		return nil
	}
	return appErrors.FromCode(r.Code, r.Message)
}
