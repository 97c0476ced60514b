package workflow

import "github.com/Burkhanovich/article-site/internal/models"

// Action names a capability checked by Can.
type Action string

const (
	ActionCreateArticle  Action = "article:create"
	ActionEditArticle    Action = "article:edit"
	ActionSubmitArticle  Action = "article:submit"
	ActionViewArticle    Action = "article:view"
	ActionReview         Action = "review"
	ActionReviewCategory Action = "review:category"
	ActionAdminister     Action = "admin"
)

// Resource is the object an action targets; fields irrelevant to the action may be nil.
type Resource struct {
	Article  *models.Article
	Category *models.Category
}

// Can is the single permission check for the workflow. Inactive or missing users may do nothing.
func Can(user *models.User, action Action, res Resource) bool {
	if user == nil || !user.Active {
		return false
	}

	switch action {
	case ActionCreateArticle:
		return user.IsSuperuser || user.Role == models.RoleAuthor || user.Role == models.RoleAdmin
	case ActionSubmitArticle:
		return isAuthor(user, res.Article)
	case ActionEditArticle:
		return isAuthor(user, res.Article) && res.Article.EditableByAuthor()
	case ActionViewArticle:
		if res.Article == nil {
			return false
		}
		return res.Article.Status == models.ArticleStatusPublished ||
			isAuthor(user, res.Article) || user.IsAdmin() || user.IsReviewer()
	case ActionReview:
		return user.IsReviewer()
	case ActionReviewCategory:
		if user.IsSuperuser {
			return true
		}
		return user.Role == models.RoleReviewer && res.Category != nil && res.Category.HasReviewer(user.ID)
	case ActionAdminister:
		return user.IsAdmin()
	default:
		return false
	}
}

func isAuthor(user *models.User, article *models.Article) bool {
	return article != nil && article.AuthorID == user.ID
}
