package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/workflow"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
)

const maxSlugLength = 300

// ArticleTxRunner runs draft writes in one transaction.
type ArticleTxRunner interface {
	WithinArticleTx(ctx context.Context, fn func(ArticleWriter) error) error
}

type articleReader interface {
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error)
	IncrementViews(ctx context.Context, id string) error
}

type categoryResolver interface {
	ListByIDs(ctx context.Context, ids []string) ([]models.Category, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// ArticleInput carries the author editable fields of an article.
type ArticleInput struct {
	Title       models.LocalizedText
	Content     models.LocalizedText
	CategoryIDs []string
	Keywords    string
	ReviewMode  models.ReviewMode
}

// ArticleService manages drafts and public reads. Status changes belong to WorkflowService.
type ArticleService struct {
	runner     ArticleTxRunner
	articles   articleReader
	categories categoryResolver
	users      userFinder
	logger     *zap.Logger
}

// NewArticleService constructs an ArticleService.
func NewArticleService(runner ArticleTxRunner, articles articleReader, categories categoryResolver, users userFinder, logger *zap.Logger) *ArticleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArticleService{runner: runner, articles: articles, categories: categories, users: users, logger: logger}
}

// Create stores a new draft owned by authorID with a unique slug derived from its title.
func (s *ArticleService) Create(ctx context.Context, authorID string, in ArticleInput) (*models.Article, error) {
	author, err := s.actor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !workflow.Can(author, workflow.ActionCreateArticle, workflow.Resource{}) {
		return nil, appErrors.Clone(appErrors.ErrPermissionDenied, "only authors can create articles")
	}
	article := &models.Article{AuthorID: author.ID, Status: models.ArticleStatusDraft}
	if err := s.apply(ctx, article, in); err != nil {
		return nil, err
	}

	err = s.runner.WithinArticleTx(ctx, func(w ArticleWriter) error {
		slug, err := uniqueSlug(ctx, w, Slugify(article.Title.Get(models.DefaultLanguage)), "")
		if err != nil {
			return err
		}
		article.Slug = slug
		return w.Create(ctx, article)
	})
	if err != nil {
		return nil, internalErr(err, "failed to create article")
	}
	s.logger.Info("article created", zap.String("article_id", article.ID), zap.String("author_id", author.ID), zap.String("slug", article.Slug))
	return article, nil
}

// Update rewrites title, content, categories and keywords while the article is editable.
func (s *ArticleService) Update(ctx context.Context, articleID, userID string, in ArticleInput) (*models.Article, error) {
	user, err := s.actor(ctx, userID)
	if err != nil {
		return nil, err
	}

	var updated *models.Article
	err = s.runner.WithinArticleTx(ctx, func(w ArticleWriter) error {
		article, err := w.GetForUpdate(ctx, articleID)
		if err != nil {
			return notFoundOr(err, "article not found", "failed to load article")
		}
		if article.AuthorID != user.ID {
			return appErrors.Clone(appErrors.ErrPermissionDenied, "only the author can edit this article")
		}
		if !workflow.Can(user, workflow.ActionEditArticle, workflow.Resource{Article: article}) {
			return appErrors.Clone(appErrors.ErrInvalidTransition,
				fmt.Sprintf("article cannot be edited while %s", article.Status))
		}
		if err := s.apply(ctx, article, in); err != nil {
			return err
		}
		if err := w.UpdateContent(ctx, article); err != nil {
			return internalErr(err, "failed to update article")
		}
		updated = article
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("article updated", zap.String("article_id", updated.ID), zap.String("user_id", user.ID))
	return updated, nil
}

// Get returns an article by id. Unpublished articles are visible to their author, reviewers and admins only.
func (s *ArticleService) Get(ctx context.Context, id, viewerID string) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "article not found", "failed to load article")
	}
	if err := s.checkVisible(ctx, article, viewerID); err != nil {
		return nil, err
	}
	return article, nil
}

// GetBySlug returns an article by slug and counts a view when a published article is read by someone other than its author.
func (s *ArticleService) GetBySlug(ctx context.Context, slug, viewerID string) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err, "article not found", "failed to load article")
	}
	if err := s.checkVisible(ctx, article, viewerID); err != nil {
		return nil, err
	}
	if article.Status == models.ArticleStatusPublished && article.AuthorID != viewerID {
		if err := s.articles.IncrementViews(ctx, article.ID); err != nil {
			s.logger.Warn("failed to count article view", zap.String("article_id", article.ID), zap.Error(err))
		} else {
			article.Views++
		}
	}
	return article, nil
}

// ListByAuthor returns the author's own articles in any status.
func (s *ArticleService) ListByAuthor(ctx context.Context, authorID string, filter models.ArticleFilter) ([]models.Article, *models.Pagination, error) {
	filter.AuthorID = authorID
	filter.Query = ""
	return s.list(ctx, filter)
}

// List returns articles across all authors for administrators.
func (s *ArticleService) List(ctx context.Context, actorID string, filter models.ArticleFilter) ([]models.Article, *models.Pagination, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	if !workflow.Can(actor, workflow.ActionAdminister, workflow.Resource{}) {
		return nil, nil, appErrors.Clone(appErrors.ErrPermissionDenied, "admin access required")
	}
	for _, status := range filter.Status {
		if !status.Valid() {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", status))
		}
	}
	return s.list(ctx, filter)
}

// Search finds published articles whose title, content, keywords or category names match query.
func (s *ArticleService) Search(ctx context.Context, query string, filter models.ArticleFilter) ([]models.Article, *models.Pagination, error) {
	if filter.Language == "" {
		filter.Language = models.DefaultLanguage
	}
	if !supportedLanguage(filter.Language) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported language %q", filter.Language))
	}
	filter.Status = []models.ArticleStatus{models.ArticleStatusPublished}
	filter.AuthorID = ""
	filter.Query = strings.TrimSpace(query)
	if filter.SortBy == "" {
		filter.SortBy = "published_at"
	}
	return s.list(ctx, filter)
}

func (s *ArticleService) list(ctx context.Context, filter models.ArticleFilter) ([]models.Article, *models.Pagination, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	items, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, nil, internalErr(err, "failed to list articles")
	}
	if items == nil {
		items = []models.Article{}
	}
	return items, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

func (s *ArticleService) checkVisible(ctx context.Context, article *models.Article, viewerID string) error {
	if article.Status == models.ArticleStatusPublished {
		return nil
	}
	if viewerID == "" {
		return appErrors.Clone(appErrors.ErrNotFound, "article not found")
	}
	viewer, err := s.users.FindByID(ctx, viewerID)
	if err != nil {
		return notFoundOr(err, "article not found", "failed to load user")
	}
	if !workflow.Can(viewer, workflow.ActionViewArticle, workflow.Resource{Article: article}) {
		return appErrors.Clone(appErrors.ErrNotFound, "article not found")
	}
	return nil
}

func (s *ArticleService) actor(ctx context.Context, id string) (*models.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user not found", "failed to load user")
	}
	if !user.Active {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "user is inactive")
	}
	return user, nil
}

// apply validates in and copies it onto article.
func (s *ArticleService) apply(ctx context.Context, article *models.Article, in ArticleInput) error {
	title, content, err := normaliseLocalized(in.Title, in.Content)
	if err != nil {
		return err
	}
	mode := in.ReviewMode
	if mode == "" {
		mode = models.ReviewModeAllCategories
	}
	if mode != models.ReviewModeAllCategories && mode != models.ReviewModeAnyCategory {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown review mode %q", in.ReviewMode))
	}
	categoryIDs, err := s.resolveCategories(ctx, in.CategoryIDs)
	if err != nil {
		return err
	}

	article.Title = title
	article.Content = content
	article.ReviewMode = mode
	article.CategoryIDs = categoryIDs
	article.Keywords = ParseKeywords(in.Keywords)
	return nil
}

func (s *ArticleService) resolveCategories(ctx context.Context, ids []string) ([]string, error) {
	ids = uniqueStrings(ids)
	if len(ids) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one category is required")
	}
	found, err := s.categories.ListByIDs(ctx, ids)
	if err != nil {
		return nil, internalErr(err, "failed to load categories")
	}
	active := make(map[string]bool, len(found))
	for _, c := range found {
		active[c.ID] = c.IsActive
	}
	for _, id := range ids {
		isActive, ok := active[id]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown category %s", id))
		}
		if !isActive {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("category %s is inactive", id))
		}
	}
	return ids, nil
}

// normaliseLocalized trims both maps and requires at least one language with both a title and content.
// The default language title is required because the slug is derived from it.
func normaliseLocalized(title, content models.LocalizedText) (models.LocalizedText, models.LocalizedText, error) {
	outTitle := models.LocalizedText{}
	outContent := models.LocalizedText{}
	for lang, v := range title {
		if !supportedLanguage(lang) {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported language %q", lang))
		}
		if v = strings.TrimSpace(v); v != "" {
			outTitle[lang] = v
		}
	}
	for lang, v := range content {
		if !supportedLanguage(lang) {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported language %q", lang))
		}
		if v = strings.TrimSpace(v); v != "" {
			outContent[lang] = v
		}
	}
	complete := false
	for lang := range outTitle {
		if outContent[lang] != "" {
			complete = true
			break
		}
	}
	if !complete {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "at least one language needs both a title and content")
	}
	if outTitle[models.DefaultLanguage] == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("title in %q is required", models.DefaultLanguage))
	}
	return outTitle, outContent, nil
}

func supportedLanguage(lang string) bool {
	for _, known := range models.Languages {
		if lang == known {
			return true
		}
	}
	return false
}

// ParseKeywords splits a comma separated list into unique lower-case keywords, keeping first-seen order.
func ParseKeywords(raw string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		kw := strings.ToLower(strings.Join(strings.Fields(part), " "))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

// Slugify lower-cases title and joins its letter and digit runs with hyphens.
func Slugify(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '\'' || r == '‘' || r == '’' || r == '`':
			// o'zbek -> ozbek
		default:
			pendingDash = true
		}
	}
	slug := truncate(b.String(), maxSlugLength)
	slug = strings.TrimRight(slug, "-")
	if slug == "" {
		return "article"
	}
	return slug
}

var errSlugExhausted = errors.New("no free slug")

func uniqueSlug(ctx context.Context, w ArticleWriter, base, excludeID string) (string, error) {
	candidate := base
	for i := 2; i < 1000; i++ {
		taken, err := w.SlugTaken(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("%w for %q", errSlugExhausted, base)
}
