package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Burkhanovich/article-site/internal/models"
)

const articleColumns = `id, slug, title, content, status, review_mode, author_id, views, submitted_at, published_at,
	admin_decision_by, admin_decision_at, admin_note, created_at, updated_at`

var articleColumnList = []string{
	"a.id", "a.slug", "a.title", "a.content", "a.status", "a.review_mode", "a.author_id", "a.views",
	"a.submitted_at", "a.published_at", "a.admin_decision_by", "a.admin_decision_at", "a.admin_note",
	"a.created_at", "a.updated_at",
}

var articleSortColumns = map[string]string{
	"created_at":   "a.created_at",
	"updated_at":   "a.updated_at",
	"published_at": "a.published_at",
	"views":        "a.views",
}

// ArticleRepository persists articles together with their category and keyword links.
type ArticleRepository struct {
	db DBTX
}

// NewArticleRepository constructs the repository.
func NewArticleRepository(db DBTX) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Create inserts a draft article and links its categories and keywords.
func (r *ArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	article.UpdatedAt = article.CreatedAt
	if article.Status == "" {
		article.Status = models.ArticleStatusDraft
	}
	if article.ReviewMode == "" {
		article.ReviewMode = models.ReviewModeAllCategories
	}

	const query = `INSERT INTO articles (` + articleColumns + `)
VALUES (:id, :slug, :title, :content, :status, :review_mode, :author_id, :views, :submitted_at, :published_at,
	:admin_decision_by, :admin_decision_at, :admin_note, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, article); err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	if err := r.SetCategories(ctx, article.ID, article.CategoryIDs); err != nil {
		return err
	}
	return r.SetKeywords(ctx, article.ID, article.Keywords)
}

// UpdateContent rewrites the author editable fields.
func (r *ArticleRepository) UpdateContent(ctx context.Context, article *models.Article) error {
	article.UpdatedAt = time.Now().UTC()
	const query = `UPDATE articles SET title = :title, content = :content, review_mode = :review_mode, updated_at = :updated_at
WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, article)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if err := expectAffected(result, "article update"); err != nil {
		return err
	}
	if err := r.SetCategories(ctx, article.ID, article.CategoryIDs); err != nil {
		return err
	}
	return r.SetKeywords(ctx, article.ID, article.Keywords)
}

// GetByID fetches an article with its categories and keywords.
func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return r.get(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
}

// GetBySlug fetches an article by its public slug.
func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return r.get(ctx, `SELECT `+articleColumns+` FROM articles WHERE slug = $1`, slug)
}

// GetForUpdate locks the article row for the remainder of the transaction.
func (r *ArticleRepository) GetForUpdate(ctx context.Context, id string) (*models.Article, error) {
	return r.get(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1 FOR UPDATE`, id)
}

func (r *ArticleRepository) get(ctx context.Context, query, arg string) (*models.Article, error) {
	var article models.Article
	if err := r.db.GetContext(ctx, &article, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	if err := r.hydrate(ctx, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *ArticleRepository) hydrate(ctx context.Context, article *models.Article) error {
	categories, err := r.CategoryIDs(ctx, article.ID)
	if err != nil {
		return err
	}
	keywords, err := r.Keywords(ctx, article.ID)
	if err != nil {
		return err
	}
	article.CategoryIDs = categories
	article.Keywords = keywords
	return nil
}

// UpdateStatus persists workflow columns only if the stored status still equals expected.
// sql.ErrNoRows signals that another transaction moved the article first.
func (r *ArticleRepository) UpdateStatus(ctx context.Context, article *models.Article, expected models.ArticleStatus) error {
	const query = `UPDATE articles SET status = :status, submitted_at = :submitted_at, published_at = :published_at,
	admin_decision_by = :admin_decision_by, admin_decision_at = :admin_decision_at, admin_note = :admin_note,
	updated_at = :updated_at
WHERE id = :id AND status = :expected`
	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":                article.ID,
		"status":            article.Status,
		"submitted_at":      article.SubmittedAt,
		"published_at":      article.PublishedAt,
		"admin_decision_by": article.AdminDecisionBy,
		"admin_decision_at": article.AdminDecisionAt,
		"admin_note":        article.AdminNote,
		"updated_at":        article.UpdatedAt,
		"expected":          expected,
	})
	if err != nil {
		return fmt.Errorf("update article status: %w", err)
	}
	return expectAffected(result, "article status")
}

// SlugTaken reports whether slug is used by an article other than excludeID.
func (r *ArticleRepository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM articles WHERE slug = $1 AND id <> $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, slug, excludeID); err != nil {
		return false, fmt.Errorf("check article slug: %w", err)
	}
	return exists, nil
}

// CategoryIDs returns the article's categories in their assigned order.
func (r *ArticleRepository) CategoryIDs(ctx context.Context, articleID string) ([]string, error) {
	const query = `SELECT category_id FROM article_categories WHERE article_id = $1 ORDER BY position, category_id`
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, query, articleID); err != nil {
		return nil, fmt.Errorf("list article categories: %w", err)
	}
	return ids, nil
}

// SetCategories replaces the article's category links preserving order.
func (r *ArticleRepository) SetCategories(ctx context.Context, articleID string, categoryIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM article_categories WHERE article_id = $1`, articleID); err != nil {
		return fmt.Errorf("clear article categories: %w", err)
	}
	for i, categoryID := range categoryIDs {
		const query = `INSERT INTO article_categories (article_id, category_id, position) VALUES ($1, $2, $3)`
		if _, err := r.db.ExecContext(ctx, query, articleID, categoryID, i); err != nil {
			return fmt.Errorf("link article category: %w", err)
		}
	}
	return nil
}

// Keywords returns the article's keyword names.
func (r *ArticleRepository) Keywords(ctx context.Context, articleID string) ([]string, error) {
	const query = `SELECT k.name FROM keywords k JOIN article_keywords ak ON ak.keyword_id = k.id
WHERE ak.article_id = $1 ORDER BY k.name`
	names := []string{}
	if err := r.db.SelectContext(ctx, &names, query, articleID); err != nil {
		return nil, fmt.Errorf("list article keywords: %w", err)
	}
	return names, nil
}

// SetKeywords replaces the keyword links, creating keywords that do not exist yet.
func (r *ArticleRepository) SetKeywords(ctx context.Context, articleID string, names []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM article_keywords WHERE article_id = $1`, articleID); err != nil {
		return fmt.Errorf("clear article keywords: %w", err)
	}
	for _, name := range names {
		var keywordID string
		const upsert = `INSERT INTO keywords (id, name, slug, created_at) VALUES ($1, $2, $3, $4)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`
		if err := r.db.GetContext(ctx, &keywordID, upsert, uuid.NewString(), name, keywordSlug(name), time.Now().UTC()); err != nil {
			return fmt.Errorf("upsert keyword %q: %w", name, err)
		}
		const link = `INSERT INTO article_keywords (article_id, keyword_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
		if _, err := r.db.ExecContext(ctx, link, articleID, keywordID); err != nil {
			return fmt.Errorf("link article keyword: %w", err)
		}
	}
	return nil
}

// IncrementViews bumps the public view counter.
func (r *ArticleRepository) IncrementViews(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE articles SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment article views: %w", err)
	}
	return expectAffected(result, "article views")
}

// List returns articles matching the filter together with the total count.
func (r *ArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error) {
	base := applyArticleFilter(psql.Select().From("articles a"), filter)

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build article count: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	page, size := normalisePage(filter.Page, filter.PageSize)
	sortColumn, ok := articleSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "a.created_at"
	}
	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}

	listSQL, listArgs, err := base.Columns(articleColumnList...).
		OrderBy(fmt.Sprintf("%s %s", sortColumn, order), "a.id").
		Limit(uint64(size)).
		Offset(uint64((page - 1) * size)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build article list: %w", err)
	}
	var articles []models.Article
	if err := r.db.SelectContext(ctx, &articles, listSQL, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	for i := range articles {
		if err := r.hydrate(ctx, &articles[i]); err != nil {
			return nil, 0, err
		}
	}
	return articles, total, nil
}

func applyArticleFilter(b sq.SelectBuilder, filter models.ArticleFilter) sq.SelectBuilder {
	if len(filter.Status) > 0 {
		statuses := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			statuses[i] = string(s)
		}
		b = b.Where(sq.Eq{"a.status": statuses})
	}
	if filter.AuthorID != "" {
		b = b.Where(sq.Eq{"a.author_id": filter.AuthorID})
	}
	if filter.CategoryID != "" {
		b = b.Where("EXISTS (SELECT 1 FROM article_categories fc WHERE fc.article_id = a.id AND fc.category_id = ?)", filter.CategoryID)
	}
	if filter.Keyword != "" {
		b = b.Where(`EXISTS (SELECT 1 FROM article_keywords fk JOIN keywords k ON k.id = fk.keyword_id
WHERE fk.article_id = a.id AND k.name = ?)`, strings.ToLower(strings.TrimSpace(filter.Keyword)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		lang := filter.Language
		if lang == "" {
			lang = models.DefaultLanguage
		}
		like := "%" + q + "%"
		b = b.Where(sq.Or{
			sq.Expr("a.title ->> ? ILIKE ?", lang, like),
			sq.Expr("a.content ->> ? ILIKE ?", lang, like),
			sq.Expr(`EXISTS (SELECT 1 FROM article_keywords sk JOIN keywords k ON k.id = sk.keyword_id
WHERE sk.article_id = a.id AND k.name ILIKE ?)`, like),
			sq.Expr(`EXISTS (SELECT 1 FROM article_categories sc JOIN categories c ON c.id = sc.category_id
WHERE sc.article_id = a.id AND c.name ->> ? ILIKE ?)`, lang, like),
		})
	}
	return b
}

// CountByStatus returns the number of articles per status.
func (r *ArticleRepository) CountByStatus(ctx context.Context) (map[models.ArticleStatus]int, error) {
	var rows []struct {
		Status models.ArticleStatus `db:"status"`
		Count  int                  `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS count FROM articles GROUP BY status`); err != nil {
		return nil, fmt.Errorf("count articles by status: %w", err)
	}
	counts := make(map[models.ArticleStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// ListByStatus returns every article in one of the given statuses, oldest submission first.
func (r *ArticleRepository) ListByStatus(ctx context.Context, statuses []models.ArticleStatus) ([]models.Article, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	query := `SELECT ` + articleColumns + ` FROM articles WHERE status = ANY($1) ORDER BY submitted_at NULLS LAST, created_at`
	var articles []models.Article
	if err := r.db.SelectContext(ctx, &articles, query, pq.Array(values)); err != nil {
		return nil, fmt.Errorf("list articles by status: %w", err)
	}
	for i := range articles {
		if err := r.hydrate(ctx, &articles[i]); err != nil {
			return nil, err
		}
	}
	return articles, nil
}

// ReviewQueue lists reviewable articles in a category the reviewer has not yet reviewed for that category.
func (r *ArticleRepository) ReviewQueue(ctx context.Context, categoryID, reviewerID string, limit int) ([]models.Article, int, error) {
	const where = `FROM articles a
JOIN article_categories ac ON ac.article_id = a.id AND ac.category_id = $1
WHERE a.status IN ('IN_REVIEW', 'CHANGES_REQUESTED')
AND NOT EXISTS (SELECT 1 FROM reviews rv WHERE rv.article_id = a.id AND rv.reviewer_id = $2 AND rv.category_id = $1)`

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) `+where, categoryID, reviewerID); err != nil {
		return nil, 0, fmt.Errorf("count review queue: %w", err)
	}
	if total == 0 {
		return []models.Article{}, 0, nil
	}

	query := `SELECT ` + strings.Join(articleColumnList, ", ") + ` ` + where + ` ORDER BY a.submitted_at NULLS LAST, a.created_at LIMIT $3`
	var articles []models.Article
	if err := r.db.SelectContext(ctx, &articles, query, categoryID, reviewerID, limit); err != nil {
		return nil, 0, fmt.Errorf("list review queue: %w", err)
	}
	return articles, total, nil
}

func keywordSlug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
