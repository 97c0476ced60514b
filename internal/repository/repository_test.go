package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burkhanovich/article-site/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var articleRowColumns = []string{"id", "slug", "title", "content", "status", "review_mode", "author_id", "views",
	"submitted_at", "published_at", "admin_decision_by", "admin_decision_at", "admin_note", "created_at", "updated_at"}

func articleRow(id string, status models.ArticleStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(articleRowColumns).
		AddRow(id, "slug-"+id, []byte(`{"uz":"Sarlavha","en":"Title"}`), []byte(`{"uz":"Matn"}`), string(status), "ALL", "author-1", 3,
			nil, nil, nil, nil, nil, now, now)
}

func expectHydrate(mock sqlmock.Sqlmock, articleID string, categories []string, keywords []string) {
	catRows := sqlmock.NewRows([]string{"category_id"})
	for _, c := range categories {
		catRows.AddRow(c)
	}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT category_id FROM article_categories WHERE article_id = $1")).
		WithArgs(articleID).WillReturnRows(catRows)
	kwRows := sqlmock.NewRows([]string{"name"})
	for _, k := range keywords {
		kwRows.AddRow(k)
	}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT k.name FROM keywords k")).
		WithArgs(articleID).WillReturnRows(kwRows)
}

func TestArticleRepositoryGetForUpdateHydrates(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewArticleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM articles WHERE id = $1 FOR UPDATE")).
		WithArgs("art-1").
		WillReturnRows(articleRow("art-1", models.ArticleStatusInReview))
	expectHydrate(mock, "art-1", []string{"cat-1", "cat-2"}, []string{"go"})

	article, err := repo.GetForUpdate(context.Background(), "art-1")
	require.NoError(t, err)
	assert.Equal(t, models.ArticleStatusInReview, article.Status)
	assert.Equal(t, "Title", article.Title.Get("en"))
	assert.Equal(t, "Sarlavha", article.Title.Get("ru"))
	assert.Equal(t, []string{"cat-1", "cat-2"}, article.CategoryIDs)
	assert.Equal(t, []string{"go"}, article.Keywords)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepositoryGetNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewArticleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM articles WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestArticleRepositoryUpdateStatusCompareAndSwap(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewArticleRepository(db)

	article := &models.Article{ID: "art-1", Status: models.ArticleStatusPublished, UpdatedAt: time.Now()}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET status =")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), article, models.ArticleStatusInReview))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET status =")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateStatus(context.Background(), article, models.ArticleStatusInReview)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepositoryListBuildsFilteredQuery(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewArticleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles a WHERE a.status IN ($1) AND a.author_id = $2")).
		WithArgs("PUBLISHED", "author-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT a.id, a.slug")).
		WithArgs("PUBLISHED", "author-1").
		WillReturnRows(articleRow("art-9", models.ArticleStatusPublished))
	expectHydrate(mock, "art-9", []string{"cat-1"}, nil)

	articles, total, err := repo.List(context.Background(), models.ArticleFilter{
		Status:   []models.ArticleStatus{models.ArticleStatusPublished},
		AuthorID: "author-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, articles, 1)
	assert.Equal(t, "art-9", articles[0].ID)
	assert.Empty(t, articles[0].Keywords)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepositorySearchMatchesLanguageFields(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewArticleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("a.title ->> $2 ILIKE $3 OR a.content ->> $4 ILIKE $5")).
		WithArgs("PUBLISHED", "en", "%climate%", "en", "%climate%", "%climate%", "en", "%climate%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT a.id, a.slug")).
		WillReturnRows(sqlmock.NewRows(articleRowColumns))

	articles, total, err := repo.List(context.Background(), models.ArticleFilter{
		Status:   []models.ArticleStatus{models.ArticleStatusPublished},
		Query:    " climate ",
		Language: "en",
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, articles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepositoryUpsertUsesConflictTarget(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	created := time.Now().Add(-time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (article_id, reviewer_id, category_id) DO UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("rev-existing", created))

	review := &models.Review{ArticleID: "a", ReviewerID: "r", CategoryID: "c", Decision: models.ReviewDecisionApprove}
	require.NoError(t, repo.Upsert(context.Background(), review))
	assert.Equal(t, "rev-existing", review.ID)
	assert.Equal(t, created, review.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryGetOrCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)
	now := time.Now()
	cols := []string{"id", "article_id", "reviewer_id", "assigned_by", "status", "review_comment", "assigned_at", "reviewed_at", "updated_at"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reviewer_assignments")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM reviewer_assignments WHERE article_id = $1 AND reviewer_id = $2")).
		WithArgs("a", "r").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("as-1", "a", "r", nil, "PENDING", nil, now, nil, now))

	assignment, created, err := repo.GetOrCreate(context.Background(), "a", "r", nil, now)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.AssignmentStatusPending, assignment.Status)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reviewer_assignments")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM reviewer_assignments WHERE article_id = $1 AND reviewer_id = $2")).
		WithArgs("a", "r").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("as-1", "a", "r", nil, "APPROVED", "ok", now, now, now))

	assignment, created, err = repo.GetOrCreate(context.Background(), "a", "r", nil, now)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, models.AssignmentStatusApproved, assignment.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryResetForArticle(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE reviewer_assignments SET status = $2, reviewed_at = NULL")).
		WithArgs("a", models.AssignmentStatusPending, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.ResetForArticle(context.Background(), "a", time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepositoryOrdering(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewHistoryRepository(db)
	cols := []string{"id", "article_id", "from_status", "to_status", "changed_by", "reason", "changed_at"}

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY changed_at ASC, id ASC")).
		WithArgs("a").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("h1", "a", "DRAFT", "PENDING_ADMIN", "u", "Author submitted", time.Now()))
	entries, err := repo.ListByArticle(context.Background(), "a", true)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ArticleStatusPendingAdmin, entries[0].ToStatus)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY changed_at DESC, id DESC")).
		WithArgs("a").
		WillReturnRows(sqlmock.NewRows(cols))
	_, err = repo.ListByArticle(context.Background(), "a", false)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositoryMarkReadChecksOwnership(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET is_read = TRUE")).
		WithArgs("n1", "other-user", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkRead(context.Background(), "n1", "other-user", time.Now())
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositoryCreateBatchSingleStatement(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notifications (id,user_id,type,title,message,link,article_id,is_read,created_at,read_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10),($11,")).
		WillReturnResult(sqlmock.NewResult(0, 2))

	batch := []models.Notification{
		{UserID: "u1", Type: models.NotificationArticlePublished, Title: "t", Message: "m"},
		{UserID: "u2", Type: models.NotificationArticlePublished, Title: "t", Message: "m"},
	}
	require.NoError(t, repo.CreateBatch(context.Background(), batch))
	assert.NotEmpty(t, batch[0].ID)
	assert.NotEqual(t, batch[0].ID, batch[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())

	require.NoError(t, repo.CreateBatch(context.Background(), nil))
}

func TestNotificationRepositoryListUnread(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM notifications WHERE (user_id = $1 AND is_read = $2)")).
		WithArgs("u1", false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id LIMIT 20 OFFSET 0")).
		WithArgs("u1", false).
		WillReturnRows(sqlmock.NewRows(notificationColumnList).
			AddRow("n1", "u1", "GENERAL", "Hello", "World", nil, nil, false, time.Now(), nil))

	list, total, err := repo.List(context.Background(), models.NotificationFilter{UserID: "u1", UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, models.NotificationGeneral, list[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepositoryGetPolicyAbsent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCategoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM category_policies WHERE category_id = $1")).
		WithArgs("c1").
		WillReturnError(sql.ErrNoRows)

	policy, err := repo.GetPolicy(context.Background(), "c1")
	require.NoError(t, err)
	assert.Nil(t, policy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryListAdmins(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE active = TRUE AND (role = $1 OR is_superuser = TRUE)")).
		WithArgs(models.RoleAdmin).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "full_name", "role", "is_superuser", "active", "created_at", "updated_at"}).
			AddRow("u1", "editor", "editor@x.org", "Editor", "ADMIN", false, true, now, now).
			AddRow("u2", "root", "root@x.org", "Root", "READER", true, true, now, now))

	admins, err := repo.ListAdmins(context.Background())
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.True(t, admins[1].IsAdmin())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRulesRepositoryActivateWithinTx(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE article_rules SET is_active = FALSE")).
		WithArgs("r2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE article_rules SET is_active = TRUE")).
		WithArgs("r2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.WithinTx(context.Background(), func(tx *Tx) error {
		return tx.Rules.Activate(context.Background(), "r2", time.Now())
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreWithinTxRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE article_rules SET is_active = FALSE")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE article_rules SET is_active = TRUE")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.WithinTx(context.Background(), func(tx *Tx) error {
		return tx.Rules.Activate(context.Background(), "missing", time.Now())
	})
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}
