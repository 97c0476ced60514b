package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burkhanovich/article-site/internal/models"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
)

type categoryTxStub struct {
	catalog       *categoryCatalog
	users         userDirectory
	notifications []models.Notification
	notifyErr     error
}

func (s *categoryTxStub) WithinCategoryTx(ctx context.Context, fn func(CategoryWriter) error) error {
	pools := map[string][]string{}
	for id, c := range s.catalog.categories {
		pools[id] = append([]string(nil), c.ReviewerIDs...)
	}
	saved := len(s.notifications)
	if err := fn(s); err != nil {
		for id, ids := range pools {
			s.catalog.categories[id].ReviewerIDs = ids
		}
		s.notifications = s.notifications[:saved]
		return err
	}
	return nil
}

func (s *categoryTxStub) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.catalog.GetByID(ctx, id)
}

func (s *categoryTxStub) ReplaceCategoryReviewers(ctx context.Context, categoryID string, userIDs []string) error {
	s.catalog.categories[categoryID].ReviewerIDs = append([]string(nil), userIDs...)
	return nil
}

func (s *categoryTxStub) FindUsers(ctx context.Context, ids []string) ([]models.User, error) {
	return s.users.FindByIDs(ctx, ids)
}

func (s *categoryTxStub) CreateNotifications(ctx context.Context, notifications []models.Notification) error {
	if s.notifyErr != nil {
		return s.notifyErr
	}
	s.notifications = append(s.notifications, notifications...)
	return nil
}

func newTestCategoryService() (*CategoryService, *categoryTxStub, *senderStub) {
	tx := &categoryTxStub{catalog: newCategoryCatalog(), users: newUserDirectory()}
	sender := &senderStub{}
	svc := NewCategoryService(tx, tx.catalog, tx.users, sender, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc, tx, sender
}

func TestCategoryServiceCreate(t *testing.T) {
	svc, tx, _ := newTestCategoryService()
	ctx := context.Background()

	category, err := svc.Create(ctx, "admin", CategoryInput{
		Name:        models.LocalizedText{"uz": "Iqtisodiyot", "en": "Economy"},
		Description: "  ",
		IsActive:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "economy", category.Slug)
	assert.Nil(t, category.Description)
	assert.Contains(t, tx.catalog.categories, category.ID)

	_, err = svc.Create(ctx, "author", CategoryInput{Name: models.LocalizedText{"uz": "X"}})
	assert.True(t, errors.Is(err, appErrors.ErrPermissionDenied))

	_, err = svc.Create(ctx, "admin", CategoryInput{Name: models.LocalizedText{"en": "Only English"}})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Create(ctx, "admin", CategoryInput{Slug: "Bad Slug", Name: models.LocalizedText{"uz": "X"}})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestCategoryServiceSetReviewersNotifiesNewcomers(t *testing.T) {
	svc, tx, sender := newTestCategoryService()

	category, err := svc.SetReviewers(context.Background(), "admin", "history", []string{"rev2", "rev1", "root", "rev1"})
	require.NoError(t, err)

	assert.Equal(t, []string{"rev2", "rev1", "root"}, category.ReviewerIDs)
	assert.Equal(t, []string{"rev2", "rev1", "root"}, tx.catalog.categories["history"].ReviewerIDs)

	require.Len(t, tx.notifications, 2)
	recipients := []string{tx.notifications[0].UserID, tx.notifications[1].UserID}
	assert.ElementsMatch(t, []string{"rev1", "root"}, recipients)
	for _, n := range tx.notifications {
		assert.Equal(t, models.NotificationReviewerAssigned, n.Type)
		assert.Nil(t, n.ArticleID)
		require.NotNil(t, n.Link)
		assert.Equal(t, "/categories/history", *n.Link)
		assert.Contains(t, n.Message, "Tarix")
	}
	require.Len(t, sender.deliveries, 2)
}

func TestCategoryServiceSetReviewersValidation(t *testing.T) {
	svc, tx, sender := newTestCategoryService()
	ctx := context.Background()

	_, err := svc.SetReviewers(ctx, "admin", "science", []string{"rev1", "author"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.SetReviewers(ctx, "admin", "science", []string{"rev1", "ghost"})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = svc.SetReviewers(ctx, "admin", "missing", []string{"rev1"})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = svc.SetReviewers(ctx, "rev1", "science", []string{"rev1"})
	assert.True(t, errors.Is(err, appErrors.ErrPermissionDenied))

	assert.Equal(t, []string{"rev1", "rev2"}, tx.catalog.categories["science"].ReviewerIDs)
	assert.Empty(t, sender.deliveries)
}

func TestCategoryServiceSetReviewersRollsBack(t *testing.T) {
	svc, tx, sender := newTestCategoryService()
	tx.notifyErr = errors.New("insert failed")

	_, err := svc.SetReviewers(context.Background(), "admin", "history", []string{"rev1"})
	require.Error(t, err)

	assert.Equal(t, []string{"rev2"}, tx.catalog.categories["history"].ReviewerIDs)
	assert.Empty(t, sender.deliveries)
}

func TestCategoryServicePolicy(t *testing.T) {
	svc, _, _ := newTestCategoryService()
	ctx := context.Background()

	view, err := svc.Policy(ctx, "science")
	require.NoError(t, err)
	assert.True(t, view.IsDefault)
	assert.Equal(t, 2, view.MinApprovalsToPublish)
	assert.Equal(t, 1, view.MaxRejectionsBeforeBlock)
	assert.Equal(t, 2, view.MinRequiredReviews)
	assert.True(t, view.AllowAdminOverride)

	deadline := 48
	saved, err := svc.UpsertPolicy(ctx, "admin", "science", PolicyInput{
		MinApprovalsToPublish:    1,
		MaxRejectionsBeforeBlock: 0,
		MinRequiredReviews:       1,
		ReviewDeadlineHours:      &deadline,
		RequireRejectComment:     true,
	})
	require.NoError(t, err)
	assert.False(t, saved.IsDefault)

	view, err = svc.Policy(ctx, "science")
	require.NoError(t, err)
	assert.False(t, view.IsDefault)
	assert.Equal(t, 1, view.MinApprovalsToPublish)
	assert.False(t, view.RequireChangesComment)
	assert.Equal(t, 48, *view.ReviewDeadlineHours)

	_, err = svc.Policy(ctx, "missing")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestCategoryServiceUpsertPolicyValidation(t *testing.T) {
	svc, _, _ := newTestCategoryService()
	ctx := context.Background()
	zero := 0

	bad := []PolicyInput{
		{MinApprovalsToPublish: -1},
		{MaxRejectionsBeforeBlock: -1},
		{MinRequiredReviews: -2},
		{ReviewDeadlineHours: &zero},
	}
	for _, in := range bad {
		_, err := svc.UpsertPolicy(ctx, "admin", "science", in)
		assert.True(t, errors.Is(err, appErrors.ErrValidation), "%+v", in)
	}

	_, err := svc.UpsertPolicy(ctx, "author", "science", PolicyInput{})
	assert.True(t, errors.Is(err, appErrors.ErrPermissionDenied))

	_, err = svc.UpsertPolicy(ctx, "admin", "missing", PolicyInput{})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
