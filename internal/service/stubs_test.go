package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/Burkhanovich/article-site/internal/models"
)

// userDirectory is an in-memory user store shared by service tests.
type userDirectory map[string]*models.User

func (d userDirectory) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := d[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (d userDirectory) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := d[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func newUserDirectory() userDirectory {
	return userDirectory{
		"author":   {ID: "author", Username: "aziza", Email: "aziza@example.org", Role: models.RoleAuthor, Active: true},
		"reader":   {ID: "reader", Username: "bekzod", Role: models.RoleReader, Active: true},
		"admin":    {ID: "admin", Username: "admin", Email: "admin@example.org", Role: models.RoleAdmin, Active: true},
		"rev1":     {ID: "rev1", Username: "dilnoza", Email: "dilnoza@example.org", Role: models.RoleReviewer, Active: true},
		"rev2":     {ID: "rev2", Username: "eldor", Email: "eldor@example.org", Role: models.RoleReviewer, Active: true},
		"root":     {ID: "root", Username: "root", Role: models.RoleReader, IsSuperuser: true, Active: true},
		"inactive": {ID: "inactive", Username: "ghost", Role: models.RoleAuthor},
	}
}

// categoryCatalog is an in-memory category and policy store.
type categoryCatalog struct {
	categories map[string]*models.Category
	policies   map[string]*models.CategoryPolicy
}

func newCategoryCatalog() *categoryCatalog {
	return &categoryCatalog{
		categories: map[string]*models.Category{
			"science": {ID: "science", Slug: "science", Name: models.LocalizedText{"uz": "Fan", "en": "Science"}, IsActive: true, ReviewerIDs: []string{"rev1", "rev2"}},
			"history": {ID: "history", Slug: "history", Name: models.LocalizedText{"uz": "Tarix"}, IsActive: true, ReviewerIDs: []string{"rev2"}},
			"archive": {ID: "archive", Slug: "archive", Name: models.LocalizedText{"uz": "Arxiv"}, IsActive: false},
		},
		policies: map[string]*models.CategoryPolicy{},
	}
}

func (c *categoryCatalog) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = category.Slug
	}
	cp := *category
	c.categories[cp.ID] = &cp
	return nil
}

func (c *categoryCatalog) GetByID(ctx context.Context, id string) (*models.Category, error) {
	cat, ok := c.categories[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *cat
	cp.ReviewerIDs = append([]string(nil), cat.ReviewerIDs...)
	return &cp, nil
}

func (c *categoryCatalog) ListByIDs(ctx context.Context, ids []string) ([]models.Category, error) {
	var out []models.Category
	for _, id := range ids {
		if cat, ok := c.categories[id]; ok {
			out = append(out, *cat)
		}
	}
	return out, nil
}

func (c *categoryCatalog) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	var out []models.Category
	for _, cat := range c.categories {
		if activeOnly && !cat.IsActive {
			continue
		}
		out = append(out, *cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (c *categoryCatalog) ListForReviewer(ctx context.Context, userID string) ([]models.Category, error) {
	all, _ := c.List(ctx, true)
	var out []models.Category
	for _, cat := range all {
		if cat.HasReviewer(userID) {
			out = append(out, cat)
		}
	}
	return out, nil
}

func (c *categoryCatalog) GetPolicy(ctx context.Context, categoryID string) (*models.CategoryPolicy, error) {
	p, ok := c.policies[categoryID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (c *categoryCatalog) PoliciesFor(ctx context.Context, ids []string) (map[string]*models.CategoryPolicy, error) {
	out := map[string]*models.CategoryPolicy{}
	for _, id := range ids {
		if p, ok := c.policies[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (c *categoryCatalog) UpsertPolicy(ctx context.Context, policy *models.CategoryPolicy) error {
	cp := *policy
	c.policies[policy.CategoryID] = &cp
	return nil
}
