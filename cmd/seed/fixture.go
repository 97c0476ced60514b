package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Burkhanovich/article-site/internal/models"
)

type fixture struct {
	Users      []fixtureUser     `yaml:"users"`
	Categories []fixtureCategory `yaml:"categories"`
	Rules      *fixtureRules     `yaml:"rules"`
}

type fixtureUser struct {
	Username  string `yaml:"username"`
	Email     string `yaml:"email"`
	FullName  string `yaml:"full_name"`
	Role      string `yaml:"role"`
	Superuser bool   `yaml:"superuser"`
	Inactive  bool   `yaml:"inactive"`
}

type fixtureCategory struct {
	Slug        string            `yaml:"slug"`
	Name        map[string]string `yaml:"name"`
	Description string            `yaml:"description"`
	Inactive    bool              `yaml:"inactive"`
	Reviewers   []string          `yaml:"reviewers"`
	Policy      *fixturePolicy    `yaml:"policy"`
}

// fixturePolicy starts from models.DefaultCategoryPolicy; only the keys present override it.
type fixturePolicy struct {
	MinApprovalsToPublish    *int  `yaml:"min_approvals_to_publish"`
	MaxRejectionsBeforeBlock *int  `yaml:"max_rejections_before_block"`
	MinRequiredReviews       *int  `yaml:"min_required_reviews"`
	AllowAdminOverride       *bool `yaml:"allow_admin_override"`
	ReviewDeadlineHours      *int  `yaml:"review_deadline_hours"`
	RequireChangesComment    *bool `yaml:"require_changes_comment"`
	RequireRejectComment     *bool `yaml:"require_reject_comment"`
}

type fixtureRules struct {
	Title   map[string]string `yaml:"title"`
	Content map[string]string `yaml:"content"`
}

func loadFixture(path string) (*fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return parseFixture(raw)
}

func parseFixture(raw []byte) (*fixture, error) {
	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *fixture) validate() error {
	users := make(map[string]fixtureUser, len(f.Users))
	for i, u := range f.Users {
		if strings.TrimSpace(u.Username) == "" {
			return fmt.Errorf("users[%d]: username is required", i)
		}
		if _, dup := users[u.Username]; dup {
			return fmt.Errorf("users[%d]: duplicate username %q", i, u.Username)
		}
		switch models.UserRole(u.Role) {
		case models.RoleReader, models.RoleAuthor, models.RoleReviewer, models.RoleAdmin:
		default:
			return fmt.Errorf("user %s: unknown role %q", u.Username, u.Role)
		}
		users[u.Username] = u
	}

	slugs := make(map[string]struct{}, len(f.Categories))
	for i, c := range f.Categories {
		if strings.TrimSpace(c.Slug) == "" {
			return fmt.Errorf("categories[%d]: slug is required", i)
		}
		if _, dup := slugs[c.Slug]; dup {
			return fmt.Errorf("categories[%d]: duplicate slug %q", i, c.Slug)
		}
		slugs[c.Slug] = struct{}{}
		if strings.TrimSpace(c.Name["uz"]) == "" {
			return fmt.Errorf("category %s: name.uz is required", c.Slug)
		}
		for _, username := range c.Reviewers {
			u, ok := users[username]
			if !ok {
				return fmt.Errorf("category %s: reviewer %q is not a seeded user", c.Slug, username)
			}
			if !u.Superuser && models.UserRole(u.Role) != models.RoleReviewer {
				return fmt.Errorf("category %s: %s cannot review", c.Slug, username)
			}
		}
		if c.Policy != nil {
			if err := c.Policy.validate(); err != nil {
				return fmt.Errorf("category %s: %w", c.Slug, err)
			}
		}
	}

	if f.Rules != nil && (strings.TrimSpace(f.Rules.Title["uz"]) == "" || strings.TrimSpace(f.Rules.Content["uz"]) == "") {
		return errors.New("rules: uz title and content are required")
	}
	return nil
}

func (p *fixturePolicy) validate() error {
	for name, v := range map[string]*int{
		"min_approvals_to_publish":    p.MinApprovalsToPublish,
		"max_rejections_before_block": p.MaxRejectionsBeforeBlock,
		"min_required_reviews":        p.MinRequiredReviews,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if p.ReviewDeadlineHours != nil && *p.ReviewDeadlineHours < 1 {
		return fmt.Errorf("review_deadline_hours must be at least 1")
	}
	return nil
}

func (u fixtureUser) model() *models.User {
	return &models.User{
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        models.UserRole(u.Role),
		IsSuperuser: u.Superuser,
		Active:      !u.Inactive,
	}
}

func (c fixtureCategory) model() *models.Category {
	category := &models.Category{
		Slug:     c.Slug,
		Name:     models.LocalizedText(c.Name),
		IsActive: !c.Inactive,
	}
	if c.Description != "" {
		desc := c.Description
		category.Description = &desc
	}
	return category
}

func (p *fixturePolicy) model(categoryID string) *models.CategoryPolicy {
	policy := models.DefaultCategoryPolicy(categoryID)
	setInt(&policy.MinApprovalsToPublish, p.MinApprovalsToPublish)
	setInt(&policy.MaxRejectionsBeforeBlock, p.MaxRejectionsBeforeBlock)
	setInt(&policy.MinRequiredReviews, p.MinRequiredReviews)
	setBool(&policy.AllowAdminOverride, p.AllowAdminOverride)
	setBool(&policy.RequireChangesComment, p.RequireChangesComment)
	setBool(&policy.RequireRejectComment, p.RequireRejectComment)
	policy.ReviewDeadlineHours = p.ReviewDeadlineHours
	return &policy
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
