package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/repository"
	"github.com/Burkhanovich/article-site/internal/service"
	"github.com/Burkhanovich/article-site/pkg/config"
	"github.com/Burkhanovich/article-site/pkg/database"
	"github.com/Burkhanovich/article-site/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var (
		file   string
		tokens bool
	)
	flag.StringVar(&file, "file", cfg.Seed.File, "Path to the YAML seed file")
	flag.BoolVar(&tokens, "tokens", cfg.Env != config.EnvProduction, "Print an access token for every seeded user")
	flag.Parse()

	logr, err := logger.New(cfg, logger.WithService("editorial-seed"))
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	fx, err := loadFixture(file)
	if err != nil {
		logr.Fatal("invalid seed file", zap.String("file", file), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("postgres unavailable", zap.Error(err))
	}
	defer db.Close()

	var userIDs map[string]string
	err = repository.NewStore(db).WithinTx(ctx, func(tx *repository.Tx) error {
		var applyErr error
		userIDs, applyErr = apply(ctx, tx, fx, logr)
		return applyErr
	})
	if err != nil {
		logr.Fatal("seed failed", zap.Error(err))
	}
	logr.Info("seed applied",
		zap.Int("users", len(fx.Users)),
		zap.Int("categories", len(fx.Categories)),
		zap.Bool("rules", fx.Rules != nil),
	)

	if !tokens {
		return
	}
	auth := service.NewAuthService(repository.NewUserRepository(db), logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	usernames := make([]string, 0, len(userIDs))
	for username := range userIDs {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)
	for _, username := range usernames {
		token, expiresAt, err := auth.IssueToken(ctx, userIDs[username])
		if err != nil {
			logr.Warn("token not issued", zap.String("username", username), zap.Error(err))
			continue
		}
		fmt.Printf("%-12s expires %s\n  %s\n", username, expiresAt.Format(time.RFC3339), token)
	}
}

// apply writes the fixture inside tx and returns user ids keyed by username.
func apply(ctx context.Context, tx *repository.Tx, fx *fixture, logr *zap.Logger) (map[string]string, error) {
	userIDs := make(map[string]string, len(fx.Users))
	for _, u := range fx.Users {
		user := u.model()
		if err := tx.Users.Upsert(ctx, user); err != nil {
			return nil, err
		}
		userIDs[u.Username] = user.ID
	}

	for _, c := range fx.Categories {
		category := c.model()
		if err := tx.Categories.Create(ctx, category); err != nil {
			return nil, err
		}
		reviewers := make([]string, 0, len(c.Reviewers))
		for _, username := range c.Reviewers {
			reviewers = append(reviewers, userIDs[username])
		}
		if err := tx.Categories.SetReviewers(ctx, category.ID, reviewers); err != nil {
			return nil, err
		}
		if c.Policy != nil {
			if err := tx.Categories.UpsertPolicy(ctx, c.Policy.model(category.ID)); err != nil {
				return nil, err
			}
		}
		logr.Debug("category seeded", zap.String("slug", c.Slug), zap.Int("reviewers", len(reviewers)))
	}

	if fx.Rules == nil {
		return userIDs, nil
	}
	active, err := tx.Rules.GetActive(ctx)
	switch {
	case err == nil && active.Title.Get("uz") == fx.Rules.Title["uz"]:
		logr.Debug("rules already active", zap.String("id", active.ID))
		return userIDs, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}
	rules := &models.ArticleRules{
		Title:   models.LocalizedText(fx.Rules.Title),
		Content: models.LocalizedText(fx.Rules.Content),
	}
	if err := tx.Rules.Create(ctx, rules); err != nil {
		return nil, err
	}
	if err := tx.Rules.Activate(ctx, rules.ID, time.Now()); err != nil {
		return nil, err
	}
	return userIDs, nil
}
