package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store opens transactions whose repositories share one *sqlx.Tx.
type Store struct {
	db *sqlx.DB
}

// NewStore constructs a Store.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// WithinTx runs fn inside a transaction, committing when fn returns nil and rolling back otherwise.
func (s *Store) WithinTx(ctx context.Context, fn func(*Tx) error) (err error) {
	sqlTx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = sqlTx.Rollback()
		}
	}()

	if err = fn(newTx(sqlTx)); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Tx exposes the repositories bound to one transaction.
type Tx struct {
	Users         *UserRepository
	Articles      *ArticleRepository
	Categories    *CategoryRepository
	Reviews       *ReviewRepository
	Assignments   *AssignmentRepository
	History       *HistoryRepository
	Notifications *NotificationRepository
	Rules         *RulesRepository
}

func newTx(db DBTX) *Tx {
	return &Tx{
		Users:         NewUserRepository(db),
		Articles:      NewArticleRepository(db),
		Categories:    NewCategoryRepository(db),
		Reviews:       NewReviewRepository(db),
		Assignments:   NewAssignmentRepository(db),
		History:       NewHistoryRepository(db),
		Notifications: NewNotificationRepository(db),
		Rules:         NewRulesRepository(db),
	}
}
