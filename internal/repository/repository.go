package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/apfdpotter-ops/dryer-dashboard/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// EventRepo is the append-only audit trail of the sampling engine.
type EventRepo interface {
	Append(ctx context.Context, e models.DryerEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.DryerEvent, error)
}

type Repository struct {
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
