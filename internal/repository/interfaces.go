package repository

import (
	"context"
	"errors"
	"time"

	"github.com/baharkarakas/exercise-tracker/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUsername is returned when an insert loses the uniqueness
	// race on username. The store constraint decides the winner, not an
	// application-level existence check.
	ErrDuplicateUsername = errors.New("username already exists")
)

// LogFilter narrows a user's exercise history. Nil bounds mean unbounded on
// that side; Limit 0 means no truncation.
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

type Users interface {
	Create(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type Exercises interface {
	Create(ctx context.Context, e models.Exercise) (models.Exercise, error)
	// ListByUser returns the user's records under f, in storage order.
	ListByUser(ctx context.Context, userID string, f LogFilter) ([]models.Exercise, error)
	// CountByUser counts every record of the user, ignoring any filter.
	CountByUser(ctx context.Context, userID string) (int64, error)
}
