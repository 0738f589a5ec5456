// Package memory provides in-memory repositories with the same contracts as
// the postgres implementations, used for isolated tests. The username
// uniqueness check happens under the same lock as the insert, matching the
// constraint-on-insert behavior of the real store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/baharkarakas/exercise-tracker/internal/models"
	"github.com/baharkarakas/exercise-tracker/internal/repository"
	"github.com/google/uuid"
)

type Store struct {
	mu        sync.Mutex
	users     []models.User
	exercises []models.Exercise
}

func NewStore() *Store { return &Store{} }

// Users returns the user repository view of the store.
func (s *Store) Users() repository.Users { return (*usersRepo)(s) }

// Exercises returns the exercise repository view of the store.
func (s *Store) Exercises() repository.Exercises { return (*exercisesRepo)(s) }

type usersRepo Store

func (r *usersRepo) Create(ctx context.Context, username string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return models.User{}, repository.ErrDuplicateUsername
		}
	}
	u := models.User{ID: uuid.NewString(), Username: username, CreatedAt: time.Now().UTC()}
	r.users = append(r.users, u)
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

type exercisesRepo Store

func (r *exercisesRepo) Create(ctx context.Context, e models.Exercise) (models.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = time.Now().UTC()
	r.exercises = append(r.exercises, e)
	return e, nil
}

func (r *exercisesRepo) ListByUser(ctx context.Context, userID string, f repository.LogFilter) ([]models.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Exercise
	for _, e := range r.exercises {
		if e.UserID != userID {
			continue
		}
		if f.From != nil && e.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && e.Date.After(*f.To) {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *exercisesRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.exercises {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}
