package services

import (
	"context"

	"github.com/baharkarakas/exercise-tracker/internal/metrics"
	"github.com/baharkarakas/exercise-tracker/internal/models"
	repo "github.com/baharkarakas/exercise-tracker/internal/repository"
	"github.com/baharkarakas/exercise-tracker/internal/validate"
)

type UserService struct {
	r repo.Users
}

func NewUserService(r repo.Users) *UserService { return &UserService{r: r} }

// Create registers a username. Uniqueness is settled by the store on insert;
// a lost race surfaces as repository.ErrDuplicateUsername, never as a second
// user row.
func (s *UserService) Create(ctx context.Context, raw string) (models.User, error) {
	username, errs := validate.Username(raw)
	if errs != nil {
		return models.User{}, errs
	}
	u, err := s.r.Create(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	metrics.UsersCreated.Inc()
	return u, nil
}

// List returns all users in storage order. Callers must not rely on any
// stronger ordering.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.r.List(ctx)
}
