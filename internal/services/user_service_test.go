package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/exercise-tracker/internal/repository"
	"github.com/baharkarakas/exercise-tracker/internal/repository/memory"
	"github.com/baharkarakas/exercise-tracker/internal/validate"
)

func TestCreateUser(t *testing.T) {
	store := memory.NewStore()
	svc := NewUserService(store.Users())

	u, err := svc.Create(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice", u.Username)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, u.ID, users[0].ID)
}

func TestCreateUserDuplicate(t *testing.T) {
	store := memory.NewStore()
	svc := NewUserService(store.Users())

	_, err := svc.Create(context.Background(), "alice")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "alice")
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCreateUserInvalidPersistsNothing(t *testing.T) {
	store := memory.NewStore()
	svc := NewUserService(store.Users())

	_, err := svc.Create(context.Background(), "john doe")
	var verrs validate.Errs
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "username must be alphabet or numbers", verrs[0].Msg)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCreateUserTrimsInput(t *testing.T) {
	store := memory.NewStore()
	svc := NewUserService(store.Users())

	u, err := svc.Create(context.Background(), "  bob  ")
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)
}
