package user

import (
	"context"
	"errors"
	"testing"

	"exercise-tracker/db"
	"exercise-tracker/internal/httpapi"
	"exercise-tracker/internal/testutils"
	"exercise-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateOrFetch(t *testing.T) {
	repo := testutils.SetupTestUserRepository(t)
	service := NewUserService(repo)
	ctx := context.Background()

	first, err := service.CreateOrFetch(ctx, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := service.CreateOrFetch(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	users, err := service.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserService_CreateOrFetch_RequiresUsername(t *testing.T) {
	repo := testutils.SetupTestUserRepository(t)
	service := NewUserService(repo)
	ctx := context.Background()

	for _, username := range []string{"", "   "} {
		_, err := service.CreateOrFetch(ctx, username)
		require.Error(t, err)
		assert.True(t, httpapi.IsKind(err, httpapi.ValidationError))
		assert.Equal(t, "Username is required", httpapi.AsError(err).Message)
	}

	users, err := service.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users)
}

// racingRepository simulates another request registering the same name
// between the lookup and the insert.
type racingRepository struct {
	db.UserRepository
	winner  *models.User
	lookups int
}

func (r *racingRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, db.ErrNotFound
	}
	return r.winner, nil
}

func (r *racingRepository) Create(ctx context.Context, username string) (*models.User, error) {
	return nil, db.ErrDuplicate
}

func TestUserService_CreateOrFetch_LosesRegistrationRace(t *testing.T) {
	repo := &racingRepository{winner: &models.User{ID: "winner-id", Username: "alice"}}
	service := NewUserService(repo)

	got, err := service.CreateOrFetch(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "winner-id", got.ID)
	assert.Equal(t, 2, repo.lookups)
}

type failingRepository struct {
	db.UserRepository
}

func (failingRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, errors.New("connection refused")
}

func (failingRepository) FindAll(ctx context.Context) ([]models.UserSummary, error) {
	return nil, errors.New("connection refused")
}

func TestUserService_StoreFailuresAreInternal(t *testing.T) {
	service := NewUserService(failingRepository{})

	_, err := service.CreateOrFetch(context.Background(), "alice")
	assert.True(t, httpapi.IsKind(err, httpapi.InternalError))

	_, err = service.FindAll(context.Background())
	assert.True(t, httpapi.IsKind(err, httpapi.InternalError))
}
