package db_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"exercise-tracker/db"
	"exercise-tracker/internal/testutils"
	"exercise-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteUserRepository_Integration(t *testing.T) {
	repo := testutils.SetupTestUserRepository(t)
	ctx := context.Background()

	t.Run("CreateAndFind", func(t *testing.T) {
		created, err := repo.Create(ctx, "alice")
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.Empty(t, created.Exercises)

		byName, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byName.ID)

		byID, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)
		assert.NotNil(t, byID.Exercises)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, err := repo.Create(ctx, "alice")
		assert.ErrorIs(t, err, db.ErrDuplicate)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, db.ErrNotFound)

		_, err = repo.FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, db.ErrNotFound)

		_, err = repo.AppendExercise(ctx, "missing", testutils.CreateTestExercise("run", 10, "Sun Jan 01 2023"))
		assert.ErrorIs(t, err, db.ErrNotFound)
	})

	t.Run("FindAllInInsertionOrder", func(t *testing.T) {
		_, err := repo.Create(ctx, "bob")
		require.NoError(t, err)

		users, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Username)
		assert.Equal(t, "bob", users[1].Username)
	})

	t.Run("AppendExercisePreservesOrder", func(t *testing.T) {
		user, err := repo.Create(ctx, "carol")
		require.NoError(t, err)

		dates := []string{"Sun Jan 01 2023", "Wed Feb 01 2023", "Wed Mar 01 2023"}
		for i, date := range dates {
			got, err := repo.AppendExercise(ctx, user.ID, testutils.CreateTestExercise("ex", float64(i+1), date))
			require.NoError(t, err)
			assert.Equal(t, "carol", got.Username)
			assert.Equal(t, user.ID, got.ID)
		}

		stored, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, stored.Exercises, 3)
		for i, date := range dates {
			assert.Equal(t, date, stored.Exercises[i].Date)
			assert.Equal(t, models.Duration(i+1), stored.Exercises[i].Duration)
		}
	})

	t.Run("NaNDurationRoundTrips", func(t *testing.T) {
		user, err := repo.Create(ctx, "dave")
		require.NoError(t, err)

		_, err = repo.AppendExercise(ctx, user.ID, models.Exercise{Description: "?", Duration: models.Duration(math.NaN()), Date: models.InvalidDate})
		require.NoError(t, err)

		stored, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, stored.Exercises, 1)
		assert.True(t, math.IsNaN(float64(stored.Exercises[0].Duration)))
		assert.Equal(t, models.InvalidDate, stored.Exercises[0].Date)
	})
}

func TestSQLiteUserRepository_ConcurrentAppendsAreAllPersisted(t *testing.T) {
	repo := testutils.SetupTestUserRepository(t)
	ctx := context.Background()

	user, err := repo.Create(ctx, "racer")
	require.NoError(t, err)

	const appends = 20
	var wg sync.WaitGroup
	errs := make(chan error, appends)
	for i := 0; i < appends; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := repo.AppendExercise(ctx, user.ID, testutils.CreateTestExercise("lap", float64(n), "Sun Jan 01 2023"))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Exercises, appends)
}

func TestSQLiteUserRepository_Import(t *testing.T) {
	repo := testutils.SetupTestUserRepository(t)
	ctx := context.Background()

	user := &models.User{
		ID:       "64b7f0c2a1b2c3d4e5f60718",
		Username: "imported",
		Exercises: []models.Exercise{
			testutils.CreateTestExercise("row", 20, "Sun Jan 01 2023"),
		},
	}

	inserted, err := repo.Import(ctx, user)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Import(ctx, user)
	require.NoError(t, err)
	assert.False(t, inserted)

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Exercises, stored.Exercises)
}

func TestSQLiteUserRepository_Ping(t *testing.T) {
	repo := testutils.SetupTestUserRepository(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
