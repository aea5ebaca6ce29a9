package main

import (
	"context"
	"errors"
	"testing"

	"exercise-tracker/internal/testutils"
	"exercise-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	users []*models.User
	err   error
}

func (s staticSource) FindAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.users, s.err
}

func TestMigrateUsers(t *testing.T) {
	target := testutils.SetupTestUserRepository(t)
	ctx := context.Background()

	source := staticSource{users: []*models.User{
		{ID: "64b7f0c2a1b2c3d4e5f60718", Username: "alice", Exercises: []models.Exercise{
			testutils.CreateTestExercise("run", 30, "Sun Jan 01 2023"),
			testutils.CreateTestExercise("swim", 45, "Wed Feb 01 2023"),
		}},
		{ID: "64b7f0c2a1b2c3d4e5f60719", Username: "bob"},
	}}

	migrated, skipped, err := migrateUsers(ctx, source, target)
	require.NoError(t, err)
	assert.Equal(t, 2, migrated)
	assert.Zero(t, skipped)

	alice, err := target.FindByID(ctx, "64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)
	require.Len(t, alice.Exercises, 2)
	assert.Equal(t, "swim", alice.Exercises[1].Description)

	migrated, skipped, err = migrateUsers(ctx, source, target)
	require.NoError(t, err)
	assert.Zero(t, migrated)
	assert.Equal(t, 2, skipped)
}

func TestMigrateUsers_SourceError(t *testing.T) {
	target := testutils.SetupTestUserRepository(t)

	_, _, err := migrateUsers(context.Background(), staticSource{err: errors.New("timeout")}, target)
	assert.Error(t, err)
}
