package testutils

import (
	"database/sql"
	"path/filepath"
	"testing"

	"exercise-tracker/db"

	"github.com/stretchr/testify/require"
)

func SetupTestDatabase(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	testDB, err := db.ConnectToSQLite(dbPath)
	require.NoError(t, err)

	err = db.InitializeSchema(testDB)
	require.NoError(t, err)

	t.Cleanup(func() { testDB.Close() })
	return testDB
}

// SetupTestRepositoryFactory returns a SQLite-backed factory whose writes go
// through a DBManager, as in production
func SetupTestRepositoryFactory(t *testing.T) *db.RepositoryFactory {
	t.Helper()
	testDB := SetupTestDatabase(t)

	manager := db.NewDBManager()
	t.Cleanup(manager.Stop)

	return db.NewRepositoryFactory(testDB, nil, "exercise_tracker_test", manager)
}

func SetupTestUserRepository(t *testing.T) *db.SQLiteUserRepository {
	t.Helper()
	return SetupTestRepositoryFactory(t).NewUserRepository().(*db.SQLiteUserRepository)
}
