package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"exercise-tracker/db"
	"exercise-tracker/internal/config"
	"exercise-tracker/models"

	"github.com/sirupsen/logrus"
)

type userSource interface {
	FindAllUsers(ctx context.Context) ([]*models.User, error)
}

type userImporter interface {
	Import(ctx context.Context, user *models.User) (bool, error)
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Check if MongoDB URI is set
	if cfg.MongoURI == "" {
		logrus.Fatal("MONGO_URI is not set. Migration cannot continue.")
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = filepath.Join("data", cfg.DatabaseName+".db")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logrus.Info("Connecting to MongoDB...")
	mongoClient, err := db.ConnectToMongo(ctx, cfg.MongoURI)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	logrus.Info("Connecting to SQLite...")
	sqliteDB, err := db.ConnectToSQLite(sqlitePath)
	if err != nil {
		logrus.Fatalf("Failed to connect to SQLite: %v", err)
	}
	defer sqliteDB.Close()

	if err := db.InitializeSchema(sqliteDB); err != nil {
		logrus.Fatalf("Failed to initialize SQLite schema: %v", err)
	}

	mongoUserRepo := db.NewMongoUserRepository(mongoClient, cfg.DatabaseName, db.UsersCollection)
	sqliteUserRepo := db.NewSQLiteUserRepository(sqliteDB, nil)

	logrus.Info("Migrating users...")
	migrated, skipped, err := migrateUsers(ctx, mongoUserRepo, sqliteUserRepo)
	if err != nil {
		logrus.Fatalf("Migration failed: %v", err)
	}

	logrus.WithFields(logrus.Fields{"migrated": migrated, "skipped": skipped}).Info("Migration completed successfully!")
	logrus.Infof("SQLite database is available at: %s", sqlitePath)
	logrus.Info("To use SQLite, set DATABASE_TYPE=sqlite in your .env file")
}

// migrateUsers copies every user with its exercises. Users already present
// in the target are counted as skipped.
func migrateUsers(ctx context.Context, source userSource, target userImporter) (migrated, skipped int, err error) {
	users, err := source.FindAllUsers(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	for _, user := range users {
		inserted, err := target.Import(ctx, user)
		if err != nil {
			return migrated, skipped, fmt.Errorf("failed to import user %s: %w", user.ID, err)
		}
		if inserted {
			migrated++
		} else {
			logrus.WithField("user_id", user.ID).Warn("User already exists in SQLite, skipping")
			skipped++
		}
	}
	return migrated, skipped, nil
}
