package db

import (
	"context"
	"database/sql"
	"errors"

	"exercise-tracker/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Repository defines a common interface for all repositories
type Repository interface {
	Ping(ctx context.Context) error
	Close() error
}

// UserRepository defines the interface for user and exercise operations
type UserRepository interface {
	Repository
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.UserSummary, error)
	// Create inserts a user with no exercises. It returns ErrDuplicate when
	// the username is already taken.
	Create(ctx context.Context, username string) (*models.User, error)
	// AppendExercise pushes an exercise onto the user's log in a single
	// store operation and returns the user without its exercises loaded.
	AppendExercise(ctx context.Context, userID string, exercise models.Exercise) (*models.User, error)
}

// RepositoryFactory creates repositories based on the database type
type RepositoryFactory struct {
	SQLiteDB    *sql.DB
	MongoClient *mongo.Client
	DBName      string
	Manager     *DBManager
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(sqliteDB *sql.DB, mongoClient *mongo.Client, dbName string, manager *DBManager) *RepositoryFactory {
	return &RepositoryFactory{
		SQLiteDB:    sqliteDB,
		MongoClient: mongoClient,
		DBName:      dbName,
		Manager:     manager,
	}
}

// NewUserRepository creates a new user repository
func (f *RepositoryFactory) NewUserRepository() UserRepository {
	if f.SQLiteDB != nil {
		return NewSQLiteUserRepository(f.SQLiteDB, f.Manager)
	}
	return NewMongoUserRepository(f.MongoClient, f.DBName, UsersCollection)
}

// GenerateID generates a unique ID for a record
func GenerateID() string {
	return uuid.New().String()
}
