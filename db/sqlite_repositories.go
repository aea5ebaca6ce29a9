package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"exercise-tracker/internal/util"
	"exercise-tracker/models"

	"github.com/mattn/go-sqlite3"
)

// SQLiteUserRepository implements the UserRepository interface for SQLite
type SQLiteUserRepository struct {
	db      *sql.DB
	manager *DBManager
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository. Writes are
// serialized through manager when it is non-nil.
func NewSQLiteUserRepository(db *sql.DB, manager *DBManager) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db, manager: manager}
}

// Ping checks the database connection
func (r *SQLiteUserRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection
func (r *SQLiteUserRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteUserRepository) write(operation func() error) error {
	retried := func() error {
		return util.RetryOnLock(operation)
	}
	if r.manager == nil {
		return retried()
	}
	return r.manager.ExecuteOperation(retried)
}

// FindByID finds a user by ID
func (r *SQLiteUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, username, exercises FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// FindByUsername finds a user by exact username
func (r *SQLiteUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, username, exercises FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var exercisesJSON string

	if err := row.Scan(&user.ID, &user.Username, &exercisesJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}

	user.Exercises = []models.Exercise{}
	if err := json.Unmarshal([]byte(exercisesJSON), &user.Exercises); err != nil {
		return nil, fmt.Errorf("error decoding exercises: %w", err)
	}

	return &user, nil
}

// FindAll returns every user projected to its ID and username
func (r *SQLiteUserRepository) FindAll(ctx context.Context) ([]models.UserSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, username FROM users ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []models.UserSummary{}
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Create inserts a new user with an empty exercise log
func (r *SQLiteUserRepository) Create(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{
		ID:        GenerateID(),
		Username:  username,
		Exercises: []models.Exercise{},
	}

	err := r.write(func() error {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO users (id, username, exercises, created_at) VALUES (?, ?, '[]', ?)`,
			user.ID, user.Username, time.Now())
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return user, nil
}

// AppendExercise appends the exercise to the JSON array in one UPDATE
func (r *SQLiteUserRepository) AppendExercise(ctx context.Context, userID string, exercise models.Exercise) (*models.User, error) {
	payload, err := json.Marshal(exercise)
	if err != nil {
		return nil, fmt.Errorf("error encoding exercise: %w", err)
	}

	user := &models.User{ID: userID}
	err = r.write(func() error {
		return r.db.QueryRowContext(ctx,
			`UPDATE users SET exercises = json_insert(exercises, '$[#]', json(?)) WHERE id = ? RETURNING username`,
			string(payload), userID).Scan(&user.Username)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error appending exercise: %w", err)
	}

	return user, nil
}

// Import stores a user with its exercises as-is. It reports false when a
// user with the same ID or username already exists.
func (r *SQLiteUserRepository) Import(ctx context.Context, user *models.User) (bool, error) {
	exercises := user.Exercises
	if exercises == nil {
		exercises = []models.Exercise{}
	}
	payload, err := json.Marshal(exercises)
	if err != nil {
		return false, fmt.Errorf("error encoding exercises: %w", err)
	}

	var affected int64
	err = r.write(func() error {
		result, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO users (id, username, exercises, created_at) VALUES (?, ?, ?, ?)`,
			user.ID, user.Username, string(payload), time.Now())
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("error importing user: %w", err)
	}

	return affected > 0, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
