package user

import (
	"context"
	"errors"
	"strings"

	"exercise-tracker/db"
	"exercise-tracker/internal/httpapi"
	"exercise-tracker/models"
)

type UserService struct {
	Repository db.UserRepository
}

func NewUserService(repo db.UserRepository) *UserService {
	return &UserService{Repository: repo}
}

// CreateOrFetch returns the user registered under username, creating it
// on first use. Registering an existing username is not an error.
func (s *UserService) CreateOrFetch(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, httpapi.Validation("Username is required")
	}

	existing, err := s.Repository.FindByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, httpapi.Internal(err)
	}

	created, err := s.Repository.Create(ctx, username)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, db.ErrDuplicate) {
		return nil, httpapi.Internal(err)
	}

	// Lost a concurrent registration of the same name; return the winner.
	existing, err = s.Repository.FindByUsername(ctx, username)
	if err != nil {
		return nil, httpapi.Internal(err)
	}
	return existing, nil
}

// FindAll lists every user as {_id, username}
func (s *UserService) FindAll(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.Repository.FindAll(ctx)
	if err != nil {
		return nil, httpapi.Internal(err)
	}
	if users == nil {
		users = []models.UserSummary{}
	}
	return users, nil
}
