package exercise

import (
	"context"
	"errors"
	"math"
	"time"

	"exercise-tracker/db"
	"exercise-tracker/internal/httpapi"
	"exercise-tracker/models"
)

const userNotFound = "Could not find user"

type ExerciseService struct {
	Repository db.UserRepository
	Now        func() time.Time
}

func NewExerciseService(repo db.UserRepository) *ExerciseService {
	return &ExerciseService{Repository: repo, Now: time.Now}
}

// NewExercise is the raw input of an append request. Duration is nil when
// the field was not sent at all.
type NewExercise struct {
	Description string
	Duration    *string
	Date        string
}

// AddedExercise is returned after an append; ID is the owning user's ID
type AddedExercise struct {
	Username    string          `json:"username"`
	Description string          `json:"description"`
	Duration    models.Duration `json:"duration"`
	Date        string          `json:"date"`
	ID          string          `json:"_id"`
}

// ExerciseLog is a user's filtered exercise history
type ExerciseLog struct {
	Username string            `json:"username"`
	Count    int               `json:"count"`
	ID       string            `json:"_id"`
	Log      []models.Exercise `json:"log"`
}

// AddExercise appends one exercise to the user's log. Duration and date
// are coerced rather than validated: non-numeric durations become NaN and
// unparseable dates are stored as models.InvalidDate.
func (s *ExerciseService) AddExercise(ctx context.Context, userID string, in NewExercise) (*AddedExercise, error) {
	duration := models.Duration(math.NaN())
	if in.Duration != nil {
		duration = models.ParseDuration(*in.Duration)
	}

	exercise := models.Exercise{
		Description: in.Description,
		Duration:    duration,
		Date:        models.NormalizeDate(in.Date, s.now()),
	}

	user, err := s.Repository.AppendExercise(ctx, userID, exercise)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, httpapi.NotFound(userNotFound)
		}
		return nil, httpapi.Internal(err)
	}

	return &AddedExercise{
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
		ID:          user.ID,
	}, nil
}

// GetLog returns the user's exercises filtered by q
func (s *ExerciseService) GetLog(ctx context.Context, userID string, q LogQuery) (*ExerciseLog, error) {
	user, err := s.Repository.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, httpapi.NotFound(userNotFound)
		}
		return nil, httpapi.Internal(err)
	}

	entries := FilterLog(user.Exercises, q)
	return &ExerciseLog{
		Username: user.Username,
		Count:    len(entries),
		ID:       user.ID,
		Log:      entries,
	}, nil
}

func (s *ExerciseService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
