package testutils

import (
	"exercise-tracker/internal/config"
	"exercise-tracker/models"
)

func GetTestConfig() *config.Config {
	return &config.Config{
		Port:              "0",
		DatabaseType:      config.SQLite,
		DatabaseName:      "exercise_tracker_test",
		LogLevel:          "error",
		LogFormat:         "text",
		CORSAllowedOrigin: "*",
		RateLimitBurst:    20,
	}
}

func CreateTestExercise(description string, duration float64, date string) models.Exercise {
	return models.Exercise{
		Description: description,
		Duration:    models.Duration(duration),
		Date:        date,
	}
}
