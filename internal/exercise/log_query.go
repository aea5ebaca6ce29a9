package exercise

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"exercise-tracker/internal/httpapi"
	"exercise-tracker/models"
)

// LogQuery narrows an exercise log. Zero values mean "no bound".
type LogQuery struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// ParseLogQuery reads from, to and limit from the query string. Empty
// parameters are treated as absent.
func ParseLogQuery(values url.Values) (LogQuery, error) {
	var q LogQuery

	if raw := strings.TrimSpace(values.Get("from")); raw != "" {
		from, err := models.ParseDate(raw)
		if err != nil {
			return LogQuery{}, httpapi.Malformed("Invalid from date")
		}
		q.From = &from
	}

	if raw := strings.TrimSpace(values.Get("to")); raw != "" {
		to, err := models.ParseDate(raw)
		if err != nil {
			return LogQuery{}, httpapi.Malformed("Invalid to date")
		}
		q.To = &to
	}

	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return LogQuery{}, httpapi.Malformed("Limit must be a positive integer")
		}
		q.Limit = limit
	}

	return q, nil
}

// FilterLog applies the date bounds and then keeps the first Limit entries
// in insertion order. Entries are never re-sorted. When a bound is set,
// entries whose stored date does not parse are dropped.
func FilterLog(exercises []models.Exercise, q LogQuery) []models.Exercise {
	log := make([]models.Exercise, 0, len(exercises))

	for _, e := range exercises {
		if q.From != nil || q.To != nil {
			date, err := models.ParseDate(e.Date)
			if err != nil {
				continue
			}
			if q.From != nil && date.Before(*q.From) {
				continue
			}
			if q.To != nil && date.After(*q.To) {
				continue
			}
		}
		log = append(log, models.Exercise{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        e.Date,
		})
	}

	if q.Limit > 0 && len(log) > q.Limit {
		log = log[:q.Limit]
	}
	return log
}
