package util

import (
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

var (
	maxRetries = 3
	baseDelay  = 100 * time.Millisecond
)

// RetryOnLock retries the given function if it fails with a database lock error
func RetryOnLock(operation func() error) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if !IsLockError(err) {
			return err
		}

		// Exponential backoff: 100ms, 200ms, 400ms
		delay := baseDelay * time.Duration(1<<i)
		logrus.WithError(err).WithField("delay", delay).Warn("Database locked, retrying")
		time.Sleep(delay)
	}

	return err
}

// IsLockError reports whether err signals SQLite busy or lock contention
func IsLockError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return strings.Contains(err.Error(), "database is locked")
}
