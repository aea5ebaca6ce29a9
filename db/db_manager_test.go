package db

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDBManager_SerializesOperations(t *testing.T) {
	m := NewDBManager()
	defer m.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		running int
		maxSeen int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.ExecuteOperation(func() error {
				mu.Lock()
				running++
				if running > maxSeen {
					maxSeen = running
				}
				mu.Unlock()

				mu.Lock()
				running--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestDBManager_ReturnsOperationError(t *testing.T) {
	m := NewDBManager()
	defer m.Stop()

	boom := errors.New("boom")
	assert.ErrorIs(t, m.ExecuteOperation(func() error { return boom }), boom)
}

func TestDBManager_StoppedRejectsOperations(t *testing.T) {
	m := NewDBManager()
	m.Stop()
	m.Stop()

	err := m.ExecuteOperation(func() error { return nil })
	assert.ErrorIs(t, err, ErrManagerStopped)
}
