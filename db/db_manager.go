package db

import (
	"errors"
	"sync"
)

var ErrManagerStopped = errors.New("database manager stopped")

// Operation represents a database write that needs to be executed
type Operation struct {
	Execute func() error
	Result  chan error
}

// DBManager manages serialized write access to the database
type DBManager struct {
	opQueue  chan Operation
	stopping chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewDBManager creates a new database manager and starts its worker
func NewDBManager() *DBManager {
	m := &DBManager{
		opQueue:  make(chan Operation, 100),
		stopping: make(chan struct{}),
		done:     make(chan struct{}),
	}

	go m.worker()

	return m
}

// worker processes operations one at a time
func (m *DBManager) worker() {
	defer close(m.done)
	for {
		select {
		case op := <-m.opQueue:
			op.Result <- op.Execute()
		case <-m.stopping:
			return
		}
	}
}

// ExecuteOperation queues a write and waits for its result
func (m *DBManager) ExecuteOperation(execute func() error) error {
	resultChan := make(chan error, 1)
	select {
	case m.opQueue <- Operation{Execute: execute, Result: resultChan}:
	case <-m.stopping:
		return ErrManagerStopped
	}

	select {
	case err := <-resultChan:
		return err
	case <-m.done:
		// The worker may have finished this operation just before exiting.
		select {
		case err := <-resultChan:
			return err
		default:
			return ErrManagerStopped
		}
	}
}

// Stop stops the worker. Operations submitted afterwards fail with
// ErrManagerStopped.
func (m *DBManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopping) })
	<-m.done
}
