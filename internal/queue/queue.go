package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"estatesim/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// ScenarioQueue is an in-memory queue of scenario batches
type ScenarioQueue struct {
	items    chan []models.Scenario
	done     chan struct{}
	stopped  chan struct{}
	closed   bool
	started  bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]models.Scenario) error
}

// NewScenarioQueue creates a queue holding up to bufferSize batches
func NewScenarioQueue(bufferSize int, logger *logrus.Logger) *ScenarioQueue {
	return &ScenarioQueue{
		items:    make(chan []models.Scenario, bufferSize),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		logger:   logger,
		handlers: make([]func([]models.Scenario) error, 0),
	}
}

// Push adds a batch of scenarios to the queue
func (q *ScenarioQueue) Push(scenarios []models.Scenario) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	// Non-blocking send to prevent deadlocks
	select {
	case q.items <- scenarios:
		q.logger.WithField("batch_size", len(scenarios)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each batch
func (q *ScenarioQueue) Subscribe(handler func([]models.Scenario) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue
func (q *ScenarioQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	go q.process()
}

func (q *ScenarioQueue) process() {
	defer close(q.stopped)
	for {
		select {
		case <-q.done:
			return
		case batch := <-q.items:
			q.processBatch(batch)
		}
	}
}

// processBatch sends the batch to all subscribed handlers
func (q *ScenarioQueue) processBatch(batch []models.Scenario) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Close stops the queue and prevents new items from being added.
// It waits for the batch being processed, if any, to finish.
func (q *ScenarioQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	started := q.started
	close(q.done)
	q.mu.Unlock()

	if started {
		<-q.stopped
	}
	return nil
}

// Len returns the current number of batches in the queue
func (q *ScenarioQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *ScenarioQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
