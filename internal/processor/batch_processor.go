package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"estatesim/config"
	"estatesim/internal/models"
	"estatesim/internal/queue"
	"estatesim/internal/simulator"
)

// Runner runs and stores a single scenario
type Runner interface {
	Run(ctx context.Context, scenario models.Scenario) (*models.SimulationSnapshot, error)
}

// BatchProcessor runs queued scenario batches with retry logic
type BatchProcessor struct {
	runner Runner
	logger *logrus.Logger
	config *config.Config
	queue  *queue.ScenarioQueue
	ctx    context.Context
	cancel context.CancelFunc
}

// NewBatchProcessor creates a new batch processor instance
func NewBatchProcessor(runner Runner, queue *queue.ScenarioQueue, config *config.Config, logger *logrus.Logger) *BatchProcessor {
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchProcessor{
		runner: runner,
		queue:  queue,
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins processing batches from the queue
func (p *BatchProcessor) Start() {
	p.queue.Subscribe(p.processBatch)
	p.queue.Start()
}

// Stop cancels pending retries and shuts down the queue
func (p *BatchProcessor) Stop() {
	p.cancel()
	p.queue.Close()
}

// processBatch runs every scenario of the batch, continuing past failures
func (p *BatchProcessor) processBatch(batch []models.Scenario) error {
	failed := 0
	for _, scenario := range batch {
		if err := p.processScenario(scenario); err != nil {
			p.logger.WithError(err).WithField("scenario", scenario.Name).Error("Scenario failed")
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(batch))
	}

	p.logger.Infof("Successfully processed batch of %d scenarios", len(batch))
	return nil
}

func (p *BatchProcessor) processScenario(scenario models.Scenario) error {
	maxRetries := p.config.BatchProcessing.MaxRetries

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying scenario %q, attempt %d of %d", scenario.Name, attempt, maxRetries)
			select {
			case <-p.ctx.Done():
				return p.ctx.Err()
			case <-time.After(time.Duration(p.config.BatchProcessing.RetryDelay) * time.Second):
			}
		}

		_, err = p.runner.Run(p.ctx, scenario)
		if err == nil {
			return nil
		}
		if errors.Is(err, simulator.ErrInvalidScenario) {
			return err
		}
	}

	return fmt.Errorf("failed to process scenario after %d attempts: %w", maxRetries+1, err)
}
