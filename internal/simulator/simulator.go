package simulator

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"estatesim/internal/models"
	"estatesim/internal/report"
)

// ErrInvalidScenario marks scenarios that cannot be built
var ErrInvalidScenario = errors.New("invalid scenario")

// SnapshotStore persists simulation results
type SnapshotStore interface {
	SaveSnapshot(name string, summary models.SimulationSummary) (*models.SimulationSnapshot, error)
}

// Simulator runs scenarios: valuation, metric summary and optional persistence
type Simulator struct {
	provider          models.ValuationProvider
	store             SnapshotStore
	clock             models.Clock
	logger            *logrus.Logger
	fullOccupancyRate float64
}

// NewSimulator creates a simulator. store may be nil to skip persistence.
func NewSimulator(provider models.ValuationProvider, store SnapshotStore, clock models.Clock, logger *logrus.Logger) *Simulator {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if clock == nil {
		clock = models.SystemClock{}
	}

	return &Simulator{
		provider:          provider,
		store:             store,
		clock:             clock,
		logger:            logger,
		fullOccupancyRate: models.DefaultFullOccupancyRate,
	}
}

// SetFullOccupancyRate changes the rate applied to scenarios that do not set one
func (s *Simulator) SetFullOccupancyRate(rate float64) {
	s.fullOccupancyRate = rate
}

// Validate reports whether the scenario can be built. Errors wrap ErrInvalidScenario.
func Validate(scenario models.Scenario) error {
	_, err := build(scenario)
	return err
}

func build(scenario models.Scenario) (*models.Simulation, error) {
	if scenario.Property == nil && scenario.Loan == nil {
		return nil, fmt.Errorf("%w: needs a property or a loan", ErrInvalidScenario)
	}

	sim, err := scenario.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	return sim, nil
}

// Simulate builds the scenario and runs the valuation step
func (s *Simulator) Simulate(ctx context.Context, scenario models.Scenario) (*models.Simulation, error) {
	sim, err := build(scenario)
	if err != nil {
		return nil, err
	}
	if scenario.FullOccupancyRate == nil {
		sim.FullOccupancyRate = s.fullOccupancyRate
	}

	if sim.Property != nil {
		if err := sim.Property.RunValuation(ctx, s.provider); err != nil {
			return nil, err
		}
	}

	return sim, nil
}

// Run simulates the scenario and stores its summary
func (s *Simulator) Run(ctx context.Context, scenario models.Scenario) (*models.SimulationSnapshot, error) {
	sim, err := s.Simulate(ctx, scenario)
	if err != nil {
		return nil, err
	}

	summary := report.Summarize(sim, s.clock)
	s.logger.WithFields(logrus.Fields{
		"scenario":        scenario.Name,
		"gross_yield":     summary.GrossYield,
		"net_profit":      summary.NetProfit,
		"estimated_price": summary.EstimatedPrice,
	}).Info("Simulation completed")

	if s.store == nil {
		return &models.SimulationSnapshot{Name: scenario.Name, SimulationSummary: summary}, nil
	}

	snapshot, err := s.store.SaveSnapshot(scenario.Name, summary)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
