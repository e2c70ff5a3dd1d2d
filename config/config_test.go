package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatesim/internal/models"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ModeReport, cfg.Mode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "database/simulations.db", cfg.DatabasePath)
	assert.Equal(t, "5250", cfg.Server.Port)
	assert.Equal(t, 90.0, cfg.Simulation.FullOccupancyRate)
	assert.Empty(t, cfg.Simulation.ScenarioFile)
	assert.Empty(t, cfg.Valuation.Script)
	assert.Empty(t, cfg.Valuation.Args)
	assert.Empty(t, cfg.Simulation.ScenarioOutput)
	assert.Equal(t, 30*time.Second, cfg.ValuationTimeout())
	assert.Equal(t, 100, cfg.BatchProcessing.QueueSize)
	assert.Equal(t, 3, cfg.BatchProcessing.MaxRetries)
	assert.Equal(t, 5, cfg.BatchProcessing.RetryDelay)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SIM_MODE", "serve")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("FULL_OCCUPANCY_RATE", "80")
	t.Setenv("VALUATION_SCRIPT", "scripts/lookup_price.py")
	t.Setenv("VALUATION_TIMEOUT", "5")
	t.Setenv("VALUATION_ARGS", "--prefecture osaka")
	t.Setenv("SCENARIO_OUTPUT", "out/scenario.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ModeServe, cfg.Mode)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 80.0, cfg.Simulation.FullOccupancyRate)
	assert.Equal(t, "scripts/lookup_price.py", cfg.Valuation.Script)
	assert.Equal(t, 5*time.Second, cfg.ValuationTimeout())
	assert.Equal(t, []string{"--prefecture", "osaka"}, cfg.Valuation.Args)
	assert.Equal(t, "out/scenario.json", cfg.Simulation.ScenarioOutput)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "Unknown mode", key: "SIM_MODE", value: "batch"},
		{name: "Non-numeric rate", key: "FULL_OCCUPANCY_RATE", value: "ninety"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestDefaultScenario(t *testing.T) {
	scenario := DefaultScenario()
	sim, err := scenario.Build()
	require.NoError(t, err)

	assert.Equal(t, 5_040_000, sim.Property.EstimatedAnnualIncome)
	assert.Equal(t, 205_000, sim.Property.RoadPrice)
	assert.Equal(t, 35_000, sim.Property.Expenses)
	assert.Equal(t, 1998, sim.Property.ConstructionDate.Year())
	assert.Equal(t, 420, sim.Loan.TotalRepaymentCount())
}

func TestSaveAndLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "osaka.json")
	scenario := DefaultScenario()
	scenario.Name = ""

	require.NoError(t, SaveScenario(path, scenario))

	loaded, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "osaka", loaded.Name)
	assert.Equal(t, scenario.Property, loaded.Property)
	assert.Equal(t, scenario.Loan, loaded.Loan)
	assert.Nil(t, loaded.FullOccupancyRate)
}

func TestLoadScenario_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadScenario(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"property": {"land_right_kind": "rental"}}`), 0644))
	_, err = LoadScenario(bad)
	assert.ErrorIs(t, err, models.ErrUnknownLandRightKind)
}
