package database

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatesim/internal/models"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db, err := NewDatabase(filepath.Join(t.TempDir(), "data", "simulations.db"), logger)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndGetSnapshot(t *testing.T) {
	db := setupTestDB(t)

	rate := 4.9535
	repayment := 308_674
	summary := models.SimulationSummary{
		HasProperty:        true,
		HasLoan:            true,
		Price:              88_420_000,
		NetProfit:          4_379_900,
		CapitalizationRate: &rate,
		MonthlyRepayment:   &repayment,
		StructureKind:      "wooden",
	}

	saved, err := db.SaveSnapshot("osaka", summary)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := db.GetSnapshot(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "osaka", got.Name)
	assert.Equal(t, 88_420_000, got.SimulationSummary.Price)
	assert.Equal(t, 4_379_900, got.SimulationSummary.NetProfit)
	require.NotNil(t, got.SimulationSummary.CapitalizationRate)
	assert.InDelta(t, 4.9535, *got.SimulationSummary.CapitalizationRate, 1e-9)
	require.NotNil(t, got.SimulationSummary.MonthlyRepayment)
	assert.Equal(t, 308_674, *got.SimulationSummary.MonthlyRepayment)
	assert.Nil(t, got.SimulationSummary.RepaymentRatio)
}

func TestGetSnapshot_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetSnapshot(42)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestGetSnapshots(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"a", "b", "a"} {
		_, err := db.SaveSnapshot(name, models.SimulationSummary{})
		require.NoError(t, err)
	}

	tests := []struct {
		name     string
		filter   string
		limit    int
		expected int
	}{
		{name: "All snapshots", filter: "", limit: 0, expected: 3},
		{name: "Filtered by name", filter: "a", limit: 0, expected: 2},
		{name: "Limited", filter: "", limit: 1, expected: 1},
		{name: "Unknown name", filter: "z", limit: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshots, err := db.GetSnapshots(tt.filter, tt.limit)
			require.NoError(t, err)
			assert.Len(t, snapshots, tt.expected)
		})
	}

	snapshots, err := db.GetSnapshots("", 0)
	require.NoError(t, err)
	assert.Greater(t, snapshots[0].ID, snapshots[2].ID)
}

func TestDeleteSnapshot(t *testing.T) {
	db := setupTestDB(t)

	saved, err := db.SaveSnapshot("osaka", models.SimulationSummary{})
	require.NoError(t, err)

	require.NoError(t, db.DeleteSnapshot(saved.ID))
	assert.ErrorIs(t, db.DeleteSnapshot(saved.ID), ErrSnapshotNotFound)

	_, err = db.GetSnapshot(saved.ID)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}
