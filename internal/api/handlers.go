package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"estatesim/config"
	"estatesim/internal/database"
	"estatesim/internal/models"
	"estatesim/internal/simulator"
)

// SnapshotReader reads stored simulation results
type SnapshotReader interface {
	GetSnapshot(id int64) (*models.SimulationSnapshot, error)
	GetSnapshots(name string, limit int) ([]models.SimulationSnapshot, error)
	DeleteSnapshot(id int64) error
}

// BatchQueue accepts scenario batches for background processing
type BatchQueue interface {
	Push(scenarios []models.Scenario) error
}

type Handler struct {
	simulator *simulator.Simulator
	snapshots SnapshotReader
	batch     BatchQueue
	logger    *logrus.Logger
}

// NewHandler creates the API handler. batch may be nil to disable batch runs.
func NewHandler(sim *simulator.Simulator, snapshots SnapshotReader, batch BatchQueue, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		simulator: sim,
		snapshots: snapshots,
		batch:     batch,
		logger:    logger,
	}
}

func (h *Handler) RunSimulation(c *gin.Context) {
	var scenario models.Scenario
	if err := c.ShouldBindJSON(&scenario); err != nil {
		h.logger.WithError(err).Error("Failed to parse scenario")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scenario"})
		return
	}

	if err := simulator.Validate(scenario); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.simulator.Run(c.Request.Context(), scenario)
	if errors.Is(err, simulator.ErrInvalidScenario) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("scenario", scenario.Name).Error("Failed to run simulation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run simulation"})
		return
	}

	c.JSON(http.StatusCreated, snapshot)
}

func (h *Handler) RunSimulationBatch(c *gin.Context) {
	if h.batch == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Batch processing is disabled"})
		return
	}

	var scenarios []models.Scenario
	if err := c.ShouldBindJSON(&scenarios); err != nil {
		h.logger.WithError(err).Error("Failed to parse scenario batch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scenario batch"})
		return
	}
	if len(scenarios) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Scenario batch is empty"})
		return
	}
	for i, scenario := range scenarios {
		if err := simulator.Validate(scenario); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "index": i})
			return
		}
	}

	if err := h.batch.Push(scenarios); err != nil {
		h.logger.WithError(err).WithField("batch_size", len(scenarios)).Warn("Failed to queue scenario batch")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to queue scenario batch"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":     "queued",
		"batch_size": len(scenarios),
	})
}

func (h *Handler) GetSimulations(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 50
	}

	snapshots, err := h.snapshots.GetSnapshots(c.Query("name"), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get simulations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get simulations"})
		return
	}

	c.JSON(http.StatusOK, snapshots)
}

func (h *Handler) GetSimulation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid simulation id"})
		return
	}

	snapshot, err := h.snapshots.GetSnapshot(id)
	if errors.Is(err, database.ErrSnapshotNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Simulation not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("id", id).Error("Failed to get simulation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get simulation"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) DeleteSimulation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid simulation id"})
		return
	}

	err = h.snapshots.DeleteSnapshot(id)
	if errors.Is(err, database.ErrSnapshotNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Simulation not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("id", id).Error("Failed to delete simulation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete simulation"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetDefaultScenario(c *gin.Context) {
	c.JSON(http.StatusOK, config.DefaultScenario())
}
