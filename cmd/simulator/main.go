package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"estatesim/config"
	"estatesim/internal/api"
	"estatesim/internal/database"
	"estatesim/internal/models"
	"estatesim/internal/processor"
	"estatesim/internal/queue"
	"estatesim/internal/report"
	"estatesim/internal/simulator"
	"estatesim/internal/valuation"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Infof("Using database at: %s", cfg.DatabasePath)
	db, err := database.NewDatabase(cfg.DatabasePath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	if cfg.Valuation.Script != "" {
		logger.WithField("script", cfg.Valuation.Script).Info("Using valuation script")
	}
	provider := valuation.NewProvider(cfg.Valuation.Script, cfg.Valuation.Args, cfg.ValuationTimeout(), logger)

	sim := simulator.NewSimulator(provider, db, models.SystemClock{}, logger)
	sim.SetFullOccupancyRate(cfg.Simulation.FullOccupancyRate)

	if cfg.Mode == config.ModeServe {
		scenarioQueue := queue.NewScenarioQueue(cfg.BatchProcessing.QueueSize, logger)
		batchProcessor := processor.NewBatchProcessor(sim, scenarioQueue, cfg, logger)
		batchProcessor.Start()
		defer batchProcessor.Stop()

		router := api.NewRouter(api.NewHandler(sim, db, scenarioQueue, logger))

		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := router.Run(":" + cfg.Server.Port); err != nil {
			logger.WithError(err).Fatal("Server failed to start")
		}
		return
	}

	scenario := config.DefaultScenario()
	if cfg.Simulation.ScenarioFile != "" {
		loaded, err := config.LoadScenario(cfg.Simulation.ScenarioFile)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load scenario")
		}
		scenario = *loaded
	}

	snapshot, err := sim.Run(context.Background(), scenario)
	if err != nil {
		logger.WithError(err).Fatal("Failed to run simulation")
	}

	if err := report.Write(os.Stdout, snapshot.SimulationSummary); err != nil {
		logger.WithError(err).Fatal("Failed to write report")
	}

	if cfg.Simulation.ScenarioOutput != "" {
		if err := config.SaveScenario(cfg.Simulation.ScenarioOutput, scenario); err != nil {
			logger.WithError(err).Fatal("Failed to save scenario")
		}
		logger.WithField("path", cfg.Simulation.ScenarioOutput).Info("Saved scenario")
	}
}
