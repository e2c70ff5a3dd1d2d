package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"estatesim/internal/models"
)

var ErrSnapshotNotFound = errors.New("simulation snapshot not found")

type Database struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewDatabase(dbPath string, log *logrus.Logger) (*Database, error) {
	if log == nil {
		log = logrus.New()
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetOutput(os.Stdout)
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	return &Database{db: db, logger: log}, nil
}

// RunMigrations creates or updates the snapshot table
func (d *Database) RunMigrations() error {
	if err := d.db.AutoMigrate(&models.SimulationSnapshot{}); err != nil {
		return fmt.Errorf("failed to migrate simulation snapshots: %w", err)
	}
	return nil
}

// SaveSnapshot stores a simulation summary under the given name
func (d *Database) SaveSnapshot(name string, summary models.SimulationSummary) (*models.SimulationSnapshot, error) {
	snapshot := &models.SimulationSnapshot{
		Name:              name,
		SimulationSummary: summary,
	}

	err := d.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(snapshot).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save simulation snapshot: %w", err)
	}

	d.logger.WithFields(logrus.Fields{
		"id":   snapshot.ID,
		"name": snapshot.Name,
	}).Info("Saved simulation snapshot")

	return snapshot, nil
}

// GetSnapshot returns a single snapshot by ID
func (d *Database) GetSnapshot(id int64) (*models.SimulationSnapshot, error) {
	var snapshot models.SimulationSnapshot
	err := d.db.First(&snapshot, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// GetSnapshots returns stored snapshots, newest first. An empty name returns all of them.
func (d *Database) GetSnapshots(name string, limit int) ([]models.SimulationSnapshot, error) {
	query := d.db.Order("created_at DESC").Order("id DESC")
	if name != "" {
		query = query.Where("name = ?", name)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	snapshots := make([]models.SimulationSnapshot, 0)
	if err := query.Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

// DeleteSnapshot removes a snapshot by ID
func (d *Database) DeleteSnapshot(id int64) error {
	result := d.db.Delete(&models.SimulationSnapshot{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSnapshotNotFound
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
