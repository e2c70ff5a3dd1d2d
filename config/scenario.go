package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"estatesim/internal/models"
)

// DefaultScenario returns the built-in example: a wooden six-unit building in Osaka
// financed over 35 years
func DefaultScenario() models.Scenario {
	return models.Scenario{
		Name: "osaka-fukushima",
		Property: &models.PropertyInput{
			Price:                 88_420_000,
			EstimatedAnnualIncome: 420_000 * 12,
			Location:              "Osaka, Fukushima-ku, Oohiraki 2-chome",
			ConstructionDate:      "1998-06-01",
			StructureKind:         models.StructureWooden,
			LandRightKind:         models.LandRightOwnerShip,
			LandArea:              130.0,
			BuildingArea:          120.0,
			FloorCount:            3,
			TotalUnitCount:        6,
			BuildingCoverageRatio: 60.0,
			FloorAreaRatio:        200.0,
			RoadPrice:             205_000,
			Expenses:              35_000,
		},
		Loan: &models.LoanInput{
			Amount:       85_700_000,
			InterestRate: 2.55,
			Period:       35,
		},
	}
}

// LoadScenario reads a scenario from a JSON file
func LoadScenario(path string) (*models.Scenario, error) {
	// Get absolute path to scenario file
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario models.Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	if scenario.Name == "" {
		scenario.Name = filepath.Base(absPath[:len(absPath)-len(filepath.Ext(absPath))])
	}
	return &scenario, nil
}

// SaveScenario writes a scenario to a JSON file
func SaveScenario(path string, scenario models.Scenario) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	// Marshal scenario with pretty printing
	data, err := json.MarshalIndent(scenario, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	if err := os.WriteFile(absPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}
	return nil
}
