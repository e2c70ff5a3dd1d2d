package models

import (
	"fmt"
	"time"
)

// ConstructionDateLayout is the date format used for construction dates in scenarios
const ConstructionDateLayout = "2006-01-02"

// PropertyInput is the JSON form of a property
type PropertyInput struct {
	Price                 int           `json:"price"`
	EstimatedAnnualIncome int           `json:"estimated_annual_income"`
	Location              string        `json:"location"`
	ConstructionDate      string        `json:"construction_date"`
	StructureKind         StructureKind `json:"structure_kind"`
	LandRightKind         LandRightKind `json:"land_right_kind"`
	LandArea              float64       `json:"land_area"`
	BuildingArea          float64       `json:"building_area"`
	FloorCount            float64       `json:"floor_count"`
	TotalUnitCount        int           `json:"total_unit_count"`
	BuildingCoverageRatio float64       `json:"building_coverage_ratio"`
	FloorAreaRatio        float64       `json:"floor_area_ratio"`
	RoadPrice             int           `json:"road_price"`
	Expenses              int           `json:"expenses"`
}

// LoanInput is the JSON form of a loan
type LoanInput struct {
	Amount       int     `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	Period       int     `json:"period"`
}

// Scenario describes a property and loan to simulate
type Scenario struct {
	Name              string         `json:"name"`
	Property          *PropertyInput `json:"property"`
	Loan              *LoanInput     `json:"loan"`
	FullOccupancyRate *float64       `json:"full_occupancy_rate"`
}

// BuildProperty converts the input into a Property with its settable fields applied
func (in *PropertyInput) BuildProperty() (*Property, error) {
	var built time.Time
	if in.ConstructionDate != "" {
		var err error
		built, err = time.Parse(ConstructionDateLayout, in.ConstructionDate)
		if err != nil {
			return nil, fmt.Errorf("invalid construction date %q: %w", in.ConstructionDate, err)
		}
	}

	p := NewProperty(
		in.Price,
		in.EstimatedAnnualIncome,
		in.Location,
		built,
		in.StructureKind,
		in.LandRightKind,
		in.LandArea,
		in.BuildingArea,
		in.FloorCount,
		in.TotalUnitCount,
		in.BuildingCoverageRatio,
		in.FloorAreaRatio,
	)
	p.RoadPrice = in.RoadPrice
	p.Expenses = in.Expenses
	return p, nil
}

// Build creates the simulation described by the scenario.
// A missing property or loan stays nil.
func (s *Scenario) Build() (*Simulation, error) {
	var property *Property
	if s.Property != nil {
		var err error
		property, err = s.Property.BuildProperty()
		if err != nil {
			return nil, err
		}
	}

	var loan *Loan
	if s.Loan != nil {
		loan = NewLoan(s.Loan.Amount, s.Loan.InterestRate, s.Loan.Period)
	}

	sim := NewSimulation(property, loan)
	if s.FullOccupancyRate != nil {
		sim.FullOccupancyRate = *s.FullOccupancyRate
	}
	return sim, nil
}
