package models

import "time"

// SimulationSummary is a flat view of every derived metric of a simulation.
// Ratios that cannot be computed for the given inputs are nil.
type SimulationSummary struct {
	HasProperty bool `json:"has_property"`
	HasLoan     bool `json:"has_loan"`

	Price                  int      `json:"price"`
	EstimatedAnnualIncome  int      `json:"estimated_annual_income"`
	MonthlyIncome          int      `json:"monthly_income"`
	GrossYield             float64  `json:"gross_yield"`
	LandAppraisedValue     int      `json:"land_appraised_value"`
	BuildingAppraisedValue int      `json:"building_appraised_value"`
	EstimatedPrice         int      `json:"estimated_price"`
	EstimatedPriceRatio    *float64 `json:"estimated_price_ratio"`
	ProfitPrice            *int     `json:"profit_price"`
	ProfitPriceRatio       *float64 `json:"profit_price_ratio"`
	NetProfit              int      `json:"net_profit"`
	CapitalizationRate     *float64 `json:"capitalization_rate"`
	FixedAssetTax          int      `json:"fixed_asset_tax"`
	Valuation              string   `json:"valuation"`
	Location               string   `json:"location"`
	ConstructionYear       int      `json:"construction_year"`
	Age                    int      `json:"age"`
	StructureKind          string   `json:"structure_kind"`
	UsefulLife             int      `json:"useful_life"`
	LandRightKind          string   `json:"land_right_kind"`
	LandArea               float64  `json:"land_area"`
	BuildingArea           float64  `json:"building_area"`
	FloorCount             float64  `json:"floor_count"`
	TotalUnitCount         int      `json:"total_unit_count"`
	BuildingCoverageRatio  float64  `json:"building_coverage_ratio"`
	FloorAreaRatio         float64  `json:"floor_area_ratio"`
	RoadPrice              int      `json:"road_price"`
	Expenses               int      `json:"expenses"`

	LoanAmount          int     `json:"loan_amount"`
	InterestRate        float64 `json:"interest_rate"`
	Period              int     `json:"period"`
	TotalRepaymentCount int     `json:"total_repayment_count"`
	MonthlyRepayment    *int    `json:"monthly_repayment"`

	FullOccupancyRate    float64  `json:"full_occupancy_rate"`
	AdjustedAnnualIncome int      `json:"adjusted_annual_income"`
	RepaymentRatio       *float64 `json:"repayment_ratio"`
}

// SimulationSnapshot is a stored simulation result
type SimulationSnapshot struct {
	ID                int64             `gorm:"primaryKey" json:"id"`
	Name              string            `gorm:"index" json:"name"`
	SimulationSummary SimulationSummary `gorm:"embedded" json:"summary"`
	CreatedAt         time.Time         `json:"created_at"`
}
