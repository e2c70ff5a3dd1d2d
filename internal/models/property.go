package models

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// FixedAssetTaxRate is the standard statutory fixed asset tax rate (1.4%)
const FixedAssetTaxRate = 0.014

var (
	ErrUnknownStructureKind = errors.New("unknown structure kind")
	ErrUnknownLandRightKind = errors.New("unknown land right kind")
)

// StructureKind represents the building construction type
type StructureKind int

const (
	StructureUnknown StructureKind = iota
	StructureWooden
	StructureLightSteel
	StructureMiddleSteel
	StructureHeavySteel
	StructureReinforcedConcrete
	StructureSteelReinforcedConcrete
)

var structureKindNames = map[StructureKind]string{
	StructureUnknown:                 "unknown",
	StructureWooden:                  "wooden",
	StructureLightSteel:              "light_steel",
	StructureMiddleSteel:             "middle_steel",
	StructureHeavySteel:              "heavy_steel",
	StructureReinforcedConcrete:      "rc",
	StructureSteelReinforcedConcrete: "src",
}

// String returns the string representation of a StructureKind
func (k StructureKind) String() string {
	if name, ok := structureKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// UsefulLife returns the statutory useful life of a residential building in years.
// Depreciation is computed from the remaining useful life.
func (k StructureKind) UsefulLife() int {
	switch k {
	case StructureWooden:
		return 22
	case StructureLightSteel:
		return 19
	case StructureMiddleSteel:
		return 27
	case StructureHeavySteel:
		return 34
	case StructureReinforcedConcrete, StructureSteelReinforcedConcrete:
		return 47
	default:
		return 0
	}
}

func (k StructureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *StructureKind) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for kind, n := range structureKindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownStructureKind, string(text))
}

// LandRightKind represents the type of right held over the land
type LandRightKind int

const (
	LandRightUnknown LandRightKind = iota
	LandRightOwnerShip
	LandRightLeaseHold
)

// String returns the string representation of a LandRightKind
func (k LandRightKind) String() string {
	switch k {
	case LandRightOwnerShip:
		return "ownership"
	case LandRightLeaseHold:
		return "leasehold"
	default:
		return "unknown"
	}
}

func (k LandRightKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *LandRightKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "ownership":
		*k = LandRightOwnerShip
	case "leasehold":
		*k = LandRightLeaseHold
	case "unknown", "":
		*k = LandRightUnknown
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLandRightKind, string(text))
	}
	return nil
}

// ValuationState tracks whether the appraised values have been populated
type ValuationState int

const (
	Unvaluated ValuationState = iota
	Valuated
)

// String returns the string representation of a ValuationState
func (s ValuationState) String() string {
	if s == Valuated {
		return "valuated"
	}
	return "unvaluated"
}

// Appraisal is the result of a cost-approach valuation
type Appraisal struct {
	BuildingValue int `json:"building_value"`
	LandValue     int `json:"land_value"`
	TotalValue    int `json:"total_value"`
}

// ValuationProvider estimates the appraised values of a property
type ValuationProvider interface {
	Estimate(ctx context.Context, p *Property) (Appraisal, error)
}

// Property holds the static facts of a real estate listing.
// Every derived metric is recomputed on each call.
type Property struct {
	Price                 int
	EstimatedAnnualIncome int
	Location              string
	ConstructionDate      time.Time
	StructureKind         StructureKind
	LandRightKind         LandRightKind
	LandArea              float64 // m²
	BuildingArea          float64 // m²
	FloorCount            float64
	TotalUnitCount        int
	BuildingCoverageRatio float64 // %
	FloorAreaRatio        float64 // %

	// RoadPrice is the land reference price per m²
	RoadPrice int
	// Expenses is the annual operating cost
	Expenses int

	// Populated by RunValuation
	BuildingAppraisedValue int
	LandAppraisedValue     int
	EstimatedPrice         int
	Valuation              ValuationState
}

// NewProperty creates a property from its immutable facts
func NewProperty(
	price int,
	estimatedAnnualIncome int,
	location string,
	constructionDate time.Time,
	structureKind StructureKind,
	landRightKind LandRightKind,
	landArea float64,
	buildingArea float64,
	floorCount float64,
	totalUnitCount int,
	buildingCoverageRatio float64,
	floorAreaRatio float64,
) *Property {
	return &Property{
		Price:                 price,
		EstimatedAnnualIncome: estimatedAnnualIncome,
		Location:              location,
		ConstructionDate:      constructionDate,
		StructureKind:         structureKind,
		LandRightKind:         landRightKind,
		LandArea:              landArea,
		BuildingArea:          buildingArea,
		FloorCount:            floorCount,
		TotalUnitCount:        totalUnitCount,
		BuildingCoverageRatio: buildingCoverageRatio,
		FloorAreaRatio:        floorAreaRatio,
	}
}

// MonthlyIncome returns the estimated annual income divided by 12, truncated
func (p *Property) MonthlyIncome() int {
	return p.EstimatedAnnualIncome / 12
}

// GrossYield returns the surface yield in percent truncated to two decimals.
// A non-positive price yields 0.
func (p *Property) GrossYield() float64 {
	if p.Price <= 0 {
		return 0.0
	}

	grossYield := (float64(p.EstimatedAnnualIncome) / float64(p.Price)) * 100.0
	return math.Floor(grossYield*100.0) / 100.0
}

// NetProfit returns the annual income minus expenses and fixed asset tax
func (p *Property) NetProfit() int {
	return p.EstimatedAnnualIncome - p.Expenses - p.FixedAssetTax()
}

// CapitalizationRate returns net profit over price in percent.
// Price must be positive; a zero price yields ±Inf or NaN.
func (p *Property) CapitalizationRate() float64 {
	return (float64(p.NetProfit()) / float64(p.Price)) * 100.0
}

// Age returns the building age in years counting the construction year as year one
func (p *Property) Age(clock Clock) int {
	if p.ConstructionDate.IsZero() {
		return 0
	}
	return clock.Now().Year() - p.ConstructionDate.Year() + 1
}

// ProfitPrice returns the income-approach valuation: net profit / capitalization rate.
// Net profit and price must be non-zero.
func (p *Property) ProfitPrice() int {
	return int(float64(p.NetProfit()) / (p.CapitalizationRate() / 100.0))
}

// EstimatedPriceRatio returns the cost-approach price as a percentage of the listing price
func (p *Property) EstimatedPriceRatio() float64 {
	return (float64(p.EstimatedPrice) / float64(p.Price)) * 100.0
}

// ProfitPriceRatio returns the income-approach price as a percentage of the listing price
func (p *Property) ProfitPriceRatio() float64 {
	return (float64(p.ProfitPrice()) / float64(p.Price)) * 100.0
}

// FixedAssetTax returns the combined land and building fixed asset tax
func (p *Property) FixedAssetTax() int {
	return p.LandTax() + p.BuildingTax()
}

func (p *Property) LandTax() int {
	return int(float64(p.LandAppraisedValue) * FixedAssetTaxRate)
}

func (p *Property) BuildingTax() int {
	return int(float64(p.BuildingAppraisedValue) * FixedAssetTaxRate)
}

// RunValuation populates the appraised values from the provider.
// RoadPrice should be set before calling it. Calling it again overwrites the previous result.
func (p *Property) RunValuation(ctx context.Context, provider ValuationProvider) error {
	appraisal, err := provider.Estimate(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to estimate property value: %w", err)
	}

	p.BuildingAppraisedValue = appraisal.BuildingValue
	p.LandAppraisedValue = appraisal.LandValue
	p.EstimatedPrice = appraisal.TotalValue
	p.Valuation = Valuated
	return nil
}
