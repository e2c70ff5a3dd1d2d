package valuation

import (
	"context"

	"estatesim/internal/models"
)

// Placeholder values returned until the price database lookup is available
const (
	PlaceholderBuildingValue = 18_000_000
	PlaceholderLandValue     = 26_650_000
	PlaceholderTotalValue    = 44_650_000
)

// StaticProvider returns a fixed appraisal for every property
type StaticProvider struct {
	Appraisal models.Appraisal
}

// NewStaticProvider creates a provider returning the placeholder appraisal
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		Appraisal: models.Appraisal{
			BuildingValue: PlaceholderBuildingValue,
			LandValue:     PlaceholderLandValue,
			TotalValue:    PlaceholderTotalValue,
		},
	}
}

func (s *StaticProvider) Estimate(ctx context.Context, p *models.Property) (models.Appraisal, error) {
	return s.Appraisal, nil
}
