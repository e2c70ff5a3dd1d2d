package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"estatesim/internal/models"
)

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Summarize reads every derived metric of the simulation
func Summarize(sim *models.Simulation, clock models.Clock) models.SimulationSummary {
	s := models.SimulationSummary{
		FullOccupancyRate:    sim.FullOccupancyRate,
		AdjustedAnnualIncome: sim.AdjustedAnnualIncome(),
		RepaymentRatio:       finite(sim.RepaymentRatio()),
	}

	if p := sim.Property; p != nil {
		s.HasProperty = true
		s.Price = p.Price
		s.EstimatedAnnualIncome = p.EstimatedAnnualIncome
		s.MonthlyIncome = p.MonthlyIncome()
		s.GrossYield = p.GrossYield()
		s.LandAppraisedValue = p.LandAppraisedValue
		s.BuildingAppraisedValue = p.BuildingAppraisedValue
		s.EstimatedPrice = p.EstimatedPrice
		s.EstimatedPriceRatio = finite(p.EstimatedPriceRatio())
		s.NetProfit = p.NetProfit()
		s.CapitalizationRate = finite(p.CapitalizationRate())
		s.FixedAssetTax = p.FixedAssetTax()
		s.Valuation = p.Valuation.String()
		s.Location = p.Location
		s.Age = p.Age(clock)
		s.StructureKind = p.StructureKind.String()
		s.UsefulLife = p.StructureKind.UsefulLife()
		s.LandRightKind = p.LandRightKind.String()
		s.LandArea = p.LandArea
		s.BuildingArea = p.BuildingArea
		s.FloorCount = p.FloorCount
		s.TotalUnitCount = p.TotalUnitCount
		s.BuildingCoverageRatio = p.BuildingCoverageRatio
		s.FloorAreaRatio = p.FloorAreaRatio
		s.RoadPrice = p.RoadPrice
		s.Expenses = p.Expenses
		if !p.ConstructionDate.IsZero() {
			s.ConstructionYear = p.ConstructionDate.Year()
		}

		// Income-approach price is undefined when net profit or price is zero
		if p.NetProfit() != 0 && p.Price != 0 {
			profitPrice := p.ProfitPrice()
			s.ProfitPrice = &profitPrice
			s.ProfitPriceRatio = finite(p.ProfitPriceRatio())
		}
	}

	if l := sim.Loan; l != nil {
		s.HasLoan = true
		s.LoanAmount = l.Amount
		s.InterestRate = l.InterestRate
		s.Period = l.Period
		s.TotalRepaymentCount = l.TotalRepaymentCount()
		if finite(l.EqualInstallmentPayment()) != nil {
			repayment := l.EqualInstallmentRepayment()
			s.MonthlyRepayment = &repayment
		}
	}

	return s
}

func formatPercent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", *v)
}

func formatInt(v *int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *v)
}

// Write renders the summary as a plain text report
func Write(w io.Writer, s models.SimulationSummary) error {
	var b strings.Builder

	if s.HasProperty {
		fmt.Fprintf(&b, "Price: %d yen\n", s.Price)
		fmt.Fprintf(&b, "Estimated annual income: %d yen\n", s.EstimatedAnnualIncome)
		fmt.Fprintf(&b, "Estimated monthly income: %d yen\n", s.MonthlyIncome)
		fmt.Fprintf(&b, "Gross yield: %.2f%%\n", s.GrossYield)
		fmt.Fprintf(&b, "Land appraised value: %d yen\n", s.LandAppraisedValue)
		fmt.Fprintf(&b, "Building appraised value: %d yen\n", s.BuildingAppraisedValue)
		fmt.Fprintf(&b, "Estimated price: %d yen (%s)\n", s.EstimatedPrice, formatPercent(s.EstimatedPriceRatio))
		fmt.Fprintf(&b, "Profit price: %s yen (%s)\n", formatInt(s.ProfitPrice), formatPercent(s.ProfitPriceRatio))
		fmt.Fprintf(&b, "Net profit: %d yen\n", s.NetProfit)
		fmt.Fprintf(&b, "Capitalization rate: %s\n", formatPercent(s.CapitalizationRate))
		fmt.Fprintf(&b, "Fixed asset tax: %d yen\n", s.FixedAssetTax)
		fmt.Fprintf(&b, "Location: %s\n", s.Location)
		fmt.Fprintf(&b, "Built: %d (age %d)\n", s.ConstructionYear, s.Age)
		fmt.Fprintf(&b, "Structure: %s (useful life %d years)\n", s.StructureKind, s.UsefulLife)
		fmt.Fprintf(&b, "Land right: %s\n", s.LandRightKind)
		fmt.Fprintf(&b, "Land area: %gm^2\n", s.LandArea)
		fmt.Fprintf(&b, "Building area: %gm^2\n", s.BuildingArea)
		fmt.Fprintf(&b, "Floors: %g\n", s.FloorCount)
		fmt.Fprintf(&b, "Total units: %d\n", s.TotalUnitCount)
		fmt.Fprintf(&b, "Building coverage ratio: %g%%\n", s.BuildingCoverageRatio)
		fmt.Fprintf(&b, "Floor area ratio: %g%%\n", s.FloorAreaRatio)
	}

	if s.HasLoan {
		fmt.Fprintf(&b, "Loan amount: %d yen\n", s.LoanAmount)
		fmt.Fprintf(&b, "Interest rate: %g%%\n", s.InterestRate)
		fmt.Fprintf(&b, "Period: %d years\n", s.Period)
		fmt.Fprintf(&b, "Monthly repayment: %s yen\n", formatInt(s.MonthlyRepayment))
	}

	fmt.Fprintf(&b, "Full occupancy rate: %g%%\n", s.FullOccupancyRate)
	fmt.Fprintf(&b, "Adjusted annual income: %d yen\n", s.AdjustedAnnualIncome)
	fmt.Fprintf(&b, "Repayment ratio: %s\n", formatPercent(s.RepaymentRatio))

	_, err := io.WriteString(w, b.String())
	return err
}
