package models

import "math"

// DefaultFullOccupancyRate is the assumed occupancy in percent.
// 90% is reasonable up to 20 years of age, 80% after that.
const DefaultFullOccupancyRate = 90.0

// Simulation combines a property and a loan. Either may be nil.
type Simulation struct {
	Property          *Property
	Loan              *Loan
	FullOccupancyRate float64 // %
}

// NewSimulation creates a simulation with the default occupancy rate
func NewSimulation(property *Property, loan *Loan) *Simulation {
	return &Simulation{
		Property:          property,
		Loan:              loan,
		FullOccupancyRate: DefaultFullOccupancyRate,
	}
}

// AdjustedAnnualIncome returns the annual income scaled by the occupancy rate
func (s *Simulation) AdjustedAnnualIncome() int {
	if s.Property == nil {
		return 0
	}
	return int(float64(s.Property.EstimatedAnnualIncome) * (s.FullOccupancyRate / 100.0))
}

// RepaymentRatio returns the monthly loan repayment as a percentage of monthly income.
// Below 50% is preferable. Monthly income must be non-zero.
// A loan without a finite installment (zero rate) yields NaN.
func (s *Simulation) RepaymentRatio() float64 {
	if s.Property == nil || s.Loan == nil {
		return 0.0
	}

	payment := s.Loan.EqualInstallmentPayment()
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return math.NaN()
	}

	monthlyRepayment := math.Trunc(payment)
	return (monthlyRepayment / float64(s.Property.MonthlyIncome())) * 100.0
}
