package models

import "math"

// Loan holds the static facts of a mortgage
type Loan struct {
	Amount       int
	InterestRate float64 // annual, %
	Period       int     // years
}

// NewLoan creates a loan
func NewLoan(amount int, interestRate float64, period int) *Loan {
	return &Loan{
		Amount:       amount,
		InterestRate: interestRate,
		Period:       period,
	}
}

// TotalRepaymentCount returns the number of monthly repayments
func (l *Loan) TotalRepaymentCount() int {
	return l.Period * 12
}

func (l *Loan) monthlyInterestRate() float64 {
	return (l.InterestRate / 100.0) / 12.0
}

// EqualInstallmentPayment returns the fixed monthly payment before truncation.
// A zero interest rate yields NaN.
func (l *Loan) EqualInstallmentPayment() float64 {
	rate := l.monthlyInterestRate()
	growth := math.Pow(1.0+rate, float64(l.TotalRepaymentCount()))

	numerator := float64(l.Amount) * rate * growth
	denominator := growth - 1.0
	return numerator / denominator
}

// EqualInstallmentRepayment returns the monthly payment under equal principal-and-interest
// repayment. The interest rate must be positive.
func (l *Loan) EqualInstallmentRepayment() int {
	return int(l.EqualInstallmentPayment())
}

// EqualPrincipalRepayment returns the monthly payment under equal principal repayment
// after elapsedCount repayments. The remaining balance deducts interest on the original
// amount rather than the repaid principal. elapsedCount is not bounds checked.
func (l *Loan) EqualPrincipalRepayment(elapsedCount int) int {
	rate := l.monthlyInterestRate()
	remaining := float64(l.Amount) - (float64(l.Amount) * rate * float64(elapsedCount))

	repayment := remaining/float64(l.TotalRepaymentCount()) + math.Floor(remaining*rate)
	return int(repayment)
}
