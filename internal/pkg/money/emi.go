// Package money holds loan arithmetic and currency display helpers.
package money

import "github.com/shopspring/decimal"

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
)

// MonthlyRate converts an annual percentage rate into a monthly fraction.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(monthsInYear)
}

// EMI returns the equated monthly installment for principal repaid over
// months at annualRatePercent, rounded to cents. Non-positive principal or
// term yields zero.
func EMI(principal, annualRatePercent decimal.Decimal, months int) decimal.Decimal {
	if !principal.IsPositive() || months <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(months))
	r := MonthlyRate(annualRatePercent)
	if r.IsZero() {
		return principal.Div(n).Round(2)
	}
	pow := decimal.NewFromInt(1).Add(r).Pow(n)
	return principal.Mul(r).Mul(pow).Div(pow.Sub(decimal.NewFromInt(1))).Round(2)
}

// Split is one installment broken into interest and principal.
type Split struct {
	Installment decimal.Decimal `json:"installment"`
	Interest    decimal.Decimal `json:"interest"`
	Principal   decimal.Decimal `json:"principal"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// NextInstallment splits the next EMI on outstanding. The installment is
// recomputed from the outstanding amount and the original term.
func NextInstallment(outstanding, annualRatePercent decimal.Decimal, months int) Split {
	emi := EMI(outstanding, annualRatePercent, months)
	interest := decimal.Zero
	if outstanding.IsPositive() {
		interest = outstanding.Mul(MonthlyRate(annualRatePercent)).Round(2)
	}
	principal := decimal.Max(decimal.Zero, emi.Sub(interest)).Round(2)
	remaining := decimal.Max(decimal.Zero, outstanding.Sub(principal)).Round(2)
	return Split{Installment: emi, Interest: interest, Principal: principal, Remaining: remaining}
}

// ScheduleRow is one month of an amortisation table.
type ScheduleRow struct {
	Month int `json:"month"`
	Split
}

// Schedule builds the amortisation table for a fixed EMI. The last row
// absorbs rounding so the balance ends at zero.
func Schedule(principal, annualRatePercent decimal.Decimal, months int) []ScheduleRow {
	emi := EMI(principal, annualRatePercent, months)
	if emi.IsZero() {
		return nil
	}
	r := MonthlyRate(annualRatePercent)
	balance := principal
	rows := make([]ScheduleRow, 0, months)
	for m := 1; m <= months; m++ {
		interest := balance.Mul(r).Round(2)
		principalPart := emi.Sub(interest)
		installment := emi
		if m == months || principalPart.GreaterThan(balance) {
			principalPart = balance
			installment = balance.Add(interest)
		}
		balance = balance.Sub(principalPart)
		rows = append(rows, ScheduleRow{
			Month: m,
			Split: Split{
				Installment: installment.Round(2),
				Interest:    interest,
				Principal:   principalPart.Round(2),
				Remaining:   balance.Round(2),
			},
		})
		if !balance.IsPositive() {
			break
		}
	}
	return rows
}
