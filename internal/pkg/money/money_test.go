package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEMI(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		months    int
		want      string
	}{
		{name: "standard loan", principal: "100000", rate: "12", months: 12, want: "8884.88"},
		{name: "five and a half percent", principal: "10000", rate: "5.5", months: 12, want: "858.37"},
		{name: "zero rate", principal: "1200", rate: "0", months: 12, want: "100"},
		{name: "zero rate rounds", principal: "1000", rate: "0", months: 3, want: "333.33"},
		{name: "zero principal", principal: "0", rate: "10", months: 12, want: "0"},
		{name: "negative principal", principal: "-5", rate: "10", months: 12, want: "0"},
		{name: "zero term", principal: "1000", rate: "10", months: 0, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EMI(d(tt.principal), d(tt.rate), tt.months)
			assert.True(t, got.Equal(d(tt.want)), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestNextInstallment(t *testing.T) {
	split := NextInstallment(d("100000"), d("12"), 12)
	assert.True(t, split.Installment.Equal(d("8884.88")), split.Installment.String())
	assert.True(t, split.Interest.Equal(d("1000")), split.Interest.String())
	assert.True(t, split.Principal.Equal(d("7884.88")), split.Principal.String())
	assert.True(t, split.Remaining.Equal(d("92115.12")), split.Remaining.String())

	zero := NextInstallment(decimal.Zero, d("12"), 12)
	assert.True(t, zero.Installment.IsZero())
	assert.True(t, zero.Remaining.IsZero())
}

func TestNextInstallmentNeverGoesNegative(t *testing.T) {
	split := NextInstallment(d("50"), d("0"), 1)
	assert.True(t, split.Principal.Equal(d("50")))
	assert.True(t, split.Remaining.IsZero())
}

func TestScheduleEndsAtZero(t *testing.T) {
	rows := Schedule(d("10000"), d("5.5"), 12)
	require.Len(t, rows, 12)
	assert.Equal(t, 1, rows[0].Month)
	assert.True(t, rows[len(rows)-1].Remaining.IsZero(), "last row remaining %s", rows[len(rows)-1].Remaining)

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Principal)
	}
	assert.True(t, total.Equal(d("10000")), "principal paid %s", total)

	assert.Nil(t, Schedule(decimal.Zero, d("5"), 12))
}

func TestSymbol(t *testing.T) {
	cases := map[string]string{
		"USD": "$",
		"eur": "€",
		"GBP": "£",
		"INR": "₹",
		"JPY": "JPY",
		"":    "$",
	}
	for code, want := range cases {
		assert.Equal(t, want, Symbol(code), "code %q", code)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"1234567.891", "USD", "$1,234,567.89"},
		{"0", "", "$0.00"},
		{"999", "EUR", "€999.00"},
		{"1234567.5", "INR", "₹12,34,567.50"},
		{"123456789", "INR", "₹12,34,56,789.00"},
		{"1000", "INR", "₹1,000.00"},
		{"-42.5", "GBP", "-£42.50"},
		{"-0.001", "USD", "$0.00"},
		{"100", "chf", "CHF100.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(d(tt.amount), tt.code), "%s %s", tt.amount, tt.code)
	}
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "USD", NormalizeCurrency(" "))
	assert.Equal(t, "INR", NormalizeCurrency("inr"))
}
