package service

import (
	"math"
	"strconv"
	"strings"

	"tip-advisor/domain"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// ParseAmount parses user-typed decimal text. Anything unparsable yields 0.
func ParseAmount(text string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

type TipService struct{}

func NewTipService() *TipService {
	return &TipService{}
}

// Calculate returns the tip and the total for a bill. It has no failure modes.
func (s *TipService) Calculate(input domain.TipInput) domain.TipResult {
	tip := input.BillAmount * input.TipPercent / 100
	total := input.BillAmount + tip

	return domain.TipResult{
		TipAmount:   roundTo2Decimals(tip),
		TotalAmount: roundTo2Decimals(total),
	}
}

// CalculateFromText coerces both fields with ParseAmount before calculating.
func (s *TipService) CalculateFromText(billText, percentText string) domain.TipResult {
	return s.Calculate(domain.TipInput{
		BillAmount: ParseAmount(billText),
		TipPercent: ParseAmount(percentText),
	})
}
