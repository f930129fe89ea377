package types

import "fmt"

// BudgetTier selects a fixed daily cost table.
type BudgetTier string

const (
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
)

// CostTable holds the fixed per-day amounts for a budget tier. Every cost
// estimate generated for the tier is drawn from, or bounded by, this table.
type CostTable struct {
	DailyCap      float64 `json:"daily_cap"`
	Accommodation float64 `json:"accommodation"`
	MealCost      float64 `json:"meal_cost"`
	ActivityCap   float64 `json:"activity_cost_cap"`
	TransportCost float64 `json:"transport_cost"`
}

var costTables = map[BudgetTier]CostTable{
	BudgetLow:    {DailyCap: 50, Accommodation: 20, MealCost: 10, ActivityCap: 15, TransportCost: 5},
	BudgetMedium: {DailyCap: 150, Accommodation: 60, MealCost: 25, ActivityCap: 40, TransportCost: 25},
	BudgetHigh:   {DailyCap: 300, Accommodation: 150, MealCost: 50, ActivityCap: 70, TransportCost: 30},
}

// NormalizeBudgetTier maps arbitrary input to a known tier; anything that is
// not "low" or "high" falls back to the medium tier.
func NormalizeBudgetTier(s string) BudgetTier {
	switch BudgetTier(s) {
	case BudgetLow:
		return BudgetLow
	case BudgetHigh:
		return BudgetHigh
	default:
		return BudgetMedium
	}
}

// Costs returns the cost table for the tier.
func (t BudgetTier) Costs() CostTable {
	table, ok := costTables[t]
	if !ok {
		return costTables[BudgetMedium]
	}
	return table
}

// Valid reports whether the tier is one of low/medium/high.
func (t BudgetTier) Valid() bool {
	_, ok := costTables[t]
	return ok
}

func (t BudgetTier) String() string { return string(t) }

// ParseBudgetTier strictly parses a tier, unlike NormalizeBudgetTier.
func ParseBudgetTier(s string) (BudgetTier, error) {
	t := BudgetTier(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown budget tier %q", s)
	}
	return t, nil
}
