package transport

import "github.com/AnuragWaskle/Ghoomo-mincoders/internal/types"

// The pricing inputs below are fixed configuration data, kept separate from
// the pricing logic so they can be tested and extended on their own.

// vehicleRates is the per-vehicle base rate card, in INR.
type vehicleRates struct {
	BasePrice           float64
	PricePerKm          float64
	WaitingChargePerMin float64
}

var baseRates = map[types.VehicleType]vehicleRates{
	types.VehicleRickshaw: {BasePrice: 25, PricePerKm: 8, WaitingChargePerMin: 1},
	types.VehicleTaxi:     {BasePrice: 50, PricePerKm: 15, WaitingChargePerMin: 2},
	types.VehicleUber:     {BasePrice: 45, PricePerKm: 12, WaitingChargePerMin: 1.5},
	types.VehicleBus:      {BasePrice: 10, PricePerKm: 2, WaitingChargePerMin: 0},
	types.VehicleMetro:    {BasePrice: 10, PricePerKm: 2, WaitingChargePerMin: 0},
}

// cityModifiers scales prices per city and vehicle type. A modifier of 0.0
// marks the vehicle as unavailable in that city. Unknown cities price at the
// default table.
var cityModifiers = map[string]map[types.VehicleType]float64{
	"Delhi":     {types.VehicleRickshaw: 1.0, types.VehicleTaxi: 1.0, types.VehicleUber: 1.0, types.VehicleBus: 1.0, types.VehicleMetro: 1.0},
	"Mumbai":    {types.VehicleRickshaw: 1.2, types.VehicleTaxi: 1.3, types.VehicleUber: 1.2, types.VehicleBus: 1.1, types.VehicleMetro: 1.1},
	"Bangalore": {types.VehicleRickshaw: 1.1, types.VehicleTaxi: 1.2, types.VehicleUber: 1.1, types.VehicleBus: 1.0, types.VehicleMetro: 1.0},
	"Chennai":   {types.VehicleRickshaw: 0.9, types.VehicleTaxi: 1.0, types.VehicleUber: 1.0, types.VehicleBus: 0.9, types.VehicleMetro: 0.9},
	"Kolkata":   {types.VehicleRickshaw: 0.8, types.VehicleTaxi: 0.9, types.VehicleUber: 0.9, types.VehicleBus: 0.8, types.VehicleMetro: 0.8},
	"Jaipur":    {types.VehicleRickshaw: 0.85, types.VehicleTaxi: 0.95, types.VehicleUber: 0.9, types.VehicleBus: 0.85, types.VehicleMetro: 0.0},
	"Goa":       {types.VehicleRickshaw: 1.3, types.VehicleTaxi: 1.4, types.VehicleUber: 1.3, types.VehicleBus: 1.1, types.VehicleMetro: 0.0},
}

var defaultCityModifiers = map[types.VehicleType]float64{
	types.VehicleRickshaw: 1.0,
	types.VehicleTaxi:     1.0,
	types.VehicleUber:     1.0,
	types.VehicleBus:      1.0,
	types.VehicleMetro:    1.0,
}

// Time-of-day brackets: morning [6,10), day [10,16), evening [16,20),
// night otherwise. Absent time prices at the day bracket.
const (
	timeModifierMorning = 1.0
	timeModifierDay     = 0.9
	timeModifierEvening = 1.2
	timeModifierNight   = 1.5
)

// budgetVehicles is the fixed recommendation membership per tier.
var budgetVehicles = map[types.BudgetTier][]types.VehicleType{
	types.BudgetLow:    {types.VehicleBus, types.VehicleMetro, types.VehicleRickshaw},
	types.BudgetMedium: {types.VehicleBus, types.VehicleMetro, types.VehicleRickshaw, types.VehicleUber},
	types.BudgetHigh:   {types.VehicleTaxi, types.VehicleUber},
}

var budgetMultipliers = map[types.BudgetTier]float64{
	types.BudgetLow:    0.7,
	types.BudgetMedium: 1.0,
	types.BudgetHigh:   1.5,
}

// avgTripDistanceKm is the representative trip length used for daily budget
// estimates.
const avgTripDistanceKm = 5.0

// tripsPerDay is the assumed trip count behind the daily budget.
const tripsPerDay = 3

func cityModifiersFor(city string) map[types.VehicleType]float64 {
	if mods, ok := cityModifiers[city]; ok {
		return mods
	}
	return defaultCityModifiers
}

func isRecommendedForBudget(vehicle types.VehicleType, tier types.BudgetTier) bool {
	for _, v := range budgetVehicles[tier] {
		if v == vehicle {
			return true
		}
	}
	return false
}
