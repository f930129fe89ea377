package itinerary

import (
	"math/rand"

	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/types"
)

// The daily schedule is fixed: seven slots, always present and always in
// this order, regardless of how many places the allocator produced.
//
//	09:00-10:30  attraction (morning pick 1)
//	11:00-12:30  attraction (morning pick 2)
//	12:30-14:00  lunch
//	14:00-15:30  attraction (afternoon pick 1)
//	16:00-18:00  attraction (afternoon pick 2)
//	18:30-20:00  dinner
//	20:00-22:00  attraction (evening pick 1)

const (
	placeholderName        = "Free time to explore"
	placeholderDescription = "Explore the area at your own pace"
)

// Scheduler assembles a day's time slots and rolls up its costs. The random
// source drives per-activity cost estimates and is injected for
// deterministic tests.
type Scheduler struct {
	rng *rand.Rand
}

func NewScheduler(rng *rand.Rand) *Scheduler {
	return &Scheduler{rng: rng}
}

// BuildDay turns a day's (possibly weather-adjusted) selection into the
// fixed seven-slot schedule plus the daily cost breakdown. Missing picks
// render as zero-cost placeholder slots; slot count and timing never vary
// with data availability.
func (s *Scheduler) BuildDay(day DayParts, costs types.CostTable) ([]types.TimeSlot, types.DailyCost) {
	slots := []types.TimeSlot{
		{StartTime: "09:00", EndTime: "10:30", Activity: s.attraction(day.Morning, 0, costs)},
		{StartTime: "11:00", EndTime: "12:30", Activity: s.attraction(day.Morning, 1, costs)},
		{StartTime: "12:30", EndTime: "14:00", Activity: types.Activity{
			Type:          types.ActivityMeal,
			Name:          "Lunch",
			Description:   "Enjoy a local lunch",
			EstimatedCost: costs.MealCost,
		}},
		{StartTime: "14:00", EndTime: "15:30", Activity: s.attraction(day.Afternoon, 0, costs)},
		{StartTime: "16:00", EndTime: "18:00", Activity: s.attraction(day.Afternoon, 1, costs)},
		{StartTime: "18:30", EndTime: "20:00", Activity: types.Activity{
			Type:          types.ActivityMeal,
			Name:          "Dinner",
			Description:   "Enjoy dinner at a local restaurant",
			EstimatedCost: costs.MealCost * 1.5,
		}},
		{StartTime: "20:00", EndTime: "22:00", Activity: s.attraction(day.Evening, 0, costs)},
	}

	return slots, rollUpCosts(slots, costs)
}

// attraction builds the activity for the idx-th pick of a part, or a
// placeholder when the part came up short. Each real activity's cost is an
// independent uniform draw from [0, activityCostCap).
func (s *Scheduler) attraction(picks []types.Place, idx int, costs types.CostTable) types.Activity {
	if idx >= len(picks) {
		return types.Activity{
			Type:        types.ActivityAttraction,
			Name:        placeholderName,
			Description: placeholderDescription,
		}
	}

	place := picks[idx]
	return types.Activity{
		Type:          types.ActivityAttraction,
		Name:          place.Name,
		Description:   place.Description,
		CatalogID:     place.CatalogID,
		Latitude:      place.Latitude,
		Longitude:     place.Longitude,
		EstimatedCost: s.estimateCost(costs.ActivityCap),
	}
}

// estimateCost draws a uniform estimate from [0, bound). A non-positive
// bound yields a free activity; rand.Intn would panic on it.
func (s *Scheduler) estimateCost(bound float64) float64 {
	if bound <= 0 {
		return 0
	}
	return float64(s.rng.Intn(int(bound)))
}

// rollUpCosts sums the day's slots into the four cost components. Transport
// and accommodation come verbatim from the tier table; the total is the
// exact sum of the components with no rounding of its own.
func rollUpCosts(slots []types.TimeSlot, costs types.CostTable) types.DailyCost {
	daily := types.DailyCost{
		Transport:     costs.TransportCost,
		Accommodation: costs.Accommodation,
	}

	for _, slot := range slots {
		if slot.Activity.Type == types.ActivityMeal {
			daily.Meals += slot.Activity.EstimatedCost
		} else {
			daily.Activities += slot.Activity.EstimatedCost
		}
	}

	daily.Total = daily.Activities + daily.Meals + daily.Transport + daily.Accommodation
	return daily
}
