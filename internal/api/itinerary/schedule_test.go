package itinerary

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/types"
)

func fullDayParts() DayParts {
	return DayParts{
		Morning: []types.Place{
			{CatalogID: "c-1", Name: "Old Fort", Category: types.CategoryCultural},
			{CatalogID: "r-1", Name: "Riverside Temple", Category: types.CategoryReligious},
		},
		Afternoon: []types.Place{
			{CatalogID: "n-1", Name: "Botanical Garden", Category: types.CategoryNatural},
			{CatalogID: "s-1", Name: "Spice Market", Category: types.CategoryShopping},
		},
		Evening: []types.Place{
			{CatalogID: "d-1", Name: "Rooftop Restaurant", Category: types.CategoryDining},
		},
	}
}

func TestScheduler_BuildDay(t *testing.T) {
	costs := types.BudgetMedium.Costs()

	t.Run("always seven slots in chronological order", func(t *testing.T) {
		scheduler := NewScheduler(rand.New(rand.NewSource(1)))

		slots, _ := scheduler.BuildDay(fullDayParts(), costs)
		require.Len(t, slots, 7)

		expected := [][2]string{
			{"09:00", "10:30"},
			{"11:00", "12:30"},
			{"12:30", "14:00"},
			{"14:00", "15:30"},
			{"16:00", "18:00"},
			{"18:30", "20:00"},
			{"20:00", "22:00"},
		}
		for i, slot := range slots {
			assert.Equal(t, expected[i][0], slot.StartTime, "slot %d start", i)
			assert.Equal(t, expected[i][1], slot.EndTime, "slot %d end", i)
		}
	})

	t.Run("meal slots use tier meal pricing", func(t *testing.T) {
		scheduler := NewScheduler(rand.New(rand.NewSource(2)))

		slots, _ := scheduler.BuildDay(fullDayParts(), costs)

		lunch, dinner := slots[2].Activity, slots[5].Activity
		assert.Equal(t, types.ActivityMeal, lunch.Type)
		assert.Equal(t, costs.MealCost, lunch.EstimatedCost)
		assert.Equal(t, types.ActivityMeal, dinner.Type)
		assert.Equal(t, costs.MealCost*1.5, dinner.EstimatedCost)
	})

	t.Run("picks land in their day-part slots", func(t *testing.T) {
		scheduler := NewScheduler(rand.New(rand.NewSource(3)))

		slots, _ := scheduler.BuildDay(fullDayParts(), costs)
		assert.Equal(t, "Old Fort", slots[0].Activity.Name)
		assert.Equal(t, "Riverside Temple", slots[1].Activity.Name)
		assert.Equal(t, "Botanical Garden", slots[3].Activity.Name)
		assert.Equal(t, "Spice Market", slots[4].Activity.Name)
		assert.Equal(t, "Rooftop Restaurant", slots[6].Activity.Name)
	})

	t.Run("missing picks become zero-cost placeholders", func(t *testing.T) {
		scheduler := NewScheduler(rand.New(rand.NewSource(4)))

		slots, _ := scheduler.BuildDay(DayParts{}, costs)
		require.Len(t, slots, 7)

		for _, i := range []int{0, 1, 3, 4, 6} {
			activity := slots[i].Activity
			assert.Equal(t, types.ActivityAttraction, activity.Type)
			assert.Equal(t, placeholderName, activity.Name)
			assert.Zero(t, activity.EstimatedCost, "slot %d", i)
		}
	})

	t.Run("activity costs respect each tier's cap", func(t *testing.T) {
		for _, tier := range []types.BudgetTier{types.BudgetLow, types.BudgetMedium, types.BudgetHigh} {
			scheduler := NewScheduler(rand.New(rand.NewSource(5)))
			tierCosts := tier.Costs()

			for i := 0; i < 50; i++ {
				slots, _ := scheduler.BuildDay(fullDayParts(), tierCosts)
				for _, slot := range slots {
					if slot.Activity.Type == types.ActivityAttraction {
						assert.GreaterOrEqual(t, slot.Activity.EstimatedCost, 0.0, "tier %s", tier)
						assert.Less(t, slot.Activity.EstimatedCost, tierCosts.ActivityCap, "tier %s", tier)
					}
				}
			}
		}
	})

	t.Run("zero cost table builds a free day instead of panicking", func(t *testing.T) {
		scheduler := NewScheduler(rand.New(rand.NewSource(8)))

		slots, dailyCost := scheduler.BuildDay(fullDayParts(), types.CostTable{})
		require.Len(t, slots, 7)
		for _, slot := range slots {
			assert.Zero(t, slot.Activity.EstimatedCost)
		}
		assert.Zero(t, dailyCost.Total)
	})

	t.Run("daily cost total is the exact component sum", func(t *testing.T) {
		scheduler := NewScheduler(rand.New(rand.NewSource(6)))

		_, dailyCost := scheduler.BuildDay(fullDayParts(), costs)
		assert.Equal(t,
			dailyCost.Activities+dailyCost.Meals+dailyCost.Transport+dailyCost.Accommodation,
			dailyCost.Total,
		)
		assert.Equal(t, costs.TransportCost, dailyCost.Transport)
		assert.Equal(t, costs.Accommodation, dailyCost.Accommodation)
		assert.Equal(t, costs.MealCost*2.5, dailyCost.Meals)
	})

	t.Run("empty day still carries fixed costs", func(t *testing.T) {
		scheduler := NewScheduler(rand.New(rand.NewSource(7)))

		_, dailyCost := scheduler.BuildDay(DayParts{}, costs)
		assert.Zero(t, dailyCost.Activities)
		assert.Equal(t, costs.MealCost*2.5, dailyCost.Meals)
		assert.Equal(t, costs.TransportCost+costs.Accommodation+costs.MealCost*2.5, dailyCost.Total)
	})
}
