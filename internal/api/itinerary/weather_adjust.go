package itinerary

import (
	"strings"

	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/types"
)

// Indoor-biased categories tried, in order, when swapping out an outdoor
// pick on a wet day.
var indoorCategories = []types.PlaceCategory{
	types.CategoryCultural,
	types.CategoryShopping,
	types.CategoryDining,
}

// AdjustForWeather keeps or reworks one day's allocation based on that
// day's forecast. Clear or missing weather passes the day through
// untouched. Rain or storm swaps each natural-category pick for the first
// not-yet-used indoor place, trying cultural, then shopping, then dining
// pools; a pick with no available substitute is kept as-is. The used set is
// updated for every substitution so later days never re-select the
// substitute. Best-effort only: the result is not guaranteed indoor-only.
func AdjustForWeather(day DayParts, weather *types.WeatherDaySummary, places *types.CategorizedPlaces, used UsedSet) DayParts {
	if weather == nil {
		return day
	}

	description := strings.ToLower(weather.Description)
	if strings.Contains(description, "clear") {
		return day
	}
	if !strings.Contains(description, "rain") && !strings.Contains(description, "storm") {
		return day
	}

	adjusted := DayParts{
		Morning:   substituteOutdoor(day.Morning, places, used),
		Afternoon: substituteOutdoor(day.Afternoon, places, used),
		Evening:   substituteOutdoor(day.Evening, places, used),
	}
	return adjusted
}

func substituteOutdoor(picks []types.Place, places *types.CategorizedPlaces, used UsedSet) []types.Place {
	adjusted := make([]types.Place, len(picks))
	copy(adjusted, picks)

	for i, place := range adjusted {
		if place.Category != types.CategoryNatural {
			continue
		}
		if substitute, ok := firstUnusedIndoor(places, used); ok {
			used.Add(substitute.CatalogID)
			adjusted[i] = substitute
		}
	}
	return adjusted
}

func firstUnusedIndoor(places *types.CategorizedPlaces, used UsedSet) (types.Place, bool) {
	for _, category := range indoorCategories {
		for _, place := range places.ByCategory(category) {
			if !used.Has(place.CatalogID) {
				return place, true
			}
		}
	}
	return types.Place{}, false
}
