package itinerary

import (
	"math/rand"

	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/types"
)

// picksPerPart is the selection quota for each day-part.
const picksPerPart = 2

// DayParts holds one day's place selection, split by day-part.
type DayParts struct {
	Morning   []types.Place
	Afternoon []types.Place
	Evening   []types.Place
}

// UsedSet tracks catalog ids already selected somewhere in the trip. It is
// owned by a single allocation call and never shared across generation
// requests.
type UsedSet map[string]struct{}

func (u UsedSet) Has(id string) bool { _, ok := u[id]; return ok }
func (u UsedSet) Add(id string)      { u[id] = struct{}{} }

// Allocator distributes catalog places across trip-days and day-parts with
// a persona-weighted shuffle-then-greedy strategy. The random source is
// injected so tests can pin the selection.
type Allocator struct {
	rng *rand.Rand
}

func NewAllocator(rng *rand.Rand) *Allocator {
	return &Allocator{rng: rng}
}

// Distribute assigns places to each of the trip's days. Each place is used
// at most once across the whole output; a pool exhausted before quota
// yields fewer picks rather than an error. The returned UsedSet reflects
// every selection made.
func (a *Allocator) Distribute(places *types.CategorizedPlaces, days int, persona types.Persona) ([]DayParts, UsedSet) {
	weights := persona.Weights()
	used := make(UsedSet)

	allocated := make([]DayParts, 0, days)
	for day := 0; day < days; day++ {
		var parts DayParts

		// Morning favors cultural and religious sites.
		parts.Morning = a.selectPlaces(
			concat(places.Cultural, places.Religious),
			weights, used,
		)

		// Afternoon mixes natural, entertainment and shopping.
		parts.Afternoon = a.selectPlaces(
			concat(places.Natural, places.Entertainment, places.Shopping),
			weights, used,
		)

		// Evening is for dining and entertainment.
		parts.Evening = a.selectPlaces(
			concat(places.Dining, places.Entertainment),
			weights, used,
		)

		allocated = append(allocated, parts)
	}

	return allocated, used
}

// selectPlaces shuffles the pool with persona-weighted sampling, then
// greedily takes up to the per-part quota, skipping ids already used
// anywhere in the trip.
func (a *Allocator) selectPlaces(pool []types.Place, weights types.PersonaWeights, used UsedSet) []types.Place {
	shuffled := a.weightedShuffle(pool, weights)

	var selected []types.Place
	for _, place := range shuffled {
		if len(selected) >= picksPerPart {
			break
		}
		if used.Has(place.CatalogID) {
			continue
		}
		selected = append(selected, place)
		used.Add(place.CatalogID)
	}
	return selected
}

// weightedShuffle orders the pool by repeated weighted sampling without
// replacement: places in categories the persona weighs higher tend to come
// out earlier. Zero-weight places still participate with a small floor so
// an extreme persona cannot starve a part entirely.
func (a *Allocator) weightedShuffle(pool []types.Place, weights types.PersonaWeights) []types.Place {
	const weightFloor = 0.01

	remaining := make([]types.Place, len(pool))
	copy(remaining, pool)

	shuffled := make([]types.Place, 0, len(remaining))
	for len(remaining) > 0 {
		var total float64
		for _, place := range remaining {
			total += max(weights[place.Category], weightFloor)
		}

		target := a.rng.Float64() * total
		idx := len(remaining) - 1
		for i, place := range remaining {
			target -= max(weights[place.Category], weightFloor)
			if target < 0 {
				idx = i
				break
			}
		}

		shuffled = append(shuffled, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return shuffled
}

func concat(pools ...[]types.Place) []types.Place {
	var size int
	for _, p := range pools {
		size += len(p)
	}
	merged := make([]types.Place, 0, size)
	for _, p := range pools {
		merged = append(merged, p...)
	}
	return merged
}
