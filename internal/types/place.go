package types

// PlaceCategory identifies which catalog bucket a place came from.
type PlaceCategory string

const (
	CategoryCultural      PlaceCategory = "cultural"
	CategoryNatural       PlaceCategory = "natural"
	CategoryEntertainment PlaceCategory = "entertainment"
	CategoryShopping      PlaceCategory = "shopping"
	CategoryReligious     PlaceCategory = "religious"
	CategoryDining        PlaceCategory = "dining"
	CategoryLodging       PlaceCategory = "lodging"
)

// Destination is a resolved trip destination. Resolved once per itinerary
// and immutable afterwards.
type Destination struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Place is a single point of interest from the external catalog. The
// CatalogID is the deduplication key across a whole trip.
type Place struct {
	CatalogID   string            `json:"catalog_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Category    PlaceCategory     `json:"category"`
	Latitude    float64           `json:"lat"`
	Longitude   float64           `json:"lon"`
	Detail      map[string]string `json:"detail,omitempty"`
}

// CategorizedPlaces groups catalog results by category, mirroring the
// catalog adapter contract.
type CategorizedPlaces struct {
	Cultural      []Place `json:"cultural"`
	Natural       []Place `json:"natural"`
	Entertainment []Place `json:"entertainment"`
	Shopping      []Place `json:"shopping"`
	Religious     []Place `json:"religious"`
	Lodging       []Place `json:"lodging"`
	Dining        []Place `json:"dining"`
}

// ByCategory returns the bucket for a category. Unknown categories yield nil.
func (c *CategorizedPlaces) ByCategory(cat PlaceCategory) []Place {
	switch cat {
	case CategoryCultural:
		return c.Cultural
	case CategoryNatural:
		return c.Natural
	case CategoryEntertainment:
		return c.Entertainment
	case CategoryShopping:
		return c.Shopping
	case CategoryReligious:
		return c.Religious
	case CategoryLodging:
		return c.Lodging
	case CategoryDining:
		return c.Dining
	}
	return nil
}

// Total counts all places across every category.
func (c *CategorizedPlaces) Total() int {
	return len(c.Cultural) + len(c.Natural) + len(c.Entertainment) +
		len(c.Shopping) + len(c.Religious) + len(c.Lodging) + len(c.Dining)
}
