package types

// VehicleType is a local transport mode priced by the fair-price calculator.
type VehicleType string

const (
	VehicleRickshaw VehicleType = "rickshaw"
	VehicleTaxi     VehicleType = "taxi"
	VehicleUber     VehicleType = "uber"
	VehicleBus      VehicleType = "bus"
	VehicleMetro    VehicleType = "metro"
)

func (v VehicleType) String() string { return string(v) }

// PriceRange bounds a quote at ±10%, each bound rounded independently.
type PriceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// TransportQuote is the fair-price estimate for a single trip.
type TransportQuote struct {
	VehicleType   VehicleType `json:"vehicle_type"`
	BasePrice     float64     `json:"base_price"`
	DistancePrice float64     `json:"distance_price"`
	WaitingCharge float64     `json:"waiting_charge"`
	TimeModifier  float64     `json:"time_modifier"`
	CityModifier  float64     `json:"city_modifier"`
	TotalPrice    float64     `json:"total_price"`
	Currency      string      `json:"currency"`
	PriceRange    PriceRange  `json:"price_range"`
}

// FairPriceRequest is the caller-facing pricing request. Time and
// WaitingMinutes are optional; absent time prices at the day bracket.
type FairPriceRequest struct {
	VehicleType    string  `json:"vehicle_type"`
	DistanceKm     float64 `json:"distance_km"`
	City           string  `json:"city"`
	Time           string  `json:"time,omitempty"` // HH:MM
	WaitingMinutes float64 `json:"waiting_minutes,omitempty"`
}

// VehicleCost is the per-vehicle entry of a city's transport cost table.
type VehicleCost struct {
	Type        VehicleType `json:"type"`
	AvgTripCost float64     `json:"avg_trip_cost"`
	Recommended bool        `json:"recommended_for_budget"`
}

// TransportBudget is the recommended daily transport spend for a city and
// budget tier, with the full cost table for every vehicle type available
// there.
type TransportBudget struct {
	City                 string        `json:"city"`
	Budget               BudgetTier    `json:"budget"`
	DailyBudget          float64       `json:"daily_budget"`
	RecommendedTransport []VehicleType `json:"recommended_transport"`
	TransportCosts       []VehicleCost `json:"transport_costs"`
}
