package types

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType distinguishes what occupies a time slot.
type ActivityType string

const (
	ActivityAttraction ActivityType = "attraction"
	ActivityMeal       ActivityType = "meal"
	ActivityTransport  ActivityType = "transport"
)

// Activity is the content of a single time slot. EstimatedCost is always
// non-negative.
type Activity struct {
	Type          ActivityType `json:"type"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	CatalogID     string       `json:"catalog_id,omitempty"`
	Latitude      float64      `json:"lat,omitempty"`
	Longitude     float64      `json:"lon,omitempty"`
	EstimatedCost float64      `json:"estimated_cost"`
}

// TimeSlot is one fixed block in a day's schedule. Times are local HH:MM;
// no timezone conversion is performed.
type TimeSlot struct {
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Activity  Activity `json:"activity"`
}

// DailyCost breaks a day's spend into its four components. Total is always
// the exact sum of the other fields.
type DailyCost struct {
	Activities    float64 `json:"activities"`
	Meals         float64 `json:"meals"`
	Transport     float64 `json:"transport"`
	Accommodation float64 `json:"accommodation"`
	Total         float64 `json:"total"`
}

// DailyItinerary is one planned day: exactly 7 time slots in chronological
// order. Weather is nil when the forecast did not cover the date.
type DailyItinerary struct {
	Day       int                `json:"day"` // 1-based
	Date      string             `json:"date"`
	Weather   *WeatherDaySummary `json:"weather,omitempty"`
	TimeSlots []TimeSlot         `json:"time_slots"`
	DailyCost DailyCost          `json:"daily_cost"`
}

// Preferences are caller-supplied knobs that refine generation. They are
// supplied, never inferred, by the engine.
type Preferences struct {
	Interests         []string `json:"interests,omitempty"`
	AccommodationType string   `json:"accommodation_type,omitempty"`
	Pace              string   `json:"pace,omitempty"`
	Accessibility     bool     `json:"accessibility,omitempty"`
}

// Itinerary is the full generated plan. It is assembled in one orchestration
// pass and persisted as a single unit; the engine never emits partial plans.
type Itinerary struct {
	ID               uuid.UUID           `json:"id"`
	UserID           uuid.UUID           `json:"user_id"`
	Destination      Destination         `json:"destination"`
	StartDate        string              `json:"start_date"`
	EndDate          string              `json:"end_date"`
	Budget           BudgetTier          `json:"budget"`
	TravelPersona    Persona             `json:"travel_persona"`
	Preferences      Preferences         `json:"preferences"`
	DailyItineraries []DailyItinerary    `json:"daily_itineraries"`
	Weather          []WeatherDaySummary `json:"weather,omitempty"`
	TransportBudget  *TransportBudget    `json:"transport_budget,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// GenerateItineraryRequest is the caller-facing generation request.
type GenerateItineraryRequest struct {
	Destination   string      `json:"destination"`
	StartDate     string      `json:"start_date"` // ISO date, 2006-01-02
	EndDate       string      `json:"end_date"`
	Budget        string      `json:"budget"`
	TravelPersona string      `json:"travel_persona"`
	Preferences   Preferences `json:"preferences"`
}

// UpdateItineraryRequest carries optional field replacements. Nil fields are
// left untouched; any update bumps the updated timestamp.
type UpdateItineraryRequest struct {
	Budget           *string           `json:"budget,omitempty"`
	TravelPersona    *string           `json:"travel_persona,omitempty"`
	Preferences      *Preferences      `json:"preferences,omitempty"`
	DailyItineraries *[]DailyItinerary `json:"daily_itineraries,omitempty"`
}
