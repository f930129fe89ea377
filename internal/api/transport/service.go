package transport

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/AnuragWaskle/Ghoomo-mincoders/app/observability/metrics"
	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service prices point-to-point local transport and derives recommended
// daily transport budgets. All operations are pure functions of their inputs
// and the fixed rate tables.
type Service interface {
	FairPrice(ctx context.Context, req types.FairPriceRequest) (*types.TransportQuote, error)
	AvailableVehicles(ctx context.Context, city string) ([]types.VehicleType, error)
	DailyBudget(ctx context.Context, city string, tier types.BudgetTier) (*types.TransportBudget, error)
}

type ServiceImpl struct {
	logger *slog.Logger
}

func NewServiceImpl(logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger}
}

// FairPrice computes a quote:
//
//	total = (base + distance*perKm + waiting*perMinute) * cityModifier * timeModifier
//
// rounded to the nearest rupee, with a ±10% range whose bounds are rounded
// independently. Validation runs before any pricing math.
func (s *ServiceImpl) FairPrice(ctx context.Context, req types.FairPriceRequest) (*types.TransportQuote, error) {
	ctx, span := otel.Tracer("TransportService").Start(ctx, "FairPrice")
	defer span.End()

	vehicle := types.VehicleType(req.VehicleType)
	rates, ok := baseRates[vehicle]
	if !ok {
		return nil, fmt.Errorf("%w: unknown vehicle type %q", types.ErrInvalidTransportParams, req.VehicleType)
	}
	if req.DistanceKm <= 0 {
		return nil, fmt.Errorf("%w: distance must be greater than zero", types.ErrInvalidTransportParams)
	}
	if req.City == "" {
		return nil, fmt.Errorf("%w: city is required", types.ErrInvalidTransportParams)
	}
	if req.WaitingMinutes < 0 {
		return nil, fmt.Errorf("%w: waiting minutes must not be negative", types.ErrInvalidTransportParams)
	}

	timeModifier, err := timeModifierFor(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidTransportParams, err)
	}

	cityModifier, ok := cityModifiersFor(req.City)[vehicle]
	if !ok {
		cityModifier = 1.0
	}

	span.SetAttributes(
		attribute.String("vehicle_type", vehicle.String()),
		attribute.String("city", req.City),
		attribute.Float64("distance_km", req.DistanceKm),
	)

	basePrice := rates.BasePrice * cityModifier
	distancePrice := req.DistanceKm * rates.PricePerKm * cityModifier
	waitingCharge := req.WaitingMinutes * rates.WaitingChargePerMin * cityModifier

	total := math.Round((basePrice + distancePrice + waitingCharge) * timeModifier)

	metrics.Get().TransportQuotesTotal.Add(ctx, 1)
	s.logger.DebugContext(ctx, "Computed transport quote",
		slog.String("vehicle_type", vehicle.String()),
		slog.String("city", req.City),
		slog.Float64("total_price", total),
	)

	return &types.TransportQuote{
		VehicleType:   vehicle,
		BasePrice:     math.Round(basePrice),
		DistancePrice: math.Round(distancePrice),
		WaitingCharge: math.Round(waitingCharge),
		TimeModifier:  timeModifier,
		CityModifier:  cityModifier,
		TotalPrice:    total,
		Currency:      "INR",
		PriceRange: types.PriceRange{
			Low:  math.Round(total * 0.9),
			High: math.Round(total * 1.1),
		},
	}, nil
}

// AvailableVehicles lists the vehicle types operating in a city, i.e. those
// whose city modifier is positive. Output order is stable.
func (s *ServiceImpl) AvailableVehicles(ctx context.Context, city string) ([]types.VehicleType, error) {
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", types.ErrInvalidTransportParams)
	}

	mods := cityModifiersFor(city)
	available := make([]types.VehicleType, 0, len(mods))
	for vehicle, modifier := range mods {
		if modifier > 0 {
			available = append(available, vehicle)
		}
	}
	sort.Slice(available, func(i, j int) bool { return available[i] < available[j] })
	return available, nil
}

// DailyBudget derives the recommended daily transport spend for a city and
// tier: the average, over the recommended vehicle types available there, of
// a representative trip cost times three trips a day times the tier
// multiplier. An empty recommended set is surfaced, never divided by.
func (s *ServiceImpl) DailyBudget(ctx context.Context, city string, tier types.BudgetTier) (*types.TransportBudget, error) {
	ctx, span := otel.Tracer("TransportService").Start(ctx, "DailyBudget")
	defer span.End()
	span.SetAttributes(attribute.String("city", city), attribute.String("budget", tier.String()))

	if city == "" {
		return nil, fmt.Errorf("%w: city is required", types.ErrInvalidTransportParams)
	}
	if !tier.Valid() {
		return nil, fmt.Errorf("%w: unknown budget tier %q", types.ErrInvalidTransportParams, tier)
	}

	available, err := s.AvailableVehicles(ctx, city)
	if err != nil {
		return nil, err
	}

	mods := cityModifiersFor(city)
	multiplier := budgetMultipliers[tier]

	costs := make([]types.VehicleCost, 0, len(available))
	var recommended []types.VehicleType
	var sum float64
	for _, vehicle := range available {
		rates := baseRates[vehicle]
		avgTripCost := math.Round((rates.BasePrice + avgTripDistanceKm*rates.PricePerKm) * mods[vehicle])
		isRecommended := isRecommendedForBudget(vehicle, tier)

		costs = append(costs, types.VehicleCost{
			Type:        vehicle,
			AvgTripCost: avgTripCost,
			Recommended: isRecommended,
		})
		if isRecommended {
			recommended = append(recommended, vehicle)
			sum += avgTripCost * tripsPerDay * multiplier
		}
	}

	if len(recommended) == 0 {
		return nil, fmt.Errorf("%w: city %q, tier %q", types.ErrNoRecommendedTransport, city, tier)
	}

	return &types.TransportBudget{
		City:                 city,
		Budget:               tier,
		DailyBudget:          math.Round(sum / float64(len(recommended))),
		RecommendedTransport: recommended,
		TransportCosts:       costs,
	}, nil
}

// timeModifierFor maps an optional HH:MM time of day to its pricing bracket.
// An empty time prices at the day bracket.
func timeModifierFor(t string) (float64, error) {
	if t == "" {
		return timeModifierDay, nil
	}

	parts := strings.SplitN(t, ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("malformed time of day %q", t)
	}

	switch {
	case hour >= 6 && hour < 10:
		return timeModifierMorning, nil
	case hour >= 10 && hour < 16:
		return timeModifierDay, nil
	case hour >= 16 && hour < 20:
		return timeModifierEvening, nil
	default:
		return timeModifierNight, nil
	}
}
