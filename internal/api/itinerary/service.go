package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/AnuragWaskle/Ghoomo-mincoders/app/observability/metrics"
	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/api/places"
	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/api/transport"
	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/api/weather"
	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/types"
)

const dateLayout = "2006-01-02"

var _ Service = (*ServiceImpl)(nil)

// Service is the itinerary engine's business contract: one-pass generation
// plus owner-scoped reads and writes over the store.
type Service interface {
	GenerateItinerary(ctx context.Context, userID uuid.UUID, req types.GenerateItineraryRequest) (*types.Itinerary, error)
	GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error)
	GetItineraries(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error)
	UpdateItinerary(ctx context.Context, userID, itineraryID uuid.UUID, updates types.UpdateItineraryRequest) (*types.Itinerary, error)
	DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error
}

type ServiceImpl struct {
	logger           *slog.Logger
	repo             Repository
	placesService    places.Service
	weatherService   weather.Service
	transportService transport.Service
	seedFn           func() int64
}

func NewServiceImpl(repo Repository, placesService places.Service, weatherService weather.Service, transportService transport.Service, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:           logger,
		repo:             repo,
		placesService:    placesService,
		weatherService:   weatherService,
		transportService: transportService,
		seedFn:           func() int64 { return time.Now().UnixNano() },
	}
}

// GenerateItinerary runs the full pipeline: resolve the destination, fetch
// places and weather concurrently, allocate places to days, adjust for
// weather, assemble time slots and costs, persist and return the complete
// itinerary. Either upstream failing aborts the whole call; no partial
// itinerary is ever returned.
func (s *ServiceImpl) GenerateItinerary(ctx context.Context, userID uuid.UUID, req types.GenerateItineraryRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("destination.query", req.Destination),
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	started := time.Now()
	l := s.logger.With(slog.String("destination", req.Destination), slog.String("userID", userID.String()))

	start, end, err := parseTripDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if req.Destination == "" {
		return nil, fmt.Errorf("%w: destination is required", types.ErrInvalidItineraryRequest)
	}

	dest, err := s.placesService.ResolveDestination(ctx, req.Destination)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "destination resolution failed")
		return nil, err
	}

	// Whole days between the dates, inclusive of both endpoints.
	tripDays := int(end.Sub(start).Hours()/24) + 1
	span.SetAttributes(attribute.Int("trip.days", tripDays))

	// The two upstream fetches are independent; run them together and let
	// the first failure cancel the other.
	var categorized *types.CategorizedPlaces
	var forecast []types.WeatherDaySummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categorized, err = s.placesService.CategorizedPlaces(gctx, dest.Latitude, dest.Longitude)
		return err
	})
	g.Go(func() error {
		var err error
		forecast, err = s.weatherService.Forecast(gctx, dest.Latitude, dest.Longitude, tripDays)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.Get().UpstreamFetchErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream fetch failed")
		l.ErrorContext(ctx, "Upstream fetch failed", slog.Any("error", err))
		return nil, err
	}

	forecastByDate := make(map[string]types.WeatherDaySummary, len(forecast))
	for _, day := range forecast {
		forecastByDate[day.Date] = day
	}

	tier := types.NormalizeBudgetTier(req.Budget)
	persona := types.Persona(req.TravelPersona)
	costs := tier.Costs()

	rng := rand.New(rand.NewSource(s.seedFn()))
	allocator := NewAllocator(rng)
	scheduler := NewScheduler(rng)

	allocated, used := allocator.Distribute(categorized, tripDays, persona)

	dailyItineraries := make([]types.DailyItinerary, 0, tripDays)
	for day := 0; day < tripDays; day++ {
		date := start.AddDate(0, 0, day).Format(dateLayout)

		var dayWeather *types.WeatherDaySummary
		if summary, ok := forecastByDate[date]; ok {
			dayWeather = &summary
		}

		adjusted := AdjustForWeather(allocated[day], dayWeather, categorized, used)
		slots, dailyCost := scheduler.BuildDay(adjusted, costs)

		dailyItineraries = append(dailyItineraries, types.DailyItinerary{
			Day:       day + 1,
			Date:      date,
			Weather:   dayWeather,
			TimeSlots: slots,
			DailyCost: dailyCost,
		})
	}

	now := time.Now().UTC()
	itinerary := &types.Itinerary{
		ID:               uuid.New(),
		UserID:           userID,
		Destination:      *dest,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Budget:           tier,
		TravelPersona:    persona,
		Preferences:      req.Preferences,
		DailyItineraries: dailyItineraries,
		Weather:          forecast,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// Best effort: a pricing miss must not sink a finished plan.
	if budget, err := s.transportService.DailyBudget(ctx, dest.Name, tier); err != nil {
		l.WarnContext(ctx, "Could not attach transport budget", slog.Any("error", err))
	} else {
		itinerary.TransportBudget = budget
	}

	if err := s.repo.SaveItinerary(ctx, itinerary); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to save itinerary: %w", err)
	}

	metrics.Get().ItinerariesGeneratedTotal.Add(ctx, 1)
	metrics.Get().GenerationDurationSeconds.Record(ctx, time.Since(started).Seconds())
	span.SetStatus(codes.Ok, "Itinerary generated")
	l.InfoContext(ctx, "Itinerary generated",
		slog.String("itineraryID", itinerary.ID.String()),
		slog.Int("days", tripDays),
	)
	return itinerary, nil
}

func (s *ServiceImpl) GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GetItinerary")
	defer span.End()

	itinerary, err := s.repo.GetItinerary(ctx, userID, itineraryID)
	if err != nil {
		if !errors.Is(err, types.ErrItineraryNotFound) && !errors.Is(err, types.ErrItineraryForbidden) {
			s.logger.ErrorContext(ctx, "Repository failed to get itinerary", slog.Any("error", err))
			span.RecordError(err)
		}
		return nil, err
	}
	span.SetStatus(codes.Ok, "Itinerary retrieved")
	return itinerary, nil
}

func (s *ServiceImpl) GetItineraries(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GetItineraries", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	itineraries, err := s.repo.GetItineraries(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to list itineraries", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}
	span.SetAttributes(attribute.Int("itineraries.count", len(itineraries)))
	return itineraries, nil
}

func (s *ServiceImpl) UpdateItinerary(ctx context.Context, userID, itineraryID uuid.UUID, updates types.UpdateItineraryRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "UpdateItinerary", trace.WithAttributes(
		attribute.String("itinerary.id", itineraryID.String()),
	))
	defer span.End()

	if updates.Budget == nil && updates.TravelPersona == nil &&
		updates.Preferences == nil && updates.DailyItineraries == nil {
		// Nothing to change; return the current record.
		return s.repo.GetItinerary(ctx, userID, itineraryID)
	}

	updated, err := s.repo.UpdateItinerary(ctx, userID, itineraryID, updates)
	if err != nil {
		if !errors.Is(err, types.ErrItineraryNotFound) && !errors.Is(err, types.ErrItineraryForbidden) {
			s.logger.ErrorContext(ctx, "Repository failed to update itinerary", slog.Any("error", err))
			span.RecordError(err)
		}
		return nil, err
	}
	span.SetStatus(codes.Ok, "Itinerary updated")
	return updated, nil
}

func (s *ServiceImpl) DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "DeleteItinerary", trace.WithAttributes(
		attribute.String("itinerary.id", itineraryID.String()),
	))
	defer span.End()

	if err := s.repo.DeleteItinerary(ctx, userID, itineraryID); err != nil {
		if !errors.Is(err, types.ErrItineraryNotFound) && !errors.Is(err, types.ErrItineraryForbidden) {
			s.logger.ErrorContext(ctx, "Repository failed to delete itinerary", slog.Any("error", err))
			span.RecordError(err)
		}
		return err
	}
	span.SetStatus(codes.Ok, "Itinerary deleted")
	return nil
}

// parseTripDates validates the ISO trip dates and their ordering.
func parseTripDates(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start date %q", types.ErrInvalidItineraryRequest, startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end date %q", types.ErrInvalidItineraryRequest, endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date before start date", types.ErrInvalidItineraryRequest)
	}
	return start, end, nil
}
