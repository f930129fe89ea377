package itinerary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveItinerary(ctx context.Context, itinerary *types.Itinerary) error {
	args := m.Called(ctx, itinerary)
	return args.Error(0)
}

func (m *MockRepository) GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	args := m.Called(ctx, userID, itineraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Itinerary), args.Error(1)
}

func (m *MockRepository) GetItineraries(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Itinerary), args.Error(1)
}

func (m *MockRepository) UpdateItinerary(ctx context.Context, userID, itineraryID uuid.UUID, updates types.UpdateItineraryRequest) (*types.Itinerary, error) {
	args := m.Called(ctx, userID, itineraryID, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Itinerary), args.Error(1)
}

func (m *MockRepository) DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error {
	args := m.Called(ctx, userID, itineraryID)
	return args.Error(0)
}

type MockPlacesService struct {
	mock.Mock
}

func (m *MockPlacesService) ResolveDestination(ctx context.Context, name string) (*types.Destination, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Destination), args.Error(1)
}

func (m *MockPlacesService) CategorizedPlaces(ctx context.Context, lat, lon float64) (*types.CategorizedPlaces, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CategorizedPlaces), args.Error(1)
}

type MockWeatherService struct {
	mock.Mock
}

func (m *MockWeatherService) Forecast(ctx context.Context, lat, lon float64, days int) ([]types.WeatherDaySummary, error) {
	args := m.Called(ctx, lat, lon, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.WeatherDaySummary), args.Error(1)
}

func (m *MockWeatherService) CurrentWeather(ctx context.Context, lat, lon float64) (*types.CurrentWeather, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CurrentWeather), args.Error(1)
}

type MockTransportService struct {
	mock.Mock
}

func (m *MockTransportService) FairPrice(ctx context.Context, req types.FairPriceRequest) (*types.TransportQuote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TransportQuote), args.Error(1)
}

func (m *MockTransportService) AvailableVehicles(ctx context.Context, city string) ([]types.VehicleType, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.VehicleType), args.Error(1)
}

func (m *MockTransportService) DailyBudget(ctx context.Context, city string, tier types.BudgetTier) (*types.TransportBudget, error) {
	args := m.Called(ctx, city, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TransportBudget), args.Error(1)
}

func setupItineraryServiceTest() (*ServiceImpl, *MockRepository, *MockPlacesService, *MockWeatherService, *MockTransportService) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockRepo := new(MockRepository)
	mockPlaces := new(MockPlacesService)
	mockWeather := new(MockWeatherService)
	mockTransport := new(MockTransportService)
	service := NewServiceImpl(mockRepo, mockPlaces, mockWeather, mockTransport, logger)
	service.seedFn = func() int64 { return 42 }
	return service, mockRepo, mockPlaces, mockWeather, mockTransport
}

var jaipur = &types.Destination{Name: "Jaipur", Country: "IN", Latitude: 26.9124, Longitude: 75.7873}

func TestServiceImpl_GenerateItinerary(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("three day trip in Jaipur", func(t *testing.T) {
		service, mockRepo, mockPlaces, mockWeather, mockTransport := setupItineraryServiceTest()

		forecast := []types.WeatherDaySummary{
			{Date: "2026-09-01", Description: "clear sky"},
			{Date: "2026-09-02", Description: "few clouds"},
			{Date: "2026-09-03", Description: "clear sky"},
		}
		transportBudget := &types.TransportBudget{City: "Jaipur", Budget: types.BudgetMedium, DailyBudget: 230}

		mockPlaces.On("ResolveDestination", mock.Anything, "Jaipur").Return(jaipur, nil).Once()
		mockPlaces.On("CategorizedPlaces", mock.Anything, jaipur.Latitude, jaipur.Longitude).Return(makeCatalog(10), nil).Once()
		mockWeather.On("Forecast", mock.Anything, jaipur.Latitude, jaipur.Longitude, 3).Return(forecast, nil).Once()
		mockTransport.On("DailyBudget", mock.Anything, "Jaipur", types.BudgetMedium).Return(transportBudget, nil).Once()
		mockRepo.On("SaveItinerary", mock.Anything, mock.AnythingOfType("*types.Itinerary")).Return(nil).Once()

		itinerary, err := service.GenerateItinerary(ctx, userID, types.GenerateItineraryRequest{
			Destination:   "Jaipur",
			StartDate:     "2026-09-01",
			EndDate:       "2026-09-03",
			Budget:        "medium",
			TravelPersona: "culturalExplorer",
		})
		require.NoError(t, err)
		require.Len(t, itinerary.DailyItineraries, 3)

		assert.Equal(t, userID, itinerary.UserID)
		assert.NotEqual(t, uuid.Nil, itinerary.ID)
		assert.Equal(t, "Jaipur", itinerary.Destination.Name)
		assert.Equal(t, types.BudgetMedium, itinerary.Budget)
		assert.Equal(t, transportBudget, itinerary.TransportBudget)
		assert.False(t, itinerary.CreatedAt.IsZero())

		for i, day := range itinerary.DailyItineraries {
			assert.Equal(t, i+1, day.Day)
			assert.Equal(t, forecast[i].Date, day.Date)
			require.NotNil(t, day.Weather)
			assert.Equal(t, forecast[i].Description, day.Weather.Description)
			assert.Len(t, day.TimeSlots, 7)

			// Medium tier fixed costs flow straight into the rollup.
			assert.Equal(t, 25.0, day.DailyCost.Transport)
			assert.Equal(t, 60.0, day.DailyCost.Accommodation)
		}

		mockRepo.AssertExpectations(t)
		mockPlaces.AssertExpectations(t)
		mockWeather.AssertExpectations(t)
		mockTransport.AssertExpectations(t)
	})

	t.Run("week-long trip has seven days", func(t *testing.T) {
		service, mockRepo, mockPlaces, mockWeather, mockTransport := setupItineraryServiceTest()

		mockPlaces.On("ResolveDestination", mock.Anything, "Jaipur").Return(jaipur, nil).Once()
		mockPlaces.On("CategorizedPlaces", mock.Anything, jaipur.Latitude, jaipur.Longitude).Return(makeCatalog(10), nil).Once()
		mockWeather.On("Forecast", mock.Anything, jaipur.Latitude, jaipur.Longitude, 7).Return([]types.WeatherDaySummary{}, nil).Once()
		mockTransport.On("DailyBudget", mock.Anything, "Jaipur", types.BudgetMedium).Return(&types.TransportBudget{}, nil).Once()
		mockRepo.On("SaveItinerary", mock.Anything, mock.AnythingOfType("*types.Itinerary")).Return(nil).Once()

		itinerary, err := service.GenerateItinerary(ctx, userID, types.GenerateItineraryRequest{
			Destination: "Jaipur",
			StartDate:   "2026-09-01",
			EndDate:     "2026-09-07",
			Budget:      "medium",
		})
		require.NoError(t, err)
		require.Len(t, itinerary.DailyItineraries, 7)

		for i, day := range itinerary.DailyItineraries {
			assert.Equal(t, i+1, day.Day)
			assert.Len(t, day.TimeSlots, 7)
		}
		assert.Equal(t, "2026-09-01", itinerary.DailyItineraries[0].Date)
		assert.Equal(t, "2026-09-07", itinerary.DailyItineraries[6].Date)
		mockRepo.AssertExpectations(t)
		mockWeather.AssertExpectations(t)
	})

	t.Run("same-day trip has one day", func(t *testing.T) {
		service, mockRepo, mockPlaces, mockWeather, mockTransport := setupItineraryServiceTest()

		mockPlaces.On("ResolveDestination", mock.Anything, "Jaipur").Return(jaipur, nil).Once()
		mockPlaces.On("CategorizedPlaces", mock.Anything, jaipur.Latitude, jaipur.Longitude).Return(makeCatalog(5), nil).Once()
		mockWeather.On("Forecast", mock.Anything, jaipur.Latitude, jaipur.Longitude, 1).Return([]types.WeatherDaySummary{}, nil).Once()
		mockTransport.On("DailyBudget", mock.Anything, "Jaipur", types.BudgetLow).Return(nil, errors.New("rates offline")).Once()
		mockRepo.On("SaveItinerary", mock.Anything, mock.AnythingOfType("*types.Itinerary")).Return(nil).Once()

		itinerary, err := service.GenerateItinerary(ctx, userID, types.GenerateItineraryRequest{
			Destination: "Jaipur",
			StartDate:   "2026-09-01",
			EndDate:     "2026-09-01",
			Budget:      "low",
		})
		require.NoError(t, err)
		require.Len(t, itinerary.DailyItineraries, 1)

		// No forecast for the date and no transport budget; both degrade.
		assert.Nil(t, itinerary.DailyItineraries[0].Weather)
		assert.Nil(t, itinerary.TransportBudget)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty catalog still yields a full schedule of placeholders", func(t *testing.T) {
		service, mockRepo, mockPlaces, mockWeather, mockTransport := setupItineraryServiceTest()

		mockPlaces.On("ResolveDestination", mock.Anything, "Jaipur").Return(jaipur, nil).Once()
		mockPlaces.On("CategorizedPlaces", mock.Anything, jaipur.Latitude, jaipur.Longitude).Return(&types.CategorizedPlaces{}, nil).Once()
		mockWeather.On("Forecast", mock.Anything, jaipur.Latitude, jaipur.Longitude, 2).Return([]types.WeatherDaySummary{}, nil).Once()
		mockTransport.On("DailyBudget", mock.Anything, "Jaipur", types.BudgetMedium).Return(&types.TransportBudget{}, nil).Once()
		mockRepo.On("SaveItinerary", mock.Anything, mock.Anything).Return(nil).Once()

		itinerary, err := service.GenerateItinerary(ctx, userID, types.GenerateItineraryRequest{
			Destination: "Jaipur",
			StartDate:   "2026-09-01",
			EndDate:     "2026-09-02",
		})
		require.NoError(t, err)
		for _, day := range itinerary.DailyItineraries {
			require.Len(t, day.TimeSlots, 7)
			for _, i := range []int{0, 1, 3, 4, 6} {
				assert.Equal(t, placeholderName, day.TimeSlots[i].Activity.Name)
			}
		}
	})

	t.Run("unknown destination aborts", func(t *testing.T) {
		service, mockRepo, mockPlaces, _, _ := setupItineraryServiceTest()

		mockPlaces.On("ResolveDestination", mock.Anything, "Nowhereville").Return(nil, types.ErrDestinationNotFound).Once()

		_, err := service.GenerateItinerary(ctx, userID, types.GenerateItineraryRequest{
			Destination: "Nowhereville",
			StartDate:   "2026-09-01",
			EndDate:     "2026-09-02",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrDestinationNotFound))
		mockRepo.AssertNotCalled(t, "SaveItinerary", mock.Anything, mock.Anything)
	})

	t.Run("upstream failure aborts without partial output", func(t *testing.T) {
		service, mockRepo, mockPlaces, mockWeather, _ := setupItineraryServiceTest()

		mockPlaces.On("ResolveDestination", mock.Anything, "Jaipur").Return(jaipur, nil).Once()
		mockPlaces.On("CategorizedPlaces", mock.Anything, jaipur.Latitude, jaipur.Longitude).Return(makeCatalog(5), nil).Maybe()
		mockWeather.On("Forecast", mock.Anything, jaipur.Latitude, jaipur.Longitude, 2).
			Return(nil, types.ErrUpstreamUnavailable).Once()

		itinerary, err := service.GenerateItinerary(ctx, userID, types.GenerateItineraryRequest{
			Destination: "Jaipur",
			StartDate:   "2026-09-01",
			EndDate:     "2026-09-02",
		})
		require.Error(t, err)
		assert.Nil(t, itinerary)
		assert.True(t, errors.Is(err, types.ErrUpstreamUnavailable))
		mockRepo.AssertNotCalled(t, "SaveItinerary", mock.Anything, mock.Anything)
	})

	t.Run("invalid dates are rejected before any fetch", func(t *testing.T) {
		service, _, mockPlaces, _, _ := setupItineraryServiceTest()

		cases := []types.GenerateItineraryRequest{
			{Destination: "Jaipur", StartDate: "tomorrow", EndDate: "2026-09-02"},
			{Destination: "Jaipur", StartDate: "2026-09-01", EndDate: "01-09-2026"},
			{Destination: "Jaipur", StartDate: "2026-09-05", EndDate: "2026-09-01"},
			{Destination: "", StartDate: "2026-09-01", EndDate: "2026-09-02"},
		}
		for _, req := range cases {
			_, err := service.GenerateItinerary(ctx, userID, req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrInvalidItineraryRequest), "request %+v", req)
		}
		mockPlaces.AssertNotCalled(t, "CategorizedPlaces", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("save failure surfaces", func(t *testing.T) {
		service, mockRepo, mockPlaces, mockWeather, mockTransport := setupItineraryServiceTest()

		mockPlaces.On("ResolveDestination", mock.Anything, "Jaipur").Return(jaipur, nil).Once()
		mockPlaces.On("CategorizedPlaces", mock.Anything, jaipur.Latitude, jaipur.Longitude).Return(makeCatalog(5), nil).Once()
		mockWeather.On("Forecast", mock.Anything, jaipur.Latitude, jaipur.Longitude, 1).Return([]types.WeatherDaySummary{}, nil).Once()
		mockTransport.On("DailyBudget", mock.Anything, "Jaipur", types.BudgetMedium).Return(&types.TransportBudget{}, nil).Once()
		mockRepo.On("SaveItinerary", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

		_, err := service.GenerateItinerary(ctx, userID, types.GenerateItineraryRequest{
			Destination: "Jaipur",
			StartDate:   "2026-09-01",
			EndDate:     "2026-09-01",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save itinerary")
	})
}

func TestServiceImpl_GetItinerary(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itineraryID := uuid.New()

	t.Run("success", func(t *testing.T) {
		service, mockRepo, _, _, _ := setupItineraryServiceTest()
		expected := &types.Itinerary{ID: itineraryID, UserID: userID}
		mockRepo.On("GetItinerary", mock.Anything, userID, itineraryID).Return(expected, nil).Once()

		itinerary, err := service.GetItinerary(ctx, userID, itineraryID)
		require.NoError(t, err)
		assert.Equal(t, expected, itinerary)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not found passes through untouched", func(t *testing.T) {
		service, mockRepo, _, _, _ := setupItineraryServiceTest()
		mockRepo.On("GetItinerary", mock.Anything, userID, itineraryID).Return(nil, types.ErrItineraryNotFound).Once()

		_, err := service.GetItinerary(ctx, userID, itineraryID)
		assert.True(t, errors.Is(err, types.ErrItineraryNotFound))
	})

	t.Run("foreign itinerary is forbidden", func(t *testing.T) {
		service, mockRepo, _, _, _ := setupItineraryServiceTest()
		mockRepo.On("GetItinerary", mock.Anything, userID, itineraryID).Return(nil, types.ErrItineraryForbidden).Once()

		_, err := service.GetItinerary(ctx, userID, itineraryID)
		assert.True(t, errors.Is(err, types.ErrItineraryForbidden))
	})
}

func TestServiceImpl_UpdateItinerary(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itineraryID := uuid.New()

	t.Run("empty update reads instead of writing", func(t *testing.T) {
		service, mockRepo, _, _, _ := setupItineraryServiceTest()
		current := &types.Itinerary{ID: itineraryID, UserID: userID}
		mockRepo.On("GetItinerary", mock.Anything, userID, itineraryID).Return(current, nil).Once()

		itinerary, err := service.UpdateItinerary(ctx, userID, itineraryID, types.UpdateItineraryRequest{})
		require.NoError(t, err)
		assert.Equal(t, current, itinerary)
		mockRepo.AssertNotCalled(t, "UpdateItinerary", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("field update goes to the repository", func(t *testing.T) {
		service, mockRepo, _, _, _ := setupItineraryServiceTest()
		budget := "high"
		updates := types.UpdateItineraryRequest{Budget: &budget}
		updated := &types.Itinerary{ID: itineraryID, UserID: userID, Budget: types.BudgetHigh}
		mockRepo.On("UpdateItinerary", mock.Anything, userID, itineraryID, updates).Return(updated, nil).Once()

		itinerary, err := service.UpdateItinerary(ctx, userID, itineraryID, updates)
		require.NoError(t, err)
		assert.Equal(t, types.BudgetHigh, itinerary.Budget)
		mockRepo.AssertExpectations(t)
	})
}

func TestServiceImpl_DeleteItinerary(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itineraryID := uuid.New()

	t.Run("success", func(t *testing.T) {
		service, mockRepo, _, _, _ := setupItineraryServiceTest()
		mockRepo.On("DeleteItinerary", mock.Anything, userID, itineraryID).Return(nil).Once()

		err := service.DeleteItinerary(ctx, userID, itineraryID)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not found passes through", func(t *testing.T) {
		service, mockRepo, _, _, _ := setupItineraryServiceTest()
		mockRepo.On("DeleteItinerary", mock.Anything, userID, itineraryID).Return(types.ErrItineraryNotFound).Once()

		err := service.DeleteItinerary(ctx, userID, itineraryID)
		assert.True(t, errors.Is(err, types.ErrItineraryNotFound))
	})
}
