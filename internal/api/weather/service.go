package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/AnuragWaskle/Ghoomo-mincoders/app/observability/metrics"
	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the weather collaborator contract. Forecast reduces the
// provider's sub-daily samples into one summary per calendar day.
type Service interface {
	Forecast(ctx context.Context, lat, lon float64, days int) ([]types.WeatherDaySummary, error)
	CurrentWeather(ctx context.Context, lat, lon float64) (*types.CurrentWeather, error)
}

type ServiceImpl struct {
	logger  *slog.Logger
	client  *http.Client
	baseURL string
	apiKey  string
	cache   *cache.Cache
}

func NewServiceImpl(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		cache:   cache.New(30*time.Minute, 10*time.Minute),
	}
}

// forecastResponse mirrors the provider's 3-hourly forecast payload.
type forecastResponse struct {
	List []forecastSample `json:"list"`
}

type forecastSample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		ThreeHours float64 `json:"3h"`
	} `json:"rain"`
}

type currentResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Forecast fetches the multi-day forecast for the coordinates and reduces it
// to daily summaries, sorted by date.
func (s *ServiceImpl) Forecast(ctx context.Context, lat, lon float64, days int) ([]types.WeatherDaySummary, error) {
	ctx, span := otel.Tracer("WeatherService").Start(ctx, "Forecast")
	defer span.End()
	span.SetAttributes(
		attribute.Float64("lat", lat),
		attribute.Float64("lon", lon),
		attribute.Int("days", days),
	)

	cacheKey := fmt.Sprintf("forecast:%.4f:%.4f:%d", lat, lon, days)
	if cached, found := s.cache.Get(cacheKey); found {
		if summaries, ok := cached.([]types.WeatherDaySummary); ok {
			s.logger.DebugContext(ctx, "Forecast cache hit", slog.String("key", cacheKey))
			return summaries, nil
		}
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("cnt", fmt.Sprintf("%d", days*8)) // 8 samples per day, every 3 hours

	started := time.Now()
	var resp forecastResponse
	if err := s.getJSON(ctx, "/forecast", params, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "forecast fetch failed")
		return nil, fmt.Errorf("%w: fetching forecast: %w", types.ErrUpstreamUnavailable, err)
	}
	metrics.Get().UpstreamFetchDurationSecs.Record(ctx, time.Since(started).Seconds())

	summaries := reduceDailyForecasts(resp.List)
	span.SetAttributes(attribute.Int("forecast.days_returned", len(summaries)))
	s.cache.Set(cacheKey, summaries, cache.DefaultExpiration)
	return summaries, nil
}

// CurrentWeather returns the point-in-time observation for the coordinates.
func (s *ServiceImpl) CurrentWeather(ctx context.Context, lat, lon float64) (*types.CurrentWeather, error) {
	ctx, span := otel.Tracer("WeatherService").Start(ctx, "CurrentWeather")
	defer span.End()

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))

	var resp currentResponse
	if err := s.getJSON(ctx, "/weather", params, &resp); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: fetching current weather: %w", types.ErrUpstreamUnavailable, err)
	}

	current := &types.CurrentWeather{
		Temp:      resp.Main.Temp,
		FeelsLike: resp.Main.FeelsLike,
		Humidity:  resp.Main.Humidity,
		WindSpeed: resp.Wind.Speed,
	}
	if len(resp.Weather) > 0 {
		current.Description = resp.Weather[0].Description
		current.Icon = resp.Weather[0].Icon
	}
	return current, nil
}

// reduceDailyForecasts groups 3-hourly samples by calendar day and condenses
// each group: min/max/avg temperature, most frequent description and icon,
// average wind and humidity, total rain.
func reduceDailyForecasts(samples []forecastSample) []types.WeatherDaySummary {
	type dayAccum struct {
		temps        []float64
		descriptions []string
		icons        []string
		wind         []float64
		humidity     []float64
		rain         float64
	}

	byDay := make(map[string]*dayAccum)
	for _, sample := range samples {
		day := time.Unix(sample.Dt, 0).UTC().Format("2006-01-02")
		acc, ok := byDay[day]
		if !ok {
			acc = &dayAccum{}
			byDay[day] = acc
		}
		acc.temps = append(acc.temps, sample.Main.Temp)
		acc.humidity = append(acc.humidity, sample.Main.Humidity)
		acc.wind = append(acc.wind, sample.Wind.Speed)
		acc.rain += sample.Rain.ThreeHours
		if len(sample.Weather) > 0 {
			acc.descriptions = append(acc.descriptions, sample.Weather[0].Description)
			acc.icons = append(acc.icons, sample.Weather[0].Icon)
		}
	}

	summaries := make([]types.WeatherDaySummary, 0, len(byDay))
	for day, acc := range byDay {
		minTemp, maxTemp := acc.temps[0], acc.temps[0]
		for _, t := range acc.temps[1:] {
			if t < minTemp {
				minTemp = t
			}
			if t > maxTemp {
				maxTemp = t
			}
		}
		summaries = append(summaries, types.WeatherDaySummary{
			Date:        day,
			MinTemp:     minTemp,
			MaxTemp:     maxTemp,
			AvgTemp:     average(acc.temps),
			Description: mostFrequent(acc.descriptions),
			Icon:        mostFrequent(acc.icons),
			AvgWind:     average(acc.wind),
			AvgHumidity: average(acc.humidity),
			TotalRain:   acc.rain,
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Date < summaries[j].Date })
	return summaries
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// mostFrequent returns the value occurring most often. Ties resolve to the
// earliest-seen value so the reduction is deterministic.
func mostFrequent(values []string) string {
	if len(values) == 0 {
		return ""
	}
	counts := make(map[string]int, len(values))
	best, bestCount := values[0], 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

func (s *ServiceImpl) getJSON(ctx context.Context, path string, params url.Values, dst interface{}) error {
	params.Set("appid", s.apiKey)
	params.Set("units", "metric")
	reqURL := s.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
