package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/AnuragWaskle/Ghoomo-mincoders/app/observability/metrics"
	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the place catalog collaborator contract: destination
// resolution and categorized nearby places.
type Service interface {
	ResolveDestination(ctx context.Context, query string) (*types.Destination, error)
	CategorizedPlaces(ctx context.Context, lat, lon float64) (*types.CategorizedPlaces, error)
}

// categorySpec drives one catalog fan-out request.
type categorySpec struct {
	category types.PlaceCategory
	kinds    string
	radius   int // metres
	limit    int
}

// Per-category kinds, radii and limits for the catalog queries.
var categorySpecs = []categorySpec{
	{types.CategoryCultural, "cultural,historic,architecture", 5000, 10},
	{types.CategoryNatural, "natural", 10000, 5},
	{types.CategoryEntertainment, "amusements,sport", 5000, 5},
	{types.CategoryShopping, "commercial", 3000, 5},
	{types.CategoryReligious, "religion", 5000, 3},
	{types.CategoryLodging, "accomodations", 5000, 10},
	{types.CategoryDining, "foods", 2000, 15},
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
		// Destinations rarely move; categorized results churn faster.
		cache: cache.New(24*time.Hour, 1*time.Hour),
	}
}

// geonameResponse mirrors the catalog's destination lookup payload.
type geonameResponse struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// radiusPlace mirrors one entry of the catalog's radius search payload.
type radiusPlace struct {
	XID   string  `json:"xid"`
	Name  string  `json:"name"`
	Kinds string  `json:"kinds"`
	Rate  float64 `json:"rate"`
	Point struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"point"`
}

// ResolveDestination looks up a destination query and returns its canonical
// name, country and coordinates. Returns types.ErrDestinationNotFound when
// the catalog has no match.
func (s *ServiceImpl) ResolveDestination(ctx context.Context, query string) (*types.Destination, error) {
	ctx, span := otel.Tracer("PlaceCatalogService").Start(ctx, "ResolveDestination")
	defer span.End()
	span.SetAttributes(attribute.String("destination.query", query))

	cacheKey := "geoname:" + query
	if cached, found := s.cache.Get(cacheKey); found {
		if dest, ok := cached.(*types.Destination); ok {
			s.logger.DebugContext(ctx, "Destination cache hit", slog.String("query", query))
			return dest, nil
		}
	}

	params := url.Values{}
	params.Set("name", query)

	var resp geonameResponse
	if err := s.getJSON(ctx, "/places/geoname", params, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "geoname lookup failed")
		return nil, fmt.Errorf("%w: resolving destination %q: %w", types.ErrUpstreamUnavailable, query, err)
	}

	if resp.Name == "" {
		return nil, fmt.Errorf("%w: %q", types.ErrDestinationNotFound, query)
	}

	dest := &types.Destination{
		Name:      resp.Name,
		Country:   resp.Country,
		Latitude:  resp.Lat,
		Longitude: resp.Lon,
	}
	s.cache.Set(cacheKey, dest, cache.DefaultExpiration)
	return dest, nil
}

// CategorizedPlaces fetches every category bucket for the coordinates. The
// per-category requests run concurrently; the first failure cancels the
// rest.
func (s *ServiceImpl) CategorizedPlaces(ctx context.Context, lat, lon float64) (*types.CategorizedPlaces, error) {
	ctx, span := otel.Tracer("PlaceCatalogService").Start(ctx, "CategorizedPlaces")
	defer span.End()
	span.SetAttributes(attribute.Float64("lat", lat), attribute.Float64("lon", lon))

	cacheKey := fmt.Sprintf("places:%.4f:%.4f", lat, lon)
	if cached, found := s.cache.Get(cacheKey); found {
		if places, ok := cached.(*types.CategorizedPlaces); ok {
			s.logger.DebugContext(ctx, "Categorized places cache hit", slog.String("key", cacheKey))
			return places, nil
		}
	}

	started := time.Now()
	results := make([][]types.Place, len(categorySpecs))
	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range categorySpecs {
		g.Go(func() error {
			found, err := s.placesByRadius(gctx, lat, lon, spec)
			if err != nil {
				return fmt.Errorf("fetching %s places: %w", spec.category, err)
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "categorized fetch failed")
		return nil, fmt.Errorf("%w: %w", types.ErrUpstreamUnavailable, err)
	}
	metrics.Get().UpstreamFetchDurationSecs.Record(ctx, time.Since(started).Seconds())

	categorized := &types.CategorizedPlaces{}
	for i, spec := range categorySpecs {
		switch spec.category {
		case types.CategoryCultural:
			categorized.Cultural = results[i]
		case types.CategoryNatural:
			categorized.Natural = results[i]
		case types.CategoryEntertainment:
			categorized.Entertainment = results[i]
		case types.CategoryShopping:
			categorized.Shopping = results[i]
		case types.CategoryReligious:
			categorized.Religious = results[i]
		case types.CategoryLodging:
			categorized.Lodging = results[i]
		case types.CategoryDining:
			categorized.Dining = results[i]
		}
	}

	span.SetAttributes(attribute.Int("places.total", categorized.Total()))
	s.cache.Set(cacheKey, categorized, 1*time.Hour)
	return categorized, nil
}

func (s *ServiceImpl) placesByRadius(ctx context.Context, lat, lon float64, spec categorySpec) ([]types.Place, error) {
	params := url.Values{}
	params.Set("radius", fmt.Sprintf("%d", spec.radius))
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("kinds", spec.kinds)
	params.Set("format", "json")
	params.Set("limit", fmt.Sprintf("%d", spec.limit))

	var raw []radiusPlace
	if err := s.getJSON(ctx, "/places/radius", params, &raw); err != nil {
		return nil, err
	}

	places := make([]types.Place, 0, len(raw))
	for _, rp := range raw {
		if rp.XID == "" || rp.Name == "" {
			continue // unnamed catalog noise
		}
		places = append(places, types.Place{
			CatalogID:   rp.XID,
			Name:        rp.Name,
			Description: rp.Kinds,
			Category:    spec.category,
			Latitude:    rp.Point.Lat,
			Longitude:   rp.Point.Lon,
		})
	}
	return places, nil
}

func (s *ServiceImpl) getJSON(ctx context.Context, path string, params url.Values, dst interface{}) error {
	params.Set("apikey", s.apiKey)
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
