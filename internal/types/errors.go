package types

import "errors"

// Terminal failures surfaced by the engine. Adapter failures are wrapped in
// ErrUpstreamUnavailable and never retried here; retries belong to the
// adapters themselves.
var (
	// ErrDestinationNotFound means the destination query matched nothing in
	// the place catalog.
	ErrDestinationNotFound = errors.New("destination not found")

	// ErrUpstreamUnavailable means a catalog or weather fetch failed or timed
	// out. The generation call aborts; no partial itinerary is returned.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrItineraryNotFound means no itinerary exists with the given id.
	ErrItineraryNotFound = errors.New("itinerary not found")

	// ErrItineraryForbidden means the itinerary exists but belongs to a
	// different owner.
	ErrItineraryForbidden = errors.New("itinerary access forbidden")

	// ErrInvalidTransportParams means the pricing request failed validation
	// before any pricing math ran.
	ErrInvalidTransportParams = errors.New("invalid transport parameters")

	// ErrNoRecommendedTransport means no vehicle type available in the city
	// is recommended for the requested tier, so a daily budget is undefined.
	ErrNoRecommendedTransport = errors.New("no recommended transport for city and budget")

	// ErrInvalidItineraryRequest means the generation request itself is
	// malformed (bad dates, missing destination).
	ErrInvalidItineraryRequest = errors.New("invalid itinerary request")
)
