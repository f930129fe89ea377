package itinerary

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	appMiddleware "github.com/AnuragWaskle/Ghoomo-mincoders/app/middleware"
	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/api"
	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/types"
)

type ItineraryHandler struct {
	itineraryService Service
	logger           *slog.Logger
}

func NewItineraryHandler(itineraryService Service, logger *slog.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// Generate builds and persists a complete itinerary for the authenticated user.
func (h *ItineraryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "Generate", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/generate"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Generate"))

	userID, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}

	var req types.GenerateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	itinerary, err := h.itineraryService.GenerateItinerary(ctx, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrInvalidItineraryRequest):
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, types.ErrDestinationNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "Destination not found")
		case errors.Is(err, types.ErrUpstreamUnavailable):
			l.ErrorContext(ctx, "Upstream unavailable", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadGateway, "Upstream data source unavailable")
		default:
			l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to generate itinerary")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, itinerary)
}

// Get returns one itinerary owned by the authenticated user.
func (h *ItineraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "Get", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}"),
	))
	defer span.End()

	userID, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}
	itineraryID, ok := h.pathItineraryID(w, r)
	if !ok {
		return
	}

	itinerary, err := h.itineraryService.GetItinerary(ctx, userID, itineraryID)
	if err != nil {
		h.writeRepoError(ctx, w, r, err, "Failed to get itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, itinerary)
}

// List returns every itinerary owned by the authenticated user, newest first.
func (h *ItineraryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "List", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries"),
	))
	defer span.End()

	userID, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}

	itineraries, err := h.itineraryService.GetItineraries(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list itineraries", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list itineraries")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"itineraries": itineraries,
		"count":       len(itineraries),
	})
}

// Update applies partial changes to an itinerary owned by the authenticated
// user.
func (h *ItineraryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "Update", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Update"))

	userID, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}
	itineraryID, ok := h.pathItineraryID(w, r)
	if !ok {
		return
	}

	var updates types.UpdateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &updates); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	itinerary, err := h.itineraryService.UpdateItinerary(ctx, userID, itineraryID, updates)
	if err != nil {
		h.writeRepoError(ctx, w, r, err, "Failed to update itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, itinerary)
}

// Delete removes an itinerary owned by the authenticated user.
func (h *ItineraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "Delete", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}"),
	))
	defer span.End()

	userID, ok := h.authenticatedUser(w, r)
	if !ok {
		return
	}
	itineraryID, ok := h.pathItineraryID(w, r)
	if !ok {
		return
	}

	if err := h.itineraryService.DeleteItinerary(ctx, userID, itineraryID); err != nil {
		h.writeRepoError(ctx, w, r, err, "Failed to delete itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"message": "Itinerary deleted"})
}

func (h *ItineraryHandler) authenticatedUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw, ok := appMiddleware.GetUserIDFromContext(r.Context())
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid user identity")
		return uuid.Nil, false
	}
	return userID, true
}

func (h *ItineraryHandler) pathItineraryID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	itineraryID, err := uuid.Parse(chi.URLParam(r, "itineraryID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid itinerary id")
		return uuid.Nil, false
	}
	return itineraryID, true
}

func (h *ItineraryHandler) writeRepoError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, types.ErrItineraryNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
	case errors.Is(err, types.ErrItineraryForbidden):
		api.ErrorResponse(w, r, http.StatusForbidden, "Itinerary belongs to another user")
	default:
		h.logger.ErrorContext(ctx, fallback, slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, fallback)
	}
}
