package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/api"
	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/types"
)

type TransportHandler struct {
	transportService Service
	logger           *slog.Logger
}

func NewTransportHandler(transportService Service, logger *slog.Logger) *TransportHandler {
	return &TransportHandler{
		transportService: transportService,
		logger:           logger,
	}
}

// FairPrice quotes a point-to-point trip.
func (h *TransportHandler) FairPrice(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TransportHandler").Start(r.Context(), "FairPrice", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/transport/fair-price"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "FairPrice"))

	var req types.FairPriceRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := h.transportService.FairPrice(ctx, req)
	if err != nil {
		if errors.Is(err, types.ErrInvalidTransportParams) {
			l.WarnContext(ctx, "Invalid fair-price request", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to compute fair price", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to compute fair price")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, quote)
}

// AvailableVehicles lists vehicle types operating in a city.
func (h *TransportHandler) AvailableVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TransportHandler").Start(r.Context(), "AvailableVehicles", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/transport/options"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "AvailableVehicles"))

	city := r.URL.Query().Get("city")
	vehicles, err := h.transportService.AvailableVehicles(ctx, city)
	if err != nil {
		if errors.Is(err, types.ErrInvalidTransportParams) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to list available vehicles", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list available vehicles")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"city":     city,
		"vehicles": vehicles,
	})
}

// DailyBudget returns the recommended daily transport spend for a city and
// budget tier.
func (h *TransportHandler) DailyBudget(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TransportHandler").Start(r.Context(), "DailyBudget", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/transport/daily-budget"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "DailyBudget"))

	city := r.URL.Query().Get("city")
	tier := types.NormalizeBudgetTier(r.URL.Query().Get("budget"))

	budget, err := h.transportService.DailyBudget(ctx, city, tier)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrInvalidTransportParams):
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, types.ErrNoRecommendedTransport):
			l.WarnContext(ctx, "No recommended transport", slog.String("city", city), slog.String("budget", tier.String()))
			api.ErrorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
		default:
			l.ErrorContext(ctx, "Failed to compute daily transport budget", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to compute daily transport budget")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, budget)
}
