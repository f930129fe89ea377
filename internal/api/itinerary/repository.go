package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AnuragWaskle/Ghoomo-mincoders/app/observability/metrics"
	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/types"
)

var _ Repository = (*PostgresRepository)(nil)
var _ PgxPool = (*pgxpool.Pool)(nil)

// PgxPool is the slice of pgxpool.Pool the repository depends on, narrowed so
// tests can substitute a mock pool.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// Repository persists itineraries. Every read and write is scoped to the
// owning user; ownership violations surface as ErrItineraryForbidden, missing
// rows as ErrItineraryNotFound.
type Repository interface {
	SaveItinerary(ctx context.Context, itinerary *types.Itinerary) error
	GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error)
	GetItineraries(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error)
	UpdateItinerary(ctx context.Context, userID, itineraryID uuid.UUID, updates types.UpdateItineraryRequest) (*types.Itinerary, error)
	DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error
}

type PostgresRepository struct {
	logger *slog.Logger
	pgpool PgxPool
}

func NewPostgresRepository(pgxpool PgxPool, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		pgpool: pgxpool,
	}
}

const itineraryColumns = `
    id, user_id, destination_name, destination_country, destination_lat, destination_lon,
    to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
    budget, travel_persona, preferences, daily_itineraries, weather, transport_budget,
    created_at, updated_at
`

func (r *PostgresRepository) SaveItinerary(ctx context.Context, itinerary *types.Itinerary) error {
	started := time.Now()

	preferences, dailyItineraries, weather, transportBudget, err := marshalDocuments(itinerary)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO itineraries (
            id, user_id, destination_name, destination_country, destination_lat, destination_lon,
            start_date, end_date, budget, travel_persona,
            preferences, daily_itineraries, weather, transport_budget,
            created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
    `
	_, err = r.pgpool.Exec(ctx, query,
		itinerary.ID, itinerary.UserID,
		itinerary.Destination.Name, itinerary.Destination.Country,
		itinerary.Destination.Latitude, itinerary.Destination.Longitude,
		itinerary.StartDate, itinerary.EndDate,
		itinerary.Budget, itinerary.TravelPersona,
		preferences, dailyItineraries, weather, transportBudget,
		itinerary.CreatedAt, itinerary.UpdatedAt,
	)
	r.observe(ctx, started, err)
	if err != nil {
		return fmt.Errorf("failed to insert itinerary: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	started := time.Now()

	query := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = $1`
	itinerary, err := scanItinerary(r.pgpool.QueryRow(ctx, query, itineraryID))
	r.observe(ctx, started, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrItineraryNotFound
		}
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}
	if itinerary.UserID != userID {
		return nil, types.ErrItineraryForbidden
	}
	return itinerary, nil
}

func (r *PostgresRepository) GetItineraries(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error) {
	started := time.Now()

	query := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pgpool.Query(ctx, query, userID)
	if err != nil {
		r.observe(ctx, started, err)
		return nil, fmt.Errorf("failed to query itineraries: %w", err)
	}
	defer rows.Close()

	itineraries := make([]types.Itinerary, 0)
	for rows.Next() {
		itinerary, err := scanItinerary(rows)
		if err != nil {
			r.observe(ctx, started, err)
			return nil, fmt.Errorf("failed to scan itinerary row: %w", err)
		}
		itineraries = append(itineraries, *itinerary)
	}
	r.observe(ctx, started, rows.Err())
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate itineraries: %w", err)
	}
	return itineraries, nil
}

func (r *PostgresRepository) UpdateItinerary(ctx context.Context, userID, itineraryID uuid.UUID, updates types.UpdateItineraryRequest) (*types.Itinerary, error) {
	tx, err := r.pgpool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var ownerID uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT user_id FROM itineraries WHERE id = $1 FOR UPDATE`, itineraryID).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrItineraryNotFound
		}
		return nil, fmt.Errorf("failed to lock itinerary: %w", err)
	}
	if ownerID != userID {
		return nil, types.ErrItineraryForbidden
	}

	if updates.Budget != nil {
		tier := types.NormalizeBudgetTier(*updates.Budget)
		if _, err := tx.Exec(ctx, `UPDATE itineraries SET budget = $1 WHERE id = $2`, tier, itineraryID); err != nil {
			return nil, fmt.Errorf("failed to update budget: %w", err)
		}
	}
	if updates.TravelPersona != nil {
		if _, err := tx.Exec(ctx, `UPDATE itineraries SET travel_persona = $1 WHERE id = $2`, *updates.TravelPersona, itineraryID); err != nil {
			return nil, fmt.Errorf("failed to update travel persona: %w", err)
		}
	}
	if updates.Preferences != nil {
		doc, err := json.Marshal(updates.Preferences)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal preferences: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE itineraries SET preferences = $1 WHERE id = $2`, doc, itineraryID); err != nil {
			return nil, fmt.Errorf("failed to update preferences: %w", err)
		}
	}
	if updates.DailyItineraries != nil {
		doc, err := json.Marshal(updates.DailyItineraries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal daily itineraries: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE itineraries SET daily_itineraries = $1 WHERE id = $2`, doc, itineraryID); err != nil {
			return nil, fmt.Errorf("failed to update daily itineraries: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE itineraries SET updated_at = now() WHERE id = $1`, itineraryID); err != nil {
		return nil, fmt.Errorf("failed to bump updated_at: %w", err)
	}

	query := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = $1`
	itinerary, err := scanItinerary(tx.QueryRow(ctx, query, itineraryID))
	if err != nil {
		return nil, fmt.Errorf("failed to reload itinerary: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return itinerary, nil
}

func (r *PostgresRepository) DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error {
	started := time.Now()

	var ownerID uuid.UUID
	if err := r.pgpool.QueryRow(ctx, `SELECT user_id FROM itineraries WHERE id = $1`, itineraryID).Scan(&ownerID); err != nil {
		r.observe(ctx, started, err)
		if errors.Is(err, pgx.ErrNoRows) {
			return types.ErrItineraryNotFound
		}
		return fmt.Errorf("failed to find itinerary: %w", err)
	}
	if ownerID != userID {
		return types.ErrItineraryForbidden
	}

	_, err := r.pgpool.Exec(ctx, `DELETE FROM itineraries WHERE id = $1`, itineraryID)
	r.observe(ctx, started, err)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	return nil
}

func (r *PostgresRepository) observe(ctx context.Context, started time.Time, err error) {
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(started).Seconds())
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
	}
}

func marshalDocuments(itinerary *types.Itinerary) (preferences, dailyItineraries, weather, transportBudget []byte, err error) {
	if preferences, err = json.Marshal(itinerary.Preferences); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if dailyItineraries, err = json.Marshal(itinerary.DailyItineraries); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal daily itineraries: %w", err)
	}
	if weather, err = json.Marshal(itinerary.Weather); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal weather: %w", err)
	}
	if itinerary.TransportBudget != nil {
		if transportBudget, err = json.Marshal(itinerary.TransportBudget); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to marshal transport budget: %w", err)
		}
	}
	return preferences, dailyItineraries, weather, transportBudget, nil
}

func scanItinerary(row pgx.Row) (*types.Itinerary, error) {
	var itinerary types.Itinerary
	var preferences, dailyItineraries, weather, transportBudget []byte

	if err := row.Scan(
		&itinerary.ID, &itinerary.UserID,
		&itinerary.Destination.Name, &itinerary.Destination.Country,
		&itinerary.Destination.Latitude, &itinerary.Destination.Longitude,
		&itinerary.StartDate, &itinerary.EndDate,
		&itinerary.Budget, &itinerary.TravelPersona,
		&preferences, &dailyItineraries, &weather, &transportBudget,
		&itinerary.CreatedAt, &itinerary.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(preferences, &itinerary.Preferences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	if err := json.Unmarshal(dailyItineraries, &itinerary.DailyItineraries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal daily itineraries: %w", err)
	}
	if err := json.Unmarshal(weather, &itinerary.Weather); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weather: %w", err)
	}
	if len(transportBudget) > 0 {
		itinerary.TransportBudget = &types.TransportBudget{}
		if err := json.Unmarshal(transportBudget, itinerary.TransportBudget); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transport budget: %w", err)
		}
	}
	return &itinerary, nil
}
