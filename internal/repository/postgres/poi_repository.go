package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/festival-trip-planner/internal/domain"
	"github.com/festival-trip-planner/internal/domain/repository"
	"github.com/festival-trip-planner/internal/pkg/errors"
)

type poiRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPOIRepository(db *DB) repository.POIRepository {
	return &poiRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const poiColumns = `id, name, lat, lon, event_start, event_end, visit_minutes, tags`

func (r *poiRepository) ListAll(ctx context.Context) ([]*domain.PointOfInterest, error) {
	query := `
		SELECT ` + poiColumns + `
		FROM pois
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list POIs", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	pois := make([]*domain.PointOfInterest, 0)
	for rows.Next() {
		poi, err := scanPOI(rows)
		if err != nil {
			r.logger.Error("Failed to scan POI row", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		pois = append(pois, poi)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("POI row iteration failed", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return pois, nil
}

func (r *poiRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.PointOfInterest, error) {
	result := make(map[string]*domain.PointOfInterest, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT ` + poiColumns + `
		FROM pois
		WHERE id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to get POIs by ids", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		poi, err := scanPOI(rows)
		if err != nil {
			r.logger.Error("Failed to scan POI row", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		result[poi.ID] = poi
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("POI row iteration failed", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return result, nil
}

func scanPOI(rows *sql.Rows) (*domain.PointOfInterest, error) {
	var poi domain.PointOfInterest
	var eventStart, eventEnd sql.NullTime
	var tags pq.StringArray

	err := rows.Scan(
		&poi.ID, &poi.Name, &poi.Lat, &poi.Lon,
		&eventStart, &eventEnd, &poi.VisitMinutes, &tags,
	)
	if err != nil {
		return nil, err
	}

	if eventStart.Valid {
		end := eventStart.Time
		if eventEnd.Valid {
			end = eventEnd.Time
		}
		poi.Dates = &domain.DateRange{
			Start: normalizeDate(eventStart.Time),
			End:   normalizeDate(end),
		}
	}
	poi.Tags = tags

	return &poi, nil
}

// normalizeDate strips any time-of-day component so date math stays on
// midnight UTC.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
