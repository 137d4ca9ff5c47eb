package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/festival-trip-planner/internal/domain"
	"github.com/festival-trip-planner/internal/domain/repository"
	"github.com/festival-trip-planner/internal/pkg/errors"
)

// planRepository is the single-slot plan store: one row per user, last write
// wins. The plan payload is stored as jsonb.
type planRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPlanRepository(db *DB) repository.PlanRepository {
	return &planRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *planRepository) Save(ctx context.Context, userID string, record *domain.PlanRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		r.logger.Error("Failed to marshal plan record", zap.Error(err))
		return errors.ErrInternalServer
	}

	query := `
		INSERT INTO plans (user_id, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, userID, payload); err != nil {
		r.logger.Error("Failed to save plan", zap.String("user_id", userID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *planRepository) Load(ctx context.Context, userID string) (*domain.PlanRecord, error) {
	query := `
		SELECT payload
		FROM plans
		WHERE user_id = $1
	`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to load plan", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	var record domain.PlanRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		// Corrupt payload reads as "no saved plan"; the caller starts fresh.
		r.logger.Warn("Discarding corrupt plan payload",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, nil
	}

	return &record, nil
}
