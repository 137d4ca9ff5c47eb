package repository

import (
	"context"

	"github.com/festival-trip-planner/internal/domain"
)

// PlanRepository is the durable single-slot plan store: one saved plan per
// user, last write wins.
type PlanRepository interface {
	Save(ctx context.Context, userID string, record *domain.PlanRecord) error

	// Load returns nil (no error) when no usable plan exists, including when
	// the stored payload is corrupt. Callers start fresh in that case.
	Load(ctx context.Context, userID string) (*domain.PlanRecord, error)
}
