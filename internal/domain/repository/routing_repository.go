package repository

import (
	"context"

	"github.com/festival-trip-planner/internal/domain"
)

// RoutingRepository computes a driving path through the external routing
// provider. Unavailability surfaces as an error; callers show a recoverable
// "could not trace route" state instead of retrying automatically.
type RoutingRepository interface {
	ComputeRoute(ctx context.Context, origin, destination domain.Point) (*domain.Route, error)
}
