package errors

import "net/http"

var (
	ErrPlaceNotFound = New(
		"PLACE_NOT_FOUND",
		"Could not locate the requested place",
		http.StatusNotFound,
	)

	ErrRouteUnavailable = New(
		"ROUTE_UNAVAILABLE",
		"Could not compute a route between the given points",
		http.StatusBadGateway,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid corridor radius value",
		http.StatusBadRequest,
	)

	ErrInvalidDayCount = New(
		"INVALID_DAY_COUNT",
		"Day count must be at least 1",
		http.StatusBadRequest,
	)

	ErrInvalidDayIndex = New(
		"INVALID_DAY_INDEX",
		"Day index is outside the plan's travel window",
		http.StatusBadRequest,
	)

	ErrInvalidPacingMode = New(
		"INVALID_PACING_MODE",
		"Pacing mode must be one of relaxed, normal, intense",
		http.StatusBadRequest,
	)

	ErrPOINotFound = New(
		"POI_NOT_FOUND",
		"Point of interest not found in the catalog",
		http.StatusNotFound,
	)

	ErrPlanNotFound = New(
		"PLAN_NOT_FOUND",
		"No saved plan exists for this user",
		http.StatusNotFound,
	)

	ErrNoActivePlan = New(
		"NO_ACTIVE_PLAN",
		"No active plan in this session, generate a route first",
		http.StatusConflict,
	)

	ErrGenerationCancelled = New(
		"GENERATION_CANCELLED",
		"Route generation was superseded by a newer request",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
