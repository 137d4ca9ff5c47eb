package dto

// GenerateRouteRequest is the single user action that triggers the planning
// pipeline.
type GenerateRouteRequest struct {
	Origin      string  `json:"origin" validate:"required"`
	Destination string  `json:"destination" validate:"required"`
	StartDate   string  `json:"start_date" validate:"required" example:"2026-06-20"`
	DayCount    int     `json:"day_count" validate:"required,gte=1,lte=30"`
	RadiusKm    float64 `json:"radius_km" validate:"gte=0"`
	Pace        string  `json:"pace" validate:"omitempty,oneof=relaxed normal intense"`
}

// AddStopRequest places a catalog POI into a day of the itinerary.
type AddStopRequest struct {
	POIID string `json:"poi_id" validate:"required"`
}
