// Package docs Festival Trip Planner API.
//
// Trip-corridor itinerary planner for Ecuadorian cultural festivals. Given an
// origin, a destination and a travel window, the service traces a driving
// corridor, selects festivals inside it, and builds a time-budgeted
// multi-day itinerary.
//
// Capabilities:
// - Route generation with corridor buffering and ranked POI selection
// - Per-day stop placement with nearest-neighbor sequencing
// - Arrival time and dwell estimation per pacing mode
// - Single-slot plan persistence and itinerary export events
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
