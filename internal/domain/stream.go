package domain

import "time"

// Stream names (must match the downstream export formatter)
const (
	StreamPlanSaved = "stream:plan:saved"
)

// StreamMessage is one raw entry read from a Redis Stream; Data holds the
// JSON-encoded event payload.
type StreamMessage struct {
	ID   string
	Data string
}

// PlanSavedEvent is published whenever a user saves their plan. The export
// worker picks it up, re-joins the plan with the catalog and prepares the
// printable itinerary document for the formatting collaborator.
type PlanSavedEvent struct {
	UserID  string    `json:"user_id"`
	PlanID  string    `json:"plan_id"`
	SavedAt time.Time `json:"saved_at"`
}

// ItineraryDocument is the finalized, time-budgeted itinerary handed to the
// external document formatter: all days with ordered stops and computed times.
type ItineraryDocument struct {
	PlanID      string            `json:"plan_id"`
	UserID      string            `json:"user_id"`
	Origin      string            `json:"origin"`
	Destination string            `json:"destination"`
	StartDate   time.Time         `json:"start_date"`
	Pace        PacingMode        `json:"pace"`
	Days        []ItineraryDocDay `json:"days"`
	GeneratedAt time.Time         `json:"generated_at"`
}

type ItineraryDocDay struct {
	Day     int        `json:"day"`
	Date    time.Time  `json:"date"`
	Stops   []*Stop    `json:"stops"`
	Summary DaySummary `json:"summary"`
}
