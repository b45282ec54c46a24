package model

import "time"

type EventType string

const (
	EventRoundStarted EventType = "ROUND_STARTED"
	EventRoundClosed  EventType = "ROUND_CLOSED"
	EventVetoToggled  EventType = "VETO_TOGGLED"
	EventVoteCast     EventType = "VOTE_CAST"
	EventReset        EventType = "EVENT_RESET"
)

// Event tells observers that shared round state changed. It carries no state
// itself; observers reload the current round on every event.
type Event struct {
	Type    EventType `json:"type"`
	RoundID RoundID   `json:"round_id,omitempty"`
	At      time.Time `json:"at"`
}
