package model

import "time"

type ParticipantID = string

// Vote is one participant's choice within one round. The pair
// (RoundID, ParticipantID) is unique.
type Vote struct {
	RoundID       RoundID
	ParticipantID ParticipantID
	OptionID      string
	CastAt        time.Time
}

// Admission is returned to a participant after submitting a vote. Accepted is
// false when a vote already existed for the participant; ChosenOptionID is
// always the stored choice.
type Admission struct {
	Accepted       bool
	ChosenOptionID string
	RoundID        RoundID
}
