package models

import "time"

// Stage names a step in the booking conversation's fixed sequence.
type Stage string

const (
	StageAwaitingName         Stage = "awaiting_name"
	StageAwaitingService      Stage = "awaiting_service"
	StageAwaitingStylist      Stage = "awaiting_stylist"
	StageAwaitingDate         Stage = "awaiting_date"
	StageAwaitingTime         Stage = "awaiting_time"
	StageAwaitingConfirmation Stage = "awaiting_confirmation"
)

// BookingSession holds the dialogue state of one booking conversation.
// Fields are bound strictly in stage order; rejecting an input leaves the
// session in the same stage, and the only rollback is a full Reset.
type BookingSession struct {
	SessionID string `json:"sessionId"`
	Stage     Stage  `json:"stage"`

	ClientID   string `json:"clientId,omitempty"`
	ClientName string `json:"clientName,omitempty"`

	ServiceID   string `json:"serviceId,omitempty"`
	ServiceName string `json:"serviceName,omitempty"`

	StylistID   string `json:"stylistId,omitempty"`
	StylistName string `json:"stylistName,omitempty"`

	Date string `json:"date,omitempty"` // YYYY-MM-DD
	Time string `json:"time,omitempty"` // HH:MM, 24-hour

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBookingSession returns a fresh session at the initial stage.
func NewBookingSession(sessionID string) *BookingSession {
	now := time.Now()
	return &BookingSession{
		SessionID: sessionID,
		Stage:     StageAwaitingName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset returns the session to the initial stage and clears every bound
// field. Sessions are reusable; a completed or abandoned booking resets in
// place rather than destroying the session.
func (s *BookingSession) Reset() {
	s.Stage = StageAwaitingName
	s.ClientID = ""
	s.ClientName = ""
	s.ServiceID = ""
	s.ServiceName = ""
	s.StylistID = ""
	s.StylistName = ""
	s.Date = ""
	s.Time = ""
	s.UpdatedAt = time.Now()
}
