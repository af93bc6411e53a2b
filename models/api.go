package models

// APIResponse is the standard envelope for all salon REST endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// BookingRequest is the body of POST /book_appointment.
// DatetimeStr uses the combined format "YYYY-MM-DD HH:MM".
type BookingRequest struct {
	ClientID    string `json:"client_id" binding:"required"`
	StylistID   string `json:"stylist_id" binding:"required"`
	DatetimeStr string `json:"datetime_str" binding:"required"`
	ServiceID   string `json:"service_id" binding:"required"`
}

// ChatRequest is the body of POST /chat. An empty SessionID starts a new
// conversation.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is the reply to a chat turn.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Stage     Stage  `json:"stage"`
	Reply     string `json:"reply"`
}

// ReminderPayload is the payload of a scheduled appointment reminder task.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	ClientID      string `json:"clientId"`
	ClientName    string `json:"clientName"`
	ServiceName   string `json:"serviceName"`
	StylistName   string `json:"stylistName"`
	StartTime     string `json:"startTime"`
}
