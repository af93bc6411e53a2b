package models

import "time"

// Service is an offered salon service (reference data from the directory).
type Service struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration int     `json:"duration"` // minutes
	Price    float64 `json:"price"`
}

// Staff is a bookable stylist.
type Staff struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
}

// Client is a salon customer as returned by the directory search.
type Client struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// AppointmentRequest carries the data needed to create an appointment.
// StartTime uses the combined wire format "YYYY-MM-DD HH:MM".
type AppointmentRequest struct {
	ClientID  string `json:"clientId"`
	StaffID   string `json:"staffId"`
	ServiceID string `json:"serviceId"`
	StartTime string `json:"startTime"`
	Notes     string `json:"notes,omitempty"`
}

// Appointment is a confirmed booking.
type Appointment struct {
	ID        string    `json:"id" bson:"id"`
	ClientID  string    `json:"clientId" bson:"clientId"`
	StaffID   string    `json:"staffId" bson:"staffId"`
	ServiceID string    `json:"serviceId" bson:"serviceId"`
	StartTime string    `json:"startTime" bson:"startTime"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
