package appointmentRepo

import (
	"context"
	"errors"
	"sync"
	"time"

	"salonassist/models"

	"github.com/google/uuid"
)

// memoryAppointmentRepo keeps the appointment log in process memory. Used in
// fake-provider mode and in tests, where no MongoDB is running.
type memoryAppointmentRepo struct {
	mu           sync.RWMutex
	appointments []models.Appointment
}

// NewMemoryAppointmentRepo returns an in-memory AppointmentRepository.
func NewMemoryAppointmentRepo() AppointmentRepository {
	return &memoryAppointmentRepo{}
}

func (r *memoryAppointmentRepo) Log(ctx context.Context, appointment models.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments = append(r.appointments, appointment)
	return nil
}

func (r *memoryAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.appointments {
		if a.ID == id {
			out := a
			return &out, nil
		}
	}
	return nil, errors.New("appointment not found")
}

func (r *memoryAppointmentRepo) GetByClientID(ctx context.Context, clientID string) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Appointment
	for _, a := range r.appointments {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	return out, nil
}
