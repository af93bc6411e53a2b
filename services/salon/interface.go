package salon

import (
	"context"

	"salonassist/config"
	"salonassist/models"
)

// API is the contract of the salon-management provider. The dialogue engine
// and the REST handlers only ever talk to this interface; the concrete
// implementation (deterministic fake or Phorest REST) is selected at
// construction time.
type API interface {
	SearchClients(ctx context.Context, query string) ([]models.Client, error)
	GetClient(ctx context.Context, clientID string) (*models.Client, error)
	GetServices(ctx context.Context) ([]models.Service, error)
	GetStaff(ctx context.Context) ([]models.Staff, error)
	GetAvailableSlots(ctx context.Context, staffID, serviceID, date string) ([]string, error)
	CreateAppointment(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error)
}

// New returns the provider selected by configuration.
func New(cfg config.Config) API {
	if cfg.UseFakeAPI {
		return NewFakeAPI()
	}
	return NewPhorestAPI(cfg)
}
