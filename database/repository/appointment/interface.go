package appointmentRepo

import (
	"context"

	"salonassist/database"
	"salonassist/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRepository records every successfully created appointment so the
// salon keeps its own log independent of the upstream provider.
type AppointmentRepository interface {
	Log(ctx context.Context, appointment models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetByClientID(ctx context.Context, clientID string) ([]models.Appointment, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns an AppointmentRepository backed by MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database("salonassist")
	return &mongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
}
