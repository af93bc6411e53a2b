package appointmentRepo

import (
	"context"
	"time"

	"salonassist/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Log inserts an appointment record.
func (r *mongoAppointmentRepo) Log(ctx context.Context, appointment models.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, appointment)
	return err
}

// GetByID returns an appointment by its ID.
func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appointment)
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// GetByClientID fetches all logged appointments for a specific client.
func (r *mongoAppointmentRepo) GetByClientID(ctx context.Context, clientID string) ([]models.Appointment, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"clientId": clientID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}
