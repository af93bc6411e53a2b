package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	appointmentRepo "salonassist/database/repository/appointment"
	"salonassist/models"
	"salonassist/services/salon"
	"salonassist/services/tasks"
	"salonassist/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves POST /book_appointment and the appointment log.
type BookingHandler struct {
	Salon        salon.API
	Appointments appointmentRepo.AppointmentRepository
	Reminders    *tasks.ReminderScheduler
	Logger       *zap.Logger
}

func NewBookingHandler(api salon.API, repo appointmentRepo.AppointmentRepository, reminders *tasks.ReminderScheduler, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Salon: api, Appointments: repo, Reminders: reminders, Logger: logger}
}

// BookAppointmentHandler books an appointment after re-checking that the
// requested slot is still free. The availability read and the create are two
// independent provider calls; the provider's atomic create-or-conflict is
// what actually arbitrates races.
func (h *BookingHandler) BookAppointmentHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	parts := strings.SplitN(req.DatetimeStr, " ", 2)
	if len(parts) != 2 {
		utils.JSONError(c, http.StatusBadRequest, "invalid datetime_str",
			`datetime_str must be "YYYY-MM-DD HH:MM"`)
		return
	}
	date, timeOfDay := parts[0], parts[1]

	ctx := c.Request.Context()

	slots, err := h.Salon.GetAvailableSlots(ctx, req.StylistID, req.ServiceID, date)
	if err != nil {
		h.Logger.Error("availability pre-check failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Booking failed",
			"Fehler bei der Verfügbarkeitsabfrage.")
		return
	}
	if !containsSlot(slots, timeOfDay) {
		c.JSON(http.StatusConflict, models.APIResponse{
			Success: false,
			Message: fmt.Sprintf("Kein freier Slot um %s Uhr.", timeOfDay),
		})
		return
	}

	appointment, err := h.Salon.CreateAppointment(ctx, models.AppointmentRequest{
		ClientID:  req.ClientID,
		StaffID:   req.StylistID,
		ServiceID: req.ServiceID,
		StartTime: req.DatetimeStr,
		Notes:     "Gebucht via Salon-Assistent",
	})
	switch {
	case errors.Is(err, salon.ErrConflict):
		c.JSON(http.StatusConflict, models.APIResponse{
			Success: false,
			Message: "Time slot is no longer available",
		})
		return
	case err != nil:
		h.Logger.Error("appointment creation failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Booking failed", err.Error())
		return
	}

	if err := h.Appointments.Log(ctx, *appointment); err != nil {
		// The booking itself succeeded; the log entry is best effort.
		h.Logger.Warn("failed to log appointment",
			zap.String("appointmentID", appointment.ID), zap.Error(err))
	}

	if err := h.Reminders.Schedule(models.ReminderPayload{
		AppointmentID: appointment.ID,
		ClientID:      appointment.ClientID,
		StartTime:     appointment.StartTime,
	}); err != nil {
		h.Logger.Warn("failed to schedule reminder",
			zap.String("appointmentID", appointment.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: fmt.Sprintf("Appointment %s created successfully", appointment.ID),
		Data:    gin.H{"appointment": appointment},
	})
}

// GetClientAppointmentsHandler handles GET /appointments/:clientID.
func (h *BookingHandler) GetClientAppointmentsHandler(c *gin.Context) {
	clientID := c.Param("clientID")
	appointments, err := h.Appointments.GetByClientID(c.Request.Context(), clientID)
	if err != nil {
		h.Logger.Error("failed to fetch appointments",
			zap.String("clientID", clientID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: fmt.Sprintf("Found %d appointments", len(appointments)),
		Data:    gin.H{"appointments": appointments},
	})
}

func containsSlot(slots []string, timeOfDay string) bool {
	for _, s := range slots {
		if s == timeOfDay {
			return true
		}
	}
	return false
}
