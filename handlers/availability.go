package handlers

import (
	"fmt"
	"net/http"
	"time"

	"salonassist/models"
	"salonassist/services/salon"
	"salonassist/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves GET /availability.
type AvailabilityHandler struct {
	Salon  salon.API
	Logger *zap.Logger
}

func NewAvailabilityHandler(api salon.API, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Salon: api, Logger: logger}
}

// GetAvailabilityHandler returns the free slots for a
// (staff, service, date) triple. The date must be YYYY-MM-DD.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	staffID := c.Query("staff_id")
	serviceID := c.Query("service_id")
	date := c.Query("date")

	if staffID == "" || serviceID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing query parameters",
			"staff_id, service_id and date are required")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date",
			fmt.Sprintf("date %q must be in YYYY-MM-DD format", date))
		return
	}

	slots, err := h.Salon.GetAvailableSlots(c.Request.Context(), staffID, serviceID, date)
	if err != nil {
		h.Logger.Error("availability lookup failed",
			zap.String("staffID", staffID), zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "availability lookup failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: fmt.Sprintf("Found %d available slots", len(slots)),
		Data:    gin.H{"availableSlots": slots},
	})
}
