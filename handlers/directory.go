package handlers

import (
	"net/http"

	"salonassist/models"
	"salonassist/services/salon"
	"salonassist/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DirectoryHandler serves the salon reference data: services, staff and
// client search.
type DirectoryHandler struct {
	Salon  salon.API
	Logger *zap.Logger
}

func NewDirectoryHandler(api salon.API, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{Salon: api, Logger: logger}
}

// GetServicesHandler handles GET /services.
func (h *DirectoryHandler) GetServicesHandler(c *gin.Context) {
	services, err := h.Salon.GetServices(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to fetch services", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to fetch services", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Services retrieved successfully",
		Data:    gin.H{"services": services},
	})
}

// GetStaffHandler handles GET /staff.
func (h *DirectoryHandler) GetStaffHandler(c *gin.Context) {
	staff, err := h.Salon.GetStaff(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to fetch staff", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to fetch staff", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Staff retrieved successfully",
		Data:    gin.H{"staff": staff},
	})
}

// SearchClientsHandler handles GET /clients/search?query=.
func (h *DirectoryHandler) SearchClientsHandler(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing query parameter", "query is required")
		return
	}

	clients, err := h.Salon.SearchClients(c.Request.Context(), query)
	if err != nil {
		h.Logger.Error("client search failed", zap.String("query", query), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "client search failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Client search completed",
		Data:    gin.H{"clients": clients},
	})
}

// GetClientHandler handles GET /clients/:clientID.
func (h *DirectoryHandler) GetClientHandler(c *gin.Context) {
	clientID := c.Param("clientID")
	client, err := h.Salon.GetClient(c.Request.Context(), clientID)
	if err != nil {
		h.Logger.Warn("client lookup failed", zap.String("clientID", clientID), zap.Error(err))
		utils.JSONError(c, http.StatusNotFound, "client not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Client retrieved successfully",
		Data:    gin.H{"client": client},
	})
}
