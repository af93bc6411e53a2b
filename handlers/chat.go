package handlers

import (
	"net/http"

	"salonassist/models"
	"salonassist/services/dialogue"
	"salonassist/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler exposes the booking conversation over HTTP. Each request is
// one dialogue turn: load (or create) the session, run the state machine,
// persist the updated session, return the reply.
type ChatHandler struct {
	Machine *dialogue.Machine
	Store   dialogue.SessionStore
	Logger  *zap.Logger
}

func NewChatHandler(machine *dialogue.Machine, store dialogue.SessionStore, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Machine: machine, Store: store, Logger: logger}
}

// HandleChatTurn processes POST /chat.
func (h *ChatHandler) HandleChatTurn(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()

	var session *models.BookingSession
	if req.SessionID != "" {
		stored, err := h.Store.Get(ctx, req.SessionID)
		if err != nil {
			h.Logger.Error("failed to load chat session",
				zap.String("sessionID", req.SessionID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to load session", err.Error())
			return
		}
		session = stored
	}
	if session == nil {
		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = uuid.New().String()
		}
		session = models.NewBookingSession(sessionID)
	}

	reply := h.Machine.HandleTurn(ctx, session, req.Message)

	if err := h.Store.Save(ctx, session); err != nil {
		h.Logger.Error("failed to save chat session",
			zap.String("sessionID", session.SessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save session", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		SessionID: session.SessionID,
		Stage:     session.Stage,
		Reply:     reply,
	})
}
