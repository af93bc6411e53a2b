package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appointmentRepo "salonassist/database/repository/appointment"
	"salonassist/handlers"
	"salonassist/models"
	"salonassist/routes"
	"salonassist/services/dialogue"
	"salonassist/services/salon"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter(api salon.API) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	store := dialogue.NewMemorySessionStore()
	repo := appointmentRepo.NewMemoryAppointmentRepo()
	machine := dialogue.NewMachine(api, repo, nil, logger, 2*time.Second)

	hb := &routes.HandlerBundle{
		Chat:         handlers.NewChatHandler(machine, store, logger),
		Directory:    handlers.NewDirectoryHandler(api, logger),
		Availability: handlers.NewAvailabilityHandler(api, logger),
		Booking:      handlers.NewBookingHandler(api, repo, nil, logger),
	}

	router := gin.New()
	routes.RegisterRoutes(router, hb)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var decoded map[string]interface{}
	if resp.Body.Len() > 0 {
		if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response body %q: %v", resp.Body.String(), err)
		}
	}
	return resp, decoded
}

func TestGetServices(t *testing.T) {
	router := newTestRouter(salon.NewFakeAPI())

	resp, body := doJSON(t, router, http.MethodGet, "/services", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if body["success"] != true {
		t.Fatalf("expected success=true, got %v", body["success"])
	}
	data := body["data"].(map[string]interface{})
	services := data["services"].([]interface{})
	if len(services) == 0 {
		t.Fatal("expected at least one service")
	}
	first := services[0].(map[string]interface{})
	if first["name"] != "Haarschnitt" {
		t.Fatalf("expected first service Haarschnitt, got %v", first["name"])
	}
}

func TestGetStaff(t *testing.T) {
	router := newTestRouter(salon.NewFakeAPI())

	resp, body := doJSON(t, router, http.MethodGet, "/staff", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	data := body["data"].(map[string]interface{})
	staff := data["staff"].([]interface{})
	if len(staff) != 3 {
		t.Fatalf("expected 3 staff members, got %d", len(staff))
	}
}

func TestSearchClientsRequiresQuery(t *testing.T) {
	router := newTestRouter(salon.NewFakeAPI())

	resp, _ := doJSON(t, router, http.MethodGet, "/clients/search", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	resp, body := doJSON(t, router, http.MethodGet, "/clients/search?query=Pascal", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	data := body["data"].(map[string]interface{})
	clients := data["clients"].([]interface{})
	if len(clients) == 0 {
		t.Fatal("expected at least one client for query Pascal")
	}
}

func TestAvailabilityValidation(t *testing.T) {
	router := newTestRouter(salon.NewFakeAPI())

	resp, _ := doJSON(t, router, http.MethodGet, "/availability", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("missing params: expected 400, got %d", resp.Code)
	}

	resp, _ = doJSON(t, router, http.MethodGet,
		"/availability?staff_id=stf_001&service_id=srv_001&date=22-06-2025", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("bad date: expected 400, got %d", resp.Code)
	}

	resp, body := doJSON(t, router, http.MethodGet,
		"/availability?staff_id=stf_001&service_id=srv_001&date=2025-07-15", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	data := body["data"].(map[string]interface{})
	slots := data["availableSlots"].([]interface{})
	if len(slots) < 6 {
		t.Fatalf("expected at least 6 slots, got %d", len(slots))
	}
}

func TestBookAppointment(t *testing.T) {
	api := salon.NewFakeAPI()
	router := newTestRouter(api)

	slots, err := api.GetAvailableSlots(context.Background(), "stf_001", "srv_001", "2025-07-15")
	if err != nil || len(slots) == 0 {
		t.Fatalf("fake availability failed: %v", err)
	}

	payload := models.BookingRequest{
		ClientID:    "cli_001",
		StylistID:   "stf_001",
		DatetimeStr: "2025-07-15 " + slots[0],
		ServiceID:   "srv_001",
	}

	resp, body := doJSON(t, router, http.MethodPost, "/book_appointment", payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", resp.Code, body)
	}
	if body["success"] != true {
		t.Fatalf("expected success=true, got %v", body["success"])
	}

	// The same slot again conflicts.
	resp, body = doJSON(t, router, http.MethodPost, "/book_appointment", payload)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 on rebooking, got %d: %v", resp.Code, body)
	}
	if body["success"] != false {
		t.Fatalf("expected success=false on conflict, got %v", body["success"])
	}

	// The appointment shows up in the log.
	resp, body = doJSON(t, router, http.MethodGet, "/appointments/cli_001", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	data := body["data"].(map[string]interface{})
	appointments := data["appointments"].([]interface{})
	if len(appointments) != 1 {
		t.Fatalf("expected 1 logged appointment, got %d", len(appointments))
	}
}

func TestBookAppointmentRejectsBadBody(t *testing.T) {
	router := newTestRouter(salon.NewFakeAPI())

	resp, _ := doJSON(t, router, http.MethodPost, "/book_appointment",
		map[string]string{"client_id": "cli_001"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestChatConversation(t *testing.T) {
	router := newTestRouter(salon.NewFakeAPI())

	resp, body := doJSON(t, router, http.MethodPost, "/chat",
		models.ChatRequest{Message: "Pascal Erni"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	sessionID, _ := body["session_id"].(string)
	if sessionID == "" {
		t.Fatal("expected a session_id in the reply")
	}
	if body["stage"] != string(models.StageAwaitingService) {
		t.Fatalf("expected stage awaiting_service, got %v", body["stage"])
	}

	// The second turn continues the same session.
	resp, body = doJSON(t, router, http.MethodPost, "/chat",
		models.ChatRequest{SessionID: sessionID, Message: "Haarschnitt"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body["stage"] != string(models.StageAwaitingStylist) {
		t.Fatalf("expected stage awaiting_stylist, got %v", body["stage"])
	}
	reply, _ := body["reply"].(string)
	if reply == "" {
		t.Fatal("expected a non-empty reply")
	}
}
