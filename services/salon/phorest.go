package salon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"salonassist/config"
	"salonassist/models"
)

// PhorestAPI talks to the real salon-management REST API. Every call is
// bounded by the configured provider timeout; network failures and
// unexpected statuses surface as ErrUnavailable, a 409 on appointment
// creation as ErrConflict.
type PhorestAPI struct {
	baseURL    string
	apiKey     string
	businessID string
	client     *http.Client
}

func NewPhorestAPI(cfg config.Config) *PhorestAPI {
	timeout := time.Duration(cfg.ProviderTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PhorestAPI{
		baseURL:    cfg.PhorestBaseURL,
		apiKey:     cfg.PhorestAPIKey,
		businessID: cfg.PhorestBusinessID,
		client:     &http.Client{Timeout: timeout},
	}
}

type phorestEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (p *PhorestAPI) businessURL(path string) string {
	return fmt.Sprintf("%s/business/%s%s", p.baseURL, p.businessID, path)
}

func (p *PhorestAPI) do(ctx context.Context, method, rawURL string, body []byte) (*phorestEnvelope, int, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env phorestEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return &env, resp.StatusCode, nil
}

func (p *PhorestAPI) get(ctx context.Context, rawURL string, out interface{}) error {
	env, status, err := p.do(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d: %s", ErrUnavailable, status, env.Message)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: decoding payload: %v", ErrUnavailable, err)
		}
	}
	return nil
}

func (p *PhorestAPI) GetServices(ctx context.Context) ([]models.Service, error) {
	var payload struct {
		Services []models.Service `json:"services"`
	}
	if err := p.get(ctx, p.businessURL("/services"), &payload); err != nil {
		return nil, fmt.Errorf("fetching services: %w", err)
	}
	return payload.Services, nil
}

func (p *PhorestAPI) GetStaff(ctx context.Context) ([]models.Staff, error) {
	var payload struct {
		Staff []models.Staff `json:"staff"`
	}
	if err := p.get(ctx, p.businessURL("/staff"), &payload); err != nil {
		return nil, fmt.Errorf("fetching staff: %w", err)
	}
	return payload.Staff, nil
}

// SearchClients fails soft: an empty result and "nobody matched" are the
// same thing to the caller.
func (p *PhorestAPI) SearchClients(ctx context.Context, query string) ([]models.Client, error) {
	u := p.businessURL("/clients/search") + "?" + url.Values{
		"query": {query},
		"limit": {fmt.Sprint(clientSearchLimit)},
	}.Encode()

	var payload struct {
		Clients []models.Client `json:"clients"`
	}
	if err := p.get(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("searching clients: %w", err)
	}
	return payload.Clients, nil
}

func (p *PhorestAPI) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	var payload struct {
		Client models.Client `json:"client"`
	}
	if err := p.get(ctx, p.businessURL("/clients/"+clientID), &payload); err != nil {
		return nil, fmt.Errorf("fetching client %s: %w", clientID, err)
	}
	return &payload.Client, nil
}

func (p *PhorestAPI) GetAvailableSlots(ctx context.Context, staffID, serviceID, date string) ([]string, error) {
	u := p.businessURL("/availability") + "?" + url.Values{
		"staff_id":   {staffID},
		"service_id": {serviceID},
		"date":       {date},
	}.Encode()

	var payload struct {
		AvailableSlots []string `json:"availableSlots"`
	}
	if err := p.get(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("fetching availability: %w", err)
	}
	return payload.AvailableSlots, nil
}

func (p *PhorestAPI) CreateAppointment(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshalling appointment request: %w", err)
	}

	env, status, err := p.do(ctx, http.MethodPost, p.businessURL("/appointments"), body)
	if err != nil {
		return nil, fmt.Errorf("creating appointment: %w", err)
	}
	switch {
	case status == http.StatusConflict:
		return nil, fmt.Errorf("%s: %w", env.Message, ErrConflict)
	case status != http.StatusOK && status != http.StatusCreated:
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrUnavailable, status, env.Message)
	}

	var payload struct {
		Appointment models.Appointment `json:"appointment"`
	}
	if env.Data != nil {
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return nil, fmt.Errorf("%w: decoding appointment: %v", ErrUnavailable, err)
		}
	}
	return &payload.Appointment, nil
}
