package salon

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"salonassist/models"

	"github.com/google/uuid"
)

const clientSearchLimit = 10

var fakeServices = []models.Service{
	{ID: "srv_001", Name: "Haarschnitt", Duration: 30, Price: 45.00},
	{ID: "srv_002", Name: "Färben", Duration: 90, Price: 120.00},
	{ID: "srv_003", Name: "Styling", Duration: 45, Price: 60.00},
}

var fakeStaff = []models.Staff{
	{ID: "stf_001", Name: "Maria Schmidt", Email: "maria@salon.com", Specialties: []string{"Haarschnitt", "Styling"}},
	{ID: "stf_002", Name: "Anna Weber", Email: "anna@salon.com", Specialties: []string{"Färben", "Haarschnitt"}},
	{ID: "stf_003", Name: "Sophie Müller", Email: "sophie@salon.com", Specialties: []string{"Styling", "Färben"}},
}

var fakeTestClients = []models.Client{
	{ID: "cli_001", Name: "Pascal Erni", Email: "pascal.erni@email.com", Phone: "+49 123 45678"},
	{ID: "cli_002", Name: "Max Mustermann", Email: "max.mustermann@email.com", Phone: "+49 234 56789"},
	{ID: "cli_003", Name: "Erika Musterfrau", Email: "erika.musterfrau@email.com", Phone: "+49 345 67890"},
}

var fakeClientNames = []string{
	"Pascal Erni", "Max Mustermann", "Erika Musterfrau", "Hans Meyer",
	"Lisa Schmidt", "Thomas Weber", "Julia Fischer", "Michael Wagner",
	"Sarah Becker", "Klaus Hoffmann", "Anna Schulz",
}

// baseTimes is the half-hour grid the fake availability is drawn from
// (morning and afternoon, lunch hour excluded).
var baseTimes = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30", "17:00", "17:30",
}

// FakeAPI is the deterministic in-process provider. Slot generation is keyed
// by the (staff, service, date) triple, so repeated queries within one
// deployment return identical lists unless a booking removed a slot. Bookings
// are held in a mutex-guarded ledger; CreateAppointment is a single
// check-and-set, which makes create-or-conflict atomic.
type FakeAPI struct {
	mu     sync.Mutex
	booked map[string]bool // "staffID|date|time"
}

func NewFakeAPI() *FakeAPI {
	return &FakeAPI{booked: make(map[string]bool)}
}

func (f *FakeAPI) GetServices(ctx context.Context) ([]models.Service, error) {
	out := make([]models.Service, len(fakeServices))
	copy(out, fakeServices)
	return out, nil
}

func (f *FakeAPI) GetStaff(ctx context.Context) ([]models.Staff, error) {
	out := make([]models.Staff, len(fakeStaff))
	copy(out, fakeStaff)
	return out, nil
}

// SearchClients matches the query as a case-insensitive substring of the
// client name. The fixed test clients are searched first so that they keep
// their stable IDs; "no match" yields an empty list, never an error.
func (f *FakeAPI) SearchClients(ctx context.Context, query string) ([]models.Client, error) {
	q := strings.ToLower(query)
	var found []models.Client

	for _, c := range fakeTestClients {
		if strings.Contains(strings.ToLower(c.Name), q) {
			found = append(found, c)
		}
	}
	for i, name := range fakeClientNames {
		if len(found) >= clientSearchLimit {
			break
		}
		if !strings.Contains(strings.ToLower(name), q) {
			continue
		}
		if containsClientName(found, name) {
			continue
		}
		found = append(found, models.Client{
			ID:    fmt.Sprintf("cli_%03d", i+100),
			Name:  name,
			Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@email.com",
			Phone: fmt.Sprintf("+49 %d %d", 100+i, 10000+i*37),
		})
	}
	if len(found) > clientSearchLimit {
		found = found[:clientSearchLimit]
	}
	return found, nil
}

func (f *FakeAPI) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	for _, c := range fakeTestClients {
		if c.ID == clientID {
			client := c
			return &client, nil
		}
	}
	return &models.Client{
		ID:    clientID,
		Name:  fakeClientNames[len(clientID)%len(fakeClientNames)],
		Email: "client." + clientID + "@email.com",
	}, nil
}

// GetAvailableSlots derives a per-triple generator so that the same
// (staff, service, date) always yields the same slot list, then filters out
// slots already taken in the booking ledger.
func (f *FakeAPI) GetAvailableSlots(ctx context.Context, staffID, serviceID, date string) ([]string, error) {
	slots := generateSlots(staffID, serviceID, date)

	f.mu.Lock()
	defer f.mu.Unlock()
	free := slots[:0]
	for _, t := range slots {
		if !f.booked[ledgerKey(staffID, date, t)] {
			free = append(free, t)
		}
	}
	return free, nil
}

// CreateAppointment reserves the slot or reports a conflict. The whole
// check-and-book runs under the ledger lock so two racing sessions cannot
// both take the same slot.
func (f *FakeAPI) CreateAppointment(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error) {
	date, timeOfDay, err := splitStartTime(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", req.StartTime, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	inGrid := false
	for _, t := range generateSlots(req.StaffID, req.ServiceID, date) {
		if t == timeOfDay {
			inGrid = true
			break
		}
	}
	key := ledgerKey(req.StaffID, date, timeOfDay)
	if !inGrid || f.booked[key] {
		return nil, fmt.Errorf("no free slot at %s on %s: %w", timeOfDay, date, ErrConflict)
	}
	f.booked[key] = true

	return &models.Appointment{
		ID:        "apt_" + uuid.New().String()[:8],
		ClientID:  req.ClientID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		StartTime: req.StartTime,
		Status:    "confirmed",
		CreatedAt: time.Now(),
	}, nil
}

// generateSlots picks 6 to 12 entries from the base grid using a generator
// seeded by the triple. The seed is local to the call; no shared random
// state is touched.
func generateSlots(staffID, serviceID, date string) []string {
	seedString := staffID + "-" + serviceID + "-" + date
	var seed int64
	for _, c := range seedString {
		seed += int64(c)
	}
	rng := rand.New(rand.NewSource(seed))

	n := 6 + rng.Intn(7)
	perm := rng.Perm(len(baseTimes))
	slots := make([]string, 0, n)
	for _, idx := range perm[:n] {
		slots = append(slots, baseTimes[idx])
	}
	sort.Strings(slots)
	return slots
}

func ledgerKey(staffID, date, timeOfDay string) string {
	return staffID + "|" + date + "|" + timeOfDay
}

func splitStartTime(startTime string) (date, timeOfDay string, err error) {
	ts, err := time.Parse("2006-01-02 15:04", startTime)
	if err != nil {
		return "", "", err
	}
	return ts.Format("2006-01-02"), ts.Format("15:04"), nil
}

func containsClientName(clients []models.Client, name string) bool {
	for _, c := range clients {
		if c.Name == name {
			return true
		}
	}
	return false
}
