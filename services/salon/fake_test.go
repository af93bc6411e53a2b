package salon

import (
	"context"
	"testing"

	"salonassist/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeAvailabilityIsDeterministic(t *testing.T) {
	api := NewFakeAPI()
	ctx := context.Background()

	first, err := api.GetAvailableSlots(ctx, "stf_001", "srv_001", "2025-07-15")
	require.NoError(t, err)
	second, err := api.GetAvailableSlots(ctx, "stf_001", "srv_001", "2025-07-15")
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// A second instance derives the same slots from the same triple.
	other := NewFakeAPI()
	third, err := other.GetAvailableSlots(ctx, "stf_001", "srv_001", "2025-07-15")
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestFakeAvailabilitySlotShape(t *testing.T) {
	api := NewFakeAPI()
	ctx := context.Background()

	grid := make(map[string]bool, len(baseTimes))
	for _, tm := range baseTimes {
		grid[tm] = true
	}

	slots, err := api.GetAvailableSlots(ctx, "stf_002", "srv_003", "2025-08-01")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(slots), 6)
	assert.LessOrEqual(t, len(slots), 12)
	for i, slot := range slots {
		assert.True(t, grid[slot], "slot %q is not on the base grid", slot)
		if i > 0 {
			assert.Less(t, slots[i-1], slot, "slots must be sorted and unique")
		}
	}
}

func TestFakeSearchClients(t *testing.T) {
	api := NewFakeAPI()
	ctx := context.Background()

	clients, err := api.SearchClients(ctx, "Pascal Erni")
	require.NoError(t, err)
	require.NotEmpty(t, clients)
	assert.Equal(t, "cli_001", clients[0].ID)
	assert.Equal(t, "Pascal Erni", clients[0].Name)

	// Matching is a case-insensitive substring.
	clients, err = api.SearchClients(ctx, "erni")
	require.NoError(t, err)
	require.NotEmpty(t, clients)
	assert.Equal(t, "Pascal Erni", clients[0].Name)

	// No match fails soft with an empty list.
	clients, err = api.SearchClients(ctx, "Zebra Quux")
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestFakeCreateAppointmentRemovesSlot(t *testing.T) {
	api := NewFakeAPI()
	ctx := context.Background()

	slots, err := api.GetAvailableSlots(ctx, "stf_001", "srv_002", "2025-09-10")
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	chosen := slots[0]

	appointment, err := api.CreateAppointment(ctx, models.AppointmentRequest{
		ClientID:  "cli_001",
		StaffID:   "stf_001",
		ServiceID: "srv_002",
		StartTime: "2025-09-10 " + chosen,
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", appointment.Status)
	assert.NotEmpty(t, appointment.ID)

	after, err := api.GetAvailableSlots(ctx, "stf_001", "srv_002", "2025-09-10")
	require.NoError(t, err)
	assert.NotContains(t, after, chosen)
	assert.Len(t, after, len(slots)-1)
}

func TestFakeCreateAppointmentConflicts(t *testing.T) {
	api := NewFakeAPI()
	ctx := context.Background()

	slots, err := api.GetAvailableSlots(ctx, "stf_003", "srv_001", "2025-09-11")
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	req := models.AppointmentRequest{
		ClientID:  "cli_002",
		StaffID:   "stf_003",
		ServiceID: "srv_001",
		StartTime: "2025-09-11 " + slots[0],
	}
	_, err = api.CreateAppointment(ctx, req)
	require.NoError(t, err)

	// Booking the same slot again must surface the conflict sentinel.
	_, err = api.CreateAppointment(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	// A time that is never on the grid (lunch hour) also conflicts.
	_, err = api.CreateAppointment(ctx, models.AppointmentRequest{
		ClientID:  "cli_002",
		StaffID:   "stf_003",
		ServiceID: "srv_001",
		StartTime: "2025-09-11 12:00",
	})
	assert.ErrorIs(t, err, ErrConflict)
}
