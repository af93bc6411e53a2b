package dialogue

import (
	"context"
	"errors"
	"strings"
	"time"

	appointmentRepo "salonassist/database/repository/appointment"
	"salonassist/models"
	"salonassist/services/salon"
	"salonassist/services/tasks"

	"go.uber.org/zap"
)

// Machine drives one booking conversation through its six stages. It maps
// (current stage, session state, raw user text) to (next stage, updated
// state, reply). Conversation state lives entirely in the caller-owned
// BookingSession; a confirmed booking is additionally written to the
// appointment log and the reminder queue, same as the REST booking path.
type Machine struct {
	Salon        salon.API
	Appointments appointmentRepo.AppointmentRepository
	Reminders    *tasks.ReminderScheduler
	Logger       *zap.Logger
	CallTimeout  time.Duration
}

func NewMachine(api salon.API, appointments appointmentRepo.AppointmentRepository, reminders *tasks.ReminderScheduler, logger *zap.Logger, callTimeout time.Duration) *Machine {
	if callTimeout <= 0 {
		callTimeout = 5 * time.Second
	}
	return &Machine{
		Salon:        api,
		Appointments: appointments,
		Reminders:    reminders,
		Logger:       logger,
		CallTimeout:  callTimeout,
	}
}

// HandleTurn processes one user turn. A blank message on a fresh session
// yields the greeting; any other input is routed to the current stage.
// Rejected input leaves the session in its stage, it never advances silently.
func (m *Machine) HandleTurn(ctx context.Context, session *models.BookingSession, input string) string {
	input = strings.TrimSpace(input)
	if input == "" && session.Stage == models.StageAwaitingName && session.ClientID == "" {
		return msgGreeting
	}

	var reply string
	switch session.Stage {
	case models.StageAwaitingName:
		reply = m.handleName(ctx, session, input)
	case models.StageAwaitingService:
		reply = m.handleService(ctx, session, input)
	case models.StageAwaitingStylist:
		reply = m.handleStylist(ctx, session, input)
	case models.StageAwaitingDate:
		reply = m.handleDate(ctx, session, input)
	case models.StageAwaitingTime:
		reply = m.handleTime(ctx, session, input)
	case models.StageAwaitingConfirmation:
		reply = m.handleConfirmation(ctx, session, input)
	default:
		m.Logger.Warn("session in unknown stage, resetting",
			zap.String("sessionID", session.SessionID), zap.String("stage", string(session.Stage)))
		session.Reset()
		reply = msgGreeting
	}
	session.UpdatedAt = time.Now()
	return reply
}

func (m *Machine) handleName(ctx context.Context, session *models.BookingSession, input string) string {
	cctx, cancel := context.WithTimeout(ctx, m.CallTimeout)
	defer cancel()

	clients, err := m.Salon.SearchClients(cctx, input)
	if err != nil {
		m.Logger.Warn("client search failed", zap.String("query", input), zap.Error(err))
		return msgTransportFailure
	}
	// No match and transport failure look alike to the guest; both re-prompt.
	if len(clients) == 0 {
		return msgClientNotFound(input)
	}

	client := clients[0]
	session.ClientID = client.ID
	session.ClientName = client.Name
	session.Stage = models.StageAwaitingService

	services, err := m.fetchServices(ctx)
	if err != nil {
		services = nil
	}
	return msgGreetClient(client.Name, services)
}

func (m *Machine) handleService(ctx context.Context, session *models.BookingSession, input string) string {
	services, err := m.fetchServices(ctx)
	if err != nil {
		return msgTransportFailure
	}

	// First match wins, in provider order.
	lower := strings.ToLower(input)
	for _, svc := range services {
		if svc.Name != "" && strings.Contains(lower, strings.ToLower(svc.Name)) {
			session.ServiceID = svc.ID
			session.ServiceName = svc.Name
			session.Stage = models.StageAwaitingStylist

			staff, err := m.fetchStaff(ctx)
			if err != nil {
				staff = nil
			}
			return msgServiceChosen(svc.Name, staff)
		}
	}
	return msgServiceUnknown(services)
}

func (m *Machine) handleStylist(ctx context.Context, session *models.BookingSession, input string) string {
	staff, err := m.fetchStaff(ctx)
	if err != nil {
		return msgTransportFailure
	}

	lower := strings.ToLower(input)
	for _, st := range staff {
		if st.Name != "" && strings.Contains(lower, strings.ToLower(st.Name)) {
			session.StylistID = st.ID
			session.StylistName = st.Name
			session.Stage = models.StageAwaitingDate
			return msgStylistChosen(st.Name, nextDates(7))
		}
	}
	return msgStylistUnknown(staff)
}

func (m *Machine) handleDate(ctx context.Context, session *models.BookingSession, input string) string {
	if _, err := time.Parse("2006-01-02", input); err != nil {
		return msgDateFormatHint
	}

	slots, err := m.fetchSlots(ctx, session.StylistID, session.ServiceID, input)
	if err != nil {
		m.Logger.Warn("availability lookup failed",
			zap.String("stylistID", session.StylistID), zap.String("date", input), zap.Error(err))
		return msgTransportFailure
	}
	if len(slots) == 0 {
		return msgNoAvailability(input)
	}

	session.Date = input
	session.Stage = models.StageAwaitingTime
	return msgSlotList(input, slots)
}

// handleTime re-fetches availability rather than trusting the list the guest
// saw; a slot may have been taken by another session between turns.
func (m *Machine) handleTime(ctx context.Context, session *models.BookingSession, input string) string {
	slots, err := m.fetchSlots(ctx, session.StylistID, session.ServiceID, session.Date)
	if err != nil {
		m.Logger.Warn("availability re-check failed",
			zap.String("stylistID", session.StylistID), zap.String("date", session.Date), zap.Error(err))
		return msgTransportFailure
	}

	for _, slot := range slots {
		if slot == input {
			session.Time = input
			session.Stage = models.StageAwaitingConfirmation
			return msgSummary(session)
		}
	}
	if len(slots) == 0 {
		return msgSlotsGone
	}
	return msgTimeUnknown(slots)
}

func (m *Machine) handleConfirmation(ctx context.Context, session *models.BookingSession, input string) string {
	if !isAffirmative(input) {
		session.Reset()
		return msgCancelled
	}

	req := models.AppointmentRequest{
		ClientID:  session.ClientID,
		StaffID:   session.StylistID,
		ServiceID: session.ServiceID,
		StartTime: session.Date + " " + session.Time,
	}

	cctx, cancel := context.WithTimeout(ctx, m.CallTimeout)
	defer cancel()
	appointment, err := m.Salon.CreateAppointment(cctx, req)

	// Whatever the outcome, the conversation starts over; a failed booking
	// forces the guest to re-select rather than silently retrying.
	session.Reset()

	switch {
	case err == nil:
		m.Logger.Info("appointment booked",
			zap.String("sessionID", session.SessionID),
			zap.String("appointmentID", appointment.ID))
		m.recordBooking(ctx, appointment)
		return msgBooked(appointment)
	case errors.Is(err, salon.ErrConflict):
		m.Logger.Info("booking conflict", zap.String("sessionID", session.SessionID), zap.Error(err))
		return msgConflict
	default:
		m.Logger.Warn("booking failed", zap.String("sessionID", session.SessionID), zap.Error(err))
		return msgBookingFailed(err)
	}
}

// recordBooking writes the confirmed appointment to the log and queues its
// reminder. Both are best effort; the guest already holds the booking.
func (m *Machine) recordBooking(ctx context.Context, appointment *models.Appointment) {
	if m.Appointments != nil {
		if err := m.Appointments.Log(ctx, *appointment); err != nil {
			m.Logger.Warn("failed to log appointment",
				zap.String("appointmentID", appointment.ID), zap.Error(err))
		}
	}
	if err := m.Reminders.Schedule(models.ReminderPayload{
		AppointmentID: appointment.ID,
		ClientID:      appointment.ClientID,
		StartTime:     appointment.StartTime,
	}); err != nil {
		m.Logger.Warn("failed to schedule reminder",
			zap.String("appointmentID", appointment.ID), zap.Error(err))
	}
}

func (m *Machine) fetchServices(ctx context.Context) ([]models.Service, error) {
	cctx, cancel := context.WithTimeout(ctx, m.CallTimeout)
	defer cancel()
	return m.Salon.GetServices(cctx)
}

func (m *Machine) fetchStaff(ctx context.Context) ([]models.Staff, error) {
	cctx, cancel := context.WithTimeout(ctx, m.CallTimeout)
	defer cancel()
	return m.Salon.GetStaff(cctx)
}

func (m *Machine) fetchSlots(ctx context.Context, staffID, serviceID, date string) ([]string, error) {
	cctx, cancel := context.WithTimeout(ctx, m.CallTimeout)
	defer cancel()
	return m.Salon.GetAvailableSlots(cctx, staffID, serviceID, date)
}

func isAffirmative(input string) bool {
	lower := strings.ToLower(input)
	return strings.Contains(lower, "ja") || strings.Contains(lower, "yes")
}

// nextDates lists the next n calendar dates starting from today.
func nextDates(n int) []string {
	today := time.Now()
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, today.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return dates
}
