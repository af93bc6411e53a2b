package dialogue

import (
	"fmt"
	"strings"

	"salonassist/models"
)

// Reply texts of the assistant. The salon's guests are German-speaking, so
// the conversation stays in German like the rest of the front desk.

const msgGreeting = "Willkommen beim Salon Elegant!\n\n" +
	"Ich helfe Ihnen gerne bei der Terminbuchung. Bitte geben Sie Ihren Namen ein, um zu beginnen."

const msgTransportFailure = "Es gab ein Problem bei der Verbindung zum Buchungssystem. " +
	"Bitte versuchen Sie es erneut oder wenden Sie sich an die Rezeption."

const msgDateFormatHint = "Bitte geben Sie das Datum im Format YYYY-MM-DD an (z.B. 2024-12-20)."

const msgSlotsGone = "Leider sind keine Termine mehr verfügbar. Bitte wählen Sie einen anderen Tag."

const msgCancelled = "Buchung abgebrochen. Wie kann ich Ihnen helfen? Bitte geben Sie Ihren Namen ein."

const msgConflict = "Der gewünschte Termin wurde leider soeben anderweitig vergeben. " +
	"Bitte beginnen Sie die Buchung erneut mit Ihrem Namen, um einen anderen Termin zu wählen."

func msgBookingFailed(err error) string {
	return fmt.Sprintf("Buchung fehlgeschlagen (%v). "+
		"Bitte versuchen Sie es erneut oder wenden Sie sich an die Rezeption.", err)
}

func msgClientNotFound(name string) string {
	return fmt.Sprintf("Entschuldigung, ich konnte keinen Kunden mit dem Namen '%s' finden. "+
		"Bitte versuchen Sie es erneut oder wenden Sie sich an die Rezeption.", name)
}

func msgGreetClient(clientName string, services []models.Service) string {
	return fmt.Sprintf("Hallo %s! Welchen Service möchten Sie buchen?\n\nVerfügbare Services:\n%s",
		clientName, serviceList(services))
}

func msgServiceChosen(serviceName string, staff []models.Staff) string {
	return fmt.Sprintf("Perfekt! Sie möchten einen Termin für %s.\n\n"+
		"Bei welchem Stylisten möchten Sie buchen?\n%s", serviceName, staffList(staff))
}

func msgServiceUnknown(services []models.Service) string {
	return "Dieser Service ist nicht verfügbar. Bitte wählen Sie aus:\n" + serviceList(services)
}

func msgStylistChosen(stylistName string, dates []string) string {
	return fmt.Sprintf("Ausgezeichnet! %s freut sich auf Sie.\n\n"+
		"An welchem Tag möchten Sie kommen?\n%s", stylistName, bulletList(dates))
}

func msgStylistUnknown(staff []models.Staff) string {
	return "Dieser Stylist ist nicht verfügbar. Bitte wählen Sie:\n" + staffList(staff)
}

func msgNoAvailability(date string) string {
	return fmt.Sprintf("Leider sind am %s keine Termine verfügbar. Bitte wählen Sie einen anderen Tag.", date)
}

func msgSlotList(date string, slots []string) string {
	return fmt.Sprintf("Verfügbare Zeiten am %s:\n\n%s", date, bulletList(slots))
}

func msgTimeUnknown(slots []string) string {
	return "Bitte wählen Sie eine der verfügbaren Zeiten:\n" + bulletList(slots)
}

func msgSummary(s *models.BookingSession) string {
	return fmt.Sprintf("Möchten Sie folgenden Termin buchen?\n\n"+
		"**Service:** %s\n**Stylist:** %s\n**Datum:** %s\n**Uhrzeit:** %s\n\n"+
		"Antworten Sie mit 'Ja' zum Bestätigen oder 'Nein' zum Abbrechen.",
		s.ServiceName, s.StylistName, s.Date, s.Time)
}

func msgBooked(a *models.Appointment) string {
	return fmt.Sprintf("Termin erfolgreich gebucht!\n\n"+
		"Ihre Buchungsnummer: %s\n\n"+
		"Vielen Dank! Für eine neue Buchung geben Sie bitte Ihren Namen ein.", a.ID)
}

func serviceList(services []models.Service) string {
	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, s.Name)
	}
	return bulletList(names)
}

func staffList(staff []models.Staff) string {
	names := make([]string, 0, len(staff))
	for _, s := range staff {
		names = append(names, s.Name)
	}
	return bulletList(names)
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
