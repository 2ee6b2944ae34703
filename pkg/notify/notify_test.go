package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taxidesk/config"
	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
)

func sampleBooking(privacy bool) *models.Booking {
	return &models.Booking{
		CustomerName:   "Anita Rao",
		PickupLocation: "MG Road",
		DropLocation:   "Airport",
		VehicleType:    "Sedan",
		DateTime:       time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC),
		PrivacyMode:    privacy,
	}
}

func TestBookingMessage(t *testing.T) {
	msg := BookingMessage(sampleBooking(false))
	assert.Contains(t, msg, "Name: Anita Rao")
	assert.Contains(t, msg, "From: MG Road")
	assert.Contains(t, msg, "To: Airport")
	assert.NotContains(t, msg, "PRIVACY MODE")
}

func TestBookingMessagePrivacyMode(t *testing.T) {
	msg := BookingMessage(sampleBooking(true))
	assert.True(t, strings.HasPrefix(msg, "🔒 PRIVACY MODE REQUESTED"))
	assert.Contains(t, msg, "Minimal interaction")
}

func TestWhatsAppLink(t *testing.T) {
	n := New(config.Config{WhatsAppNumber: "919876543210"}, logger.New("test"))

	link := n.WhatsAppLink(sampleBooking(true))
	assert.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="))
	// the summary must ride in the query fully escaped
	assert.NotContains(t, link[strings.Index(link, "?"):], " ")
	assert.Contains(t, link, "Anita+Rao")
}
