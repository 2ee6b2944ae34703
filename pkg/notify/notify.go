package notify

import (
	"fmt"
	"net/url"
	"time"

	tele "gopkg.in/telebot.v3"

	"taxidesk/config"
	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
)

// Notifier formats human-readable summaries of bookings and ban events and,
// when a bot token is configured, pushes them to the admin Telegram chat.
// Every push is best effort; the booking and complaint flows never depend on
// delivery.
type Notifier struct {
	bot       *tele.Bot
	adminChat tele.ChatID
	waNumber  string
	log       logger.ILogger
}

func New(cfg config.Config, log logger.ILogger) *Notifier {
	n := &Notifier{
		adminChat: tele.ChatID(cfg.AdminChatID),
		waNumber:  cfg.WhatsAppNumber,
		log:       log,
	}

	if cfg.TelegramBotToken == "" {
		log.Info("no bot token configured, admin alerts disabled")
		return n
	}

	pref := tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Error("failed to initialize alert bot, admin alerts disabled", logger.Error(err))
		return n
	}
	n.bot = b
	return n
}

// BookingMessage renders the booking request summary. Privacy mode adds the
// minimal-interaction instruction for the driver.
func BookingMessage(b *models.Booking) string {
	msg := fmt.Sprintf("New Booking Request!\nName: %s\nFrom: %s\nTo: %s\nVehicle: %s\nTime: %s",
		b.CustomerName,
		b.PickupLocation,
		b.DropLocation,
		b.VehicleType,
		b.DateTime.Format("2006-01-02 15:04"),
	)
	if b.PrivacyMode {
		msg = "🔒 PRIVACY MODE REQUESTED\n" + msg + "\n(Driver: Do not ask personal questions. Minimal interaction.)"
	}
	return msg
}

// WhatsAppLink builds the wa.me deep link carrying the booking summary.
func (n *Notifier) WhatsAppLink(b *models.Booking) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", n.waNumber, url.QueryEscape(BookingMessage(b)))
}

// BookingSubmitted alerts the admin chat about a new booking.
func (n *Notifier) BookingSubmitted(b *models.Booking) {
	n.send(BookingMessage(b))
}

// DriverAutoBanned alerts the admin chat that the escalation rule fired.
func (n *Notifier) DriverAutoBanned(driverID int64, complaintCount int) {
	n.send(fmt.Sprintf("⚠️ Driver %d auto-banned after %d complaints.", driverID, complaintCount))
}

func (n *Notifier) send(text string) {
	if n.bot == nil || n.adminChat == 0 {
		return
	}
	if _, err := n.bot.Send(n.adminChat, text); err != nil {
		n.log.Warning("failed to deliver admin alert", logger.Error(err))
	}
}
