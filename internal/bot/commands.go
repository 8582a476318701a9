package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mvdheuvel/jeevesbot/internal/domain"
	"github.com/mvdheuvel/jeevesbot/internal/parse"
)

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	cmd := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())

	switch cmd {
	case "start":
		b.cmdStart(chatID)
	case "help":
		b.cmdHelp(chatID)
	case "addcal":
		b.cmdAddCal(chatID, args)
	case "viewcal":
		b.cmdViewCal(chatID)
	case "7days":
		b.cmd7Days(chatID)
	case "delcal":
		b.cmdDelCal(chatID, args)
	default:
		b.SendMessage(chatID, "Unknown command. Use /help to see available commands.")
	}
}

// currentDate renders today in the locale's d-m-yyyy style, shown in every
// reply.
func (b *Bot) currentDate() string {
	return time.Now().In(b.cfg.Timezone).Format("2-1-2006")
}

func (b *Bot) cmdStart(chatID int64) {
	text := fmt.Sprintf("👋 <b>Welcome to JeevesBot Calendar!</b>\n\n<b>Current Date: %s</b>\n\nI'm your personal calendar assistant. Use /help to see all available commands.",
		b.currentDate())
	b.SendMessage(chatID, text)
}

func (b *Bot) cmdHelp(chatID int64) {
	text := fmt.Sprintf(`📅 <b>JeevesBot Calendar Commands</b> 📅
<b>Current Date: %s</b>

Available commands:
• /help - Display this help message
• /addcal - Add an appointment to the calendar
  Format: /addcal DATE. TIME. Contact Name. Category
  Example: /addcal 21-11-2025. 14:30. Peter van der Meer. Ghostin 06
  <b>Date formats:</b> %s
  <b>Time formats:</b> %s
• /viewcal - Display all appointments
• /7days - Display appointments for today and next 6 days
• /delcal - Delete an appointment
  Format: /delcal NUMBER
  Example: /delcal 3 (to delete the 3rd appointment shown in /viewcal)

<b>Note:</b> Use dots (.) as separators between date, time, contact name, and category.`,
		b.currentDate(),
		strings.Join(parse.SupportedDateFormats(), ", "),
		strings.Join(parse.SupportedTimeFormats(), ", "))

	b.SendMessage(chatID, text)
}

func (b *Bot) cmdAddCal(chatID int64, args string) {
	if args == "" {
		b.SendMessage(chatID, fmt.Sprintf("❌ <b>Usage:</b> /addcal DD-MM-YYYY. HH:MM. Contact Name. Category\n\n<b>Current Date: %s</b>\n\nExample: /addcal 21-11-2025. 14:30. Peter van der Meer. Ghostin 06",
			b.currentDate()))
		return
	}

	draft, err := parse.ParseInput(args)
	if err != nil {
		b.SendMessage(chatID, fmt.Sprintf("❌ <b>Invalid format!</b>\n\n<b>Current Date: %s</b>\n\n%s\n\nExample: /addcal 21-11-2025. 14:30. Peter van der Meer. Ghostin 06\n\nYour input: %q",
			b.currentDate(), err.Error(), args))
		return
	}

	appt, err := b.store.Add(draft)
	if err != nil {
		b.SendMessage(chatID, fmt.Sprintf("❌ <b>Error adding appointment</b>\n\n<b>Current Date: %s</b>\n\nPlease try again or check the format.",
			b.currentDate()))
		return
	}

	b.SendMessage(chatID, fmt.Sprintf("✅ <b>Appointment added successfully!</b>\n\n<b>Current Date: %s</b>\n\n📅 %s %s\n👤 %s\n🏷 %s",
		b.currentDate(), appt.Date, appt.Time, appt.ContactName, appt.Category))
}

func (b *Bot) cmdViewCal(chatID int64) {
	appointments, err := b.store.List()
	if err != nil {
		b.SendMessage(chatID, fmt.Sprintf("❌ <b>Error retrieving appointments</b>\n\n<b>Current Date: %s</b>\n\nPlease try again.",
			b.currentDate()))
		return
	}

	if len(appointments) == 0 {
		b.SendMessage(chatID, fmt.Sprintf("📅 <b>No appointments found</b>\n\n<b>Current Date: %s</b>\n\nUse /addcal to add your first appointment.",
			b.currentDate()))
		return
	}

	b.SendMessage(chatID, fmt.Sprintf("📅 <b>All Appointments</b>\n\n<b>Current Date: %s</b>\n\n%s",
		b.currentDate(), domain.FormatList(appointments)))
}

func (b *Bot) cmd7Days(chatID int64) {
	today := time.Now().In(b.cfg.Timezone)
	end := today.AddDate(0, 0, 6)
	dateRange := today.Format("2-1-2006") + " - " + end.Format("2-1-2006")

	appointments, err := b.store.ListInRange(today, end)
	if err != nil {
		b.SendMessage(chatID, fmt.Sprintf("❌ <b>Error retrieving appointments</b>\n\n<b>Current Date: %s</b>\n\nPlease try again.",
			b.currentDate()))
		return
	}

	if len(appointments) == 0 {
		b.SendMessage(chatID, fmt.Sprintf("📅 <b>No appointments for the next 7 days</b>\n\n<b>Current Date: %s</b>\n<b>Date Range: %s</b>\n\nUse /addcal to add appointments.",
			b.currentDate(), dateRange))
		return
	}

	b.SendMessage(chatID, fmt.Sprintf("📅 <b>Appointments for Next 7 Days</b>\n\n<b>Current Date: %s</b>\n<b>Date Range: %s</b>\n\n%s",
		b.currentDate(), dateRange, domain.FormatList(appointments)))
}

func (b *Bot) cmdDelCal(chatID int64, args string) {
	if args == "" {
		b.SendMessage(chatID, fmt.Sprintf("❌ <b>Usage:</b> /delcal NUMBER\n\n<b>Current Date: %s</b>\n\nExample: /delcal 3 (to delete the 3rd appointment shown in /viewcal)\n\nUse /viewcal first to see the appointment numbers.",
			b.currentDate()))
		return
	}

	number, err := strconv.Atoi(args)
	if err != nil {
		b.SendMessage(chatID, fmt.Sprintf("❌ <b>Invalid number!</b>\n\n<b>Current Date: %s</b>\n\nPlease provide a valid number. Example: /delcal 3",
			b.currentDate()))
		return
	}

	deleted, err := b.store.DeleteAtPosition(number)
	if err != nil {
		b.SendMessage(chatID, fmt.Sprintf("❌ <b>Error deleting appointment</b>\n\n<b>Current Date: %s</b>\n\n%s",
			b.currentDate(), err.Error()))
		return
	}

	b.SendMessage(chatID, fmt.Sprintf("🗑 <b>Appointment deleted successfully!</b>\n\n<b>Current Date: %s</b>\n\n📅 %s %s\n👤 %s\n🏷 %s\n\nAppointment #%d has been removed from your calendar.",
		b.currentDate(), deleted.Date, deleted.Time, deleted.ContactName, deleted.Category, number))
}
