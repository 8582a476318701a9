package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mvdheuvel/jeevesbot/config"
	"github.com/mvdheuvel/jeevesbot/internal/calendar"
	"github.com/mvdheuvel/jeevesbot/internal/domain"
)

type MessageSender interface {
	SendMessage(chatID int64, text string) error
}

// Scheduler fires the daily appointment reminder at the configured local
// time.
type Scheduler struct {
	cron   *cron.Cron
	cfg    *config.Config
	store  calendar.Store
	sender MessageSender
}

func New(cfg *config.Config, store calendar.Store) *Scheduler {
	c := cron.New(cron.WithLocation(cfg.Timezone))

	return &Scheduler{
		cron:  c,
		cfg:   cfg,
		store: store,
	}
}

func (s *Scheduler) SetSender(sender MessageSender) {
	s.sender = sender
}

func (s *Scheduler) Start(ctx context.Context) error {
	spec, err := cronSpec(s.cfg.ReminderTime)
	if err != nil {
		return fmt.Errorf("invalid REMINDER_TIME: %w", err)
	}

	if _, err := s.cron.AddFunc(spec, s.dailyReminder); err != nil {
		return fmt.Errorf("add daily reminder: %w", err)
	}

	s.cron.Start()
	log.Printf("Scheduler started (TZ: %s, reminder: %s)", s.cfg.Timezone, s.cfg.ReminderTime)

	<-ctx.Done()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

// cronSpec converts a HH:MM wall-clock time into a daily cron expression.
func cronSpec(hhmm string) (string, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("expected HH:MM, got %q", hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", hhmm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", hhmm)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// dailyReminder sends today's appointments to the reminder chat. Days with
// no appointments are skipped silently.
func (s *Scheduler) dailyReminder() {
	if s.sender == nil {
		return
	}

	today := time.Now().In(s.cfg.Timezone)
	appointments, err := s.store.ListInRange(today, today)
	if err != nil {
		log.Printf("Error getting today's appointments: %v", err)
		return
	}

	if len(appointments) == 0 {
		log.Println("No appointments for today - skipping daily reminder")
		return
	}

	text := fmt.Sprintf("📅 <b>Daily Reminder - Today's Appointments</b>\n\n<b>Current Date: %s</b>\n\n%s",
		today.Format("2-1-2006"), domain.FormatList(appointments))

	if err := s.sender.SendMessage(s.cfg.ReminderChatID, text); err != nil {
		log.Printf("Error sending daily reminder: %v", err)
		return
	}
	log.Printf("Daily reminder sent with %d appointment(s)", len(appointments))
}
