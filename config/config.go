package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// User is a static API credential from the users file.
type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type Config struct {
	TelegramToken      string
	ReminderChatID     int64
	AllowedTelegramIDs []int64
	DataDir            string
	Timezone           *time.Location
	ReminderTime       string
	WebhookURL         string
	ServerPort         string
	OpenAIAPIKey       string
	Users              []User
}

func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is required and must be a number")
	}

	var allowedIDs []int64
	if raw := os.Getenv("ALLOWED_TELEGRAM_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid ALLOWED_TELEGRAM_IDS entry %q", part)
			}
			allowedIDs = append(allowedIDs, id)
		}
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	tzName := os.Getenv("TIMEZONE")
	if tzName == "" {
		tzName = "Europe/Amsterdam"
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	reminderTime := os.Getenv("REMINDER_TIME")
	if reminderTime == "" {
		reminderTime = "08:00"
	}

	webhookURL := os.Getenv("WEBHOOK_URL")
	if webhookURL == "" {
		return nil, fmt.Errorf("WEBHOOK_URL is required")
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	usersFile := os.Getenv("USERS_FILE")
	if usersFile == "" {
		usersFile = "./config/users.yaml"
	}
	users, err := loadUsers(usersFile)
	if err != nil {
		return nil, err
	}

	return &Config{
		TelegramToken:      token,
		ReminderChatID:     chatID,
		AllowedTelegramIDs: allowedIDs,
		DataDir:            dataDir,
		Timezone:           tz,
		ReminderTime:       reminderTime,
		WebhookURL:         webhookURL,
		ServerPort:         serverPort,
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		Users:              users,
	}, nil
}

// loadUsers reads the static API credential list. A missing file means the
// REST API stays disabled rather than failing startup.
func loadUsers(path string) ([]User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read users file: %w", err)
	}

	var list struct {
		Users []User `yaml:"users"`
	}
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}
	return list.Users, nil
}

// IsAllowedUser reports whether a Telegram user may talk to the bot. The
// reminder chat is always allowed.
func (c *Config) IsAllowedUser(telegramID int64) bool {
	if telegramID == c.ReminderChatID {
		return true
	}
	for _, id := range c.AllowedTelegramIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

// Authenticate matches credentials against the static user list, returning
// the matched user or nil.
func (c *Config) Authenticate(username, password string) *User {
	for i := range c.Users {
		u := &c.Users[i]
		if u.Username == username && u.Password == password {
			return u
		}
	}
	return nil
}
