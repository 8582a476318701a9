package bot

import (
	"context"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		b.handleMessage(update.Message)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if !b.cfg.IsAllowedUser(userID) {
		b.SendMessage(chatID, "⛔ Access denied")
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	// Free-text chat goes to the assistant
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reply, err := b.chat.HandleMessage(ctx, userID, text)
	if err != nil {
		log.Printf("Error handling chat message from %d: %v", userID, err)
		b.SendMessage(chatID, "❌ <b>Error processing message</b>\n\nPlease try again or use /help for assistance.")
		return
	}
	if reply == "" {
		return
	}

	if err := b.SendMessage(chatID, reply); err != nil {
		log.Printf("Error sending chat reply to %d: %v", chatID, err)
	}
}
