package chat

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mvdheuvel/jeevesbot/internal/memory"
)

// Prompt pieces for the assistant persona. The reply language and length cap
// match what the companion UI expects to display.
const (
	promptBase   = "You are a helpful digital assistant for business management.\n\n"
	promptMiddle = `Current user message: "`
	promptSuffix = "\"\n\nPlease respond helpfully and professionally to their message, considering any previous conversation.\nKeep your response under 600 characters and write in Dutch without using a greeting."
)

// fallbackReply is used when no AI backend is configured.
const fallbackReply = "I'm currently focused on calendar functionality. Please use /help to see available commands."

// Service answers non-command chat messages, keeping per-user conversation
// context in the memory store.
type Service struct {
	client *openai.Client
	model  string
	memory *memory.Store
}

// NewService builds the chat service. With an empty API key the service
// still records conversations but answers with a static fallback.
func NewService(apiKey string, mem *memory.Store) *Service {
	s := &Service{
		model:  openai.GPT4oMini,
		memory: mem,
	}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

// HandleMessage produces a reply for a user's free-text message. Slash
// commands and empty messages yield an empty reply and are not recorded.
func (s *Service) HandleMessage(ctx context.Context, userID int64, message string) (string, error) {
	msg := strings.TrimSpace(message)
	if msg == "" || strings.HasPrefix(msg, "/") {
		return "", nil
	}

	s.memory.AddUserMessage(userID, msg)

	reply := fallbackReply
	if s.client != nil {
		history := memory.FormatHistory(s.memory.History(userID))
		prompt := promptBase + history + promptMiddle + msg + promptSuffix

		resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("empty chat response")
		}
		reply = resp.Choices[0].Message.Content
	}

	s.memory.AddAssistantMessage(userID, reply)
	return reply, nil
}
