package memory

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mvdheuvel/jeevesbot/internal/domain"
)

const (
	memoryFileName     = "conversation-memory.json"
	maxMessagesPerUser = 30
)

type conversation struct {
	Messages []domain.ChatMessage `json:"messages"`
}

// Store keeps a bounded per-user conversation history in a single JSON
// document keyed by Telegram user id. Only the last 30 messages per user are
// retained.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		path: filepath.Join(dataDir, memoryFileName),
		now:  time.Now,
	}, nil
}

func (s *Store) load() map[int64]*conversation {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to load conversation memory: %v", err)
		}
		return map[int64]*conversation{}
	}

	var memory map[int64]*conversation
	if err := json.Unmarshal(data, &memory); err != nil {
		log.Printf("Conversation memory corrupt, treating as empty: %v", err)
		return map[int64]*conversation{}
	}
	return memory
}

func (s *Store) save(memory map[int64]*conversation) error {
	data, err := json.MarshalIndent(memory, "", "  ")
	if err != nil {
		return fmt.Errorf("encode conversation memory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write conversation memory: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace conversation memory: %w", err)
	}
	return nil
}

func (s *Store) add(userID int64, role domain.ChatRole, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.load()
	conv := memory[userID]
	if conv == nil {
		conv = &conversation{}
		memory[userID] = conv
	}

	conv.Messages = append(conv.Messages, domain.ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	})
	if len(conv.Messages) > maxMessagesPerUser {
		conv.Messages = conv.Messages[len(conv.Messages)-maxMessagesPerUser:]
	}

	if err := s.save(memory); err != nil {
		log.Printf("Failed to save conversation memory: %v", err)
	}
}

func (s *Store) AddUserMessage(userID int64, content string) {
	s.add(userID, domain.RoleUser, content)
}

func (s *Store) AddAssistantMessage(userID int64, content string) {
	s.add(userID, domain.RoleAssistant, content)
}

// History returns the retained messages for a user, oldest first.
func (s *Store) History(userID int64) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.load()[userID]
	if conv == nil {
		return nil
	}
	return conv.Messages
}

// Clear drops a user's conversation history.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory := s.load()
	if _, ok := memory[userID]; !ok {
		return
	}
	delete(memory, userID)
	if err := s.save(memory); err != nil {
		log.Printf("Failed to save conversation memory: %v", err)
	}
}

// FormatHistory renders a conversation as a transcript block for inclusion
// in a chat prompt. Empty history renders as an empty string.
func FormatHistory(history []domain.ChatMessage) string {
	if len(history) == 0 {
		return ""
	}

	out := "Recent conversation:\n"
	for _, m := range history {
		speaker := "Assistant"
		if m.Role == domain.RoleUser {
			speaker = "User"
		}
		out += speaker + ": " + m.Content + "\n"
	}
	return out + "\n"
}
