package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvdheuvel/jeevesbot/internal/domain"
)

func TestStore_RecordsConversation(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	store.AddUserMessage(1, "hallo")
	store.AddAssistantMessage(1, "goedemiddag")
	store.AddUserMessage(2, "other user")

	history := store.History(1)
	require.Len(t, history, 2)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, "hallo", history[0].Content)
	assert.Equal(t, domain.RoleAssistant, history[1].Role)
	assert.False(t, history[0].Timestamp.IsZero())

	assert.Len(t, store.History(2), 1)
	assert.Empty(t, store.History(3))
}

func TestStore_KeepsOnlyLastThirtyMessages(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for i := 0; i < 35; i++ {
		store.AddUserMessage(1, string(rune('a'+i%26)))
	}

	history := store.History(1)
	require.Len(t, history, maxMessagesPerUser)
	// The oldest five messages were dropped.
	assert.Equal(t, string(rune('a'+5)), history[0].Content)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	first.AddUserMessage(42, "remember me")

	second, err := NewStore(dir)
	require.NoError(t, err)
	history := second.History(42)
	require.Len(t, history, 1)
	assert.Equal(t, "remember me", history[0].Content)
}

func TestStore_Clear(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	store.AddUserMessage(1, "a")
	store.AddUserMessage(2, "b")
	store.Clear(1)

	assert.Empty(t, store.History(1))
	assert.Len(t, store.History(2), 1)
}

func TestStore_CorruptFileReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, memoryFileName), []byte("garbage"), 0644))
	assert.Empty(t, store.History(1))
}

func TestFormatHistory(t *testing.T) {
	assert.Equal(t, "", FormatHistory(nil))

	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hoe laat is het?"},
		{Role: domain.RoleAssistant, Content: "14:30"},
	}
	want := "Recent conversation:\nUser: hoe laat is het?\nAssistant: 14:30\n\n"
	assert.Equal(t, want, FormatHistory(history))
}
