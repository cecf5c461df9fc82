//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"telegram-announce-relay/internal/domain/ports/adapter"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

var errTelegramDown = errors.New("telegram unavailable")

// ---- Mock MessengerAdapter ----

type deleteCall struct {
	ChatID    int64
	MessageID int
}

// MockTelegramBot records every outbound call. Message ids start at 100.
type MockTelegramBot struct {
	mu       sync.Mutex
	nextID   int
	Sent     []adapter.SendMessageParams
	Deleted  []deleteCall
	Answered []string
	Commands []adapter.BotCommand
	Calls    []string // call order, e.g. "answer", "delete", "send"

	SendMessageFunc   func(ctx context.Context, params adapter.SendMessageParams) (int, error)
	DeleteMessageFunc func(ctx context.Context, chatID int64, messageID int) error
}

var _ adapter.MessengerAdapter = (*MockTelegramBot)(nil)

func (m *MockTelegramBot) SendMessage(ctx context.Context, params adapter.SendMessageParams) (int, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, "send")
	m.mu.Unlock()
	if m.SendMessageFunc != nil {
		if id, err := m.SendMessageFunc(ctx, params); err != nil {
			return id, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, params)
	if m.nextID == 0 {
		m.nextID = 100
	}
	m.nextID++
	return m.nextID, nil
}

func (m *MockTelegramBot) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, "delete")
	m.Deleted = append(m.Deleted, deleteCall{ChatID: chatID, MessageID: messageID})
	m.mu.Unlock()
	if m.DeleteMessageFunc != nil {
		return m.DeleteMessageFunc(ctx, chatID, messageID)
	}
	return nil
}

func (m *MockTelegramBot) AnswerCallback(ctx context.Context, callbackID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "answer")
	m.Answered = append(m.Answered, callbackID)
	return nil
}

func (m *MockTelegramBot) SetCommands(ctx context.Context, commands []adapter.BotCommand) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = append([]adapter.BotCommand(nil), commands...)
	return nil
}

func (m *MockTelegramBot) lastSent() adapter.SendMessageParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return adapter.SendMessageParams{}
	}
	return m.Sent[len(m.Sent)-1]
}

func (m *MockTelegramBot) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
