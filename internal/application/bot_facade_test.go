package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"telegram-announce-relay/internal/application"
	"telegram-announce-relay/internal/domain"
	"telegram-announce-relay/internal/domain/model"
	"telegram-announce-relay/internal/usecase"
)

// mockAnnounceUC records what reaches the flow.
type mockAnnounceUC struct {
	handled []model.Event
	err     error
}

func (m *mockAnnounceUC) Handle(ctx context.Context, ev model.Event) error {
	m.handled = append(m.handled, ev)
	return m.err
}

func (m *mockAnnounceUC) Resolve(state model.ConversationState, ev model.Event) usecase.Transition {
	return usecase.TransitionIgnore
}

func (m *mockAnnounceUC) RegisterCommands(ctx context.Context) error { return nil }

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func TestOperatorOnly(t *testing.T) {
	ctx := context.Background()
	calls := 0
	next := func(ctx context.Context, ev model.Event) error {
		calls++
		return nil
	}
	gated := application.OperatorOnly("R0FJlan4K", next)

	cases := []struct {
		name     string
		username string
		wantCall bool
	}{
		{"operator", "R0FJlan4K", true},
		{"different user", "hyiablo", false},
		{"case differs", "r0fjlan4k", false},
		{"look-alike letter", "ROFJlan4K", false},
		{"at-prefixed", "@R0FJlan4K", false},
		{"anonymous", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calls = 0
			err := gated(ctx, model.Event{Kind: model.EventCommand, Command: "start", Username: tc.username})
			if err != nil {
				t.Fatalf("gate must never return an error, got %v", err)
			}
			if (calls == 1) != tc.wantCall {
				t.Fatalf("wantCall=%v, calls=%d", tc.wantCall, calls)
			}
		})
	}
}

func TestBotFacade(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects missing dependencies", func(t *testing.T) {
		if _, err := application.NewBotFacade("op", nil, newTestLogger()); err == nil {
			t.Fatal("expected error for nil usecase")
		}
		if _, err := application.NewBotFacade("", &mockAnnounceUC{}, newTestLogger()); !errors.Is(err, domain.ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig for empty operator, got %v", err)
		}
	})

	t.Run("forwards operator events and their errors", func(t *testing.T) {
		boom := errors.New("boom")
		uc := &mockAnnounceUC{err: boom}
		f, err := application.NewBotFacade("op", uc, newTestLogger())
		if err != nil {
			t.Fatalf("NewBotFacade: %v", err)
		}
		ev := model.Event{Kind: model.EventText, ChatID: 1, Username: "op", Text: "hi"}
		if err := f.HandleEvent(ctx, ev); !errors.Is(err, boom) {
			t.Fatalf("expected flow error to propagate, got %v", err)
		}
		if len(uc.handled) != 1 || uc.handled[0] != ev {
			t.Fatalf("event not forwarded: %+v", uc.handled)
		}
	})

	t.Run("drops strangers silently", func(t *testing.T) {
		uc := &mockAnnounceUC{}
		f, _ := application.NewBotFacade("op", uc, newTestLogger())
		for _, kind := range []model.EventKind{model.EventCommand, model.EventText, model.EventCallback} {
			if err := f.HandleEvent(ctx, model.Event{Kind: kind, ChatID: 1, Username: "stranger"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if len(uc.handled) != 0 {
			t.Fatalf("no event from a stranger may reach the flow, got %d", len(uc.handled))
		}
	})
}
