//go:build !integration

package model

import "testing"

// --- ConversationState Tests ---

func TestConversationStateString(t *testing.T) {
	t.Run("zero value reads as idle", func(t *testing.T) {
		var s ConversationState
		if s.String() != "idle" {
			t.Errorf("expected zero state to print as idle, but got %q", s.String())
		}
	})

	t.Run("awaiting text", func(t *testing.T) {
		if got := StateAwaitingAnnouncementText.String(); got != "awaiting_announcement_text" {
			t.Errorf("unexpected state name %q", got)
		}
	})
}

// --- Event Tests ---

func TestEventHasIdentity(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want bool
	}{
		{"with username", Event{ChatID: 1, Username: "R0FJlan4K"}, true},
		{"no username", Event{ChatID: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.HasIdentity(); got != tt.want {
				t.Errorf("HasIdentity() = %v, want %v", got, tt.want)
			}
		})
	}
}
