package model

// ConversationState is the per-chat position in the announcement flow.
type ConversationState string

const (
	StateIdle                     ConversationState = "idle"
	StateAwaitingAnnouncementText ConversationState = "awaiting_announcement_text"
)

func (s ConversationState) String() string {
	if s == "" {
		return string(StateIdle)
	}
	return string(s)
}
