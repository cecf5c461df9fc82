package model

// EventKind tells which kind of inbound chat action an Event carries.
type EventKind string

const (
	EventCommand  EventKind = "command"
	EventText     EventKind = "text"
	EventCallback EventKind = "callback"
)

// Event is a transport-free view of one inbound update.
// The Telegram adapter builds it; the gate and the flow only ever see this.
type Event struct {
	Kind     EventKind
	ChatID   int64
	Username string // sender handle without '@'; empty when unknown

	Text    string // raw text for EventText, full text for EventCommand
	Command string // command name without '/' or bot suffix

	CallbackID        string
	CallbackData      string
	CallbackMessageID int // message carrying the pressed button
}

// HasIdentity reports whether the sender could be resolved at all.
func (e Event) HasIdentity() bool { return e.Username != "" }
