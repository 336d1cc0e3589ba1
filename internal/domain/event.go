package domain

// EventType discriminates the inbound events the engine consumes.
type EventType int

const (
	// EventText is a plain text message from the user.
	EventText EventType = iota
	// EventImage is a photo message; ImageRef is the transport's file handle.
	EventImage
	// EventButton is an inline-button tap; Tag is the opaque callback tag.
	EventButton
	// EventCommand is a slash command (e.g. /start, /post_<id>).
	EventCommand
)

// Event is a single inbound chat event routed through the engine.
type Event struct {
	Type     EventType
	Text     string
	ImageRef string
	Tag      string
	ChatID   int64
	// MessageID identifies the message a button tap originated from, so
	// in-place edits (answer feedback) can target it.
	MessageID int
	// DisplayName is the sender's first name as shown on leaderboards.
	DisplayName string
	// GroupChat marks events from group or supergroup chats; commands like
	// /post_<id> are only honored there and /start only in private chats.
	GroupChat bool
}
