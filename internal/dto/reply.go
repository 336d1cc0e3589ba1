package dto

// Button is one inline keyboard button. Exactly one of Tag or URL is set:
// Tag buttons come back as button-tap events, URL buttons open a link
// (used for the deep-link into a private play-through).
type Button struct {
	Label string
	Tag   string
	URL   string
}

// Reply is a rendering instruction for the transport layer: one outbound
// message with an optional image and inline keyboard. The core never waits
// for delivery.
type Reply struct {
	ChatID   int64
	Text     string
	ImageRef string
	Buttons  [][]Button
	Markdown bool

	// BoardQuizID, when set, tells the transport to register the sent
	// message as this quiz's leaderboard surface once the message id is
	// known. Only the group post sets it.
	BoardQuizID string
}

// NewReply builds a plain text reply.
func NewReply(chatID int64, text string) Reply {
	return Reply{ChatID: chatID, Text: text}
}

// WithButtons attaches keyboard rows to the reply.
func (r Reply) WithButtons(rows ...[]Button) Reply {
	r.Buttons = append(r.Buttons, rows...)
	return r
}

// MessageEdit is an in-place edit of a previously sent message, used for the
// shared leaderboard surface and for live answer feedback.
type MessageEdit struct {
	ChatID    int64
	MessageID int
	Text      string
	Buttons   [][]Button
	Markdown  bool
	// ButtonsOnly edits just the reply markup, leaving the text untouched.
	ButtonsOnly bool
}
