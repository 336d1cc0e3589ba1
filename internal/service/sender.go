package service

import "quizbot/internal/dto"

// Sender is the outbound port to the chat transport for pushes the core
// initiates outside a request/reply exchange (the shared leaderboard edit).
// Delivery is fire-and-forget: the core logs failures and never blocks state
// transitions on them.
type Sender interface {
	SendText(chatID int64, text string, buttons [][]dto.Button) error
	EditMessage(edit dto.MessageEdit) error
}
