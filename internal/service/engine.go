package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"quizbot/internal/domain"
	"quizbot/internal/dto"
)

const playDeepLinkPrefix = "PLAY_"

// Engine routes inbound chat events to the right service: play taps and
// leaderboard navigation first, then the authoring conversation. Everything
// it returns is a rendering instruction; it never talks to the transport
// directly.
type Engine struct {
	registry *SessionRegistry
	conv     *ConversationService
	play     *PlayService
	boards   *LeaderboardService
	ownerID  int64
}

func NewEngine(
	registry *SessionRegistry,
	conv *ConversationService,
	play *PlayService,
	boards *LeaderboardService,
	ownerID int64,
) *Engine {
	return &Engine{
		registry: registry,
		conv:     conv,
		play:     play,
		boards:   boards,
		ownerID:  ownerID,
	}
}

// HandleEvent processes one inbound event and returns the replies to send
// and in-place edits to apply. Events for the same user are handled one at a
// time regardless of transport. A nil, nil, nil result means the event was
// deliberately ignored.
func (e *Engine) HandleEvent(ctx context.Context, userID int64, ev domain.Event) ([]dto.Reply, []dto.MessageEdit, error) {
	unlock := e.registry.LockUser(userID)
	defer unlock()

	switch ev.Type {
	case domain.EventCommand:
		replies, err := e.handleCommand(ctx, userID, ev)
		return replies, nil, err
	case domain.EventButton:
		return e.handleButton(ctx, userID, ev)
	case domain.EventText:
		replies, err := e.conv.HandleText(ctx, userID, ev)
		return replies, nil, err
	case domain.EventImage:
		replies, err := e.conv.HandleImage(ctx, userID, ev)
		return replies, nil, err
	}
	return nil, nil, nil
}

func (e *Engine) handleCommand(ctx context.Context, userID int64, ev domain.Event) ([]dto.Reply, error) {
	fields := strings.Fields(ev.Text)
	if len(fields) == 0 {
		return nil, nil
	}
	command := fields[0]

	switch {
	case command == "/start":
		return e.handleStart(userID, ev, fields[1:])

	case strings.HasPrefix(command, "/post_"):
		if !ev.GroupChat {
			return nil, nil
		}
		quizID := strings.TrimPrefix(command, "/post_")
		return e.postQuizToGroup(ctx, quizID, ev.ChatID)
	}
	return nil, nil
}

func (e *Engine) handleStart(userID int64, ev domain.Event, args []string) ([]dto.Reply, error) {
	// Deep link from a posted quiz.
	if len(args) > 0 && strings.HasPrefix(args[0], playDeepLinkPrefix) {
		quizID := strings.TrimPrefix(args[0], playDeepLinkPrefix)
		e.registry.SetPlayTarget(userID, quizID)
		reply := dto.NewReply(ev.ChatID, "🎮 Quiz ready!\n\nPress the button below to start.").
			WithButtons([]dto.Button{{Label: "▶️ Start Quiz", Tag: tagPlayStart}})
		return []dto.Reply{reply}, nil
	}

	if ev.GroupChat {
		return nil, nil
	}

	if userID != e.ownerID {
		text := "👋 Hi!\n\nPlease open a quiz from a group to start answering.\nYou don't have access to the admin panel."
		return []dto.Reply{dto.NewReply(ev.ChatID, text)}, nil
	}

	welcome := homeReply(ev.ChatID, "🧠 **Welcome to Quiz Bot (Admin Panel)**\n\nChoose an option:")
	welcome.Markdown = true
	return []dto.Reply{welcome}, nil
}

// postQuizToGroup renders the combined quiz card and leaderboard into a new
// group message. The transport registers the sent message as the board
// surface via BoardQuizID.
func (e *Engine) postQuizToGroup(ctx context.Context, quizID string, chatID int64) ([]dto.Reply, error) {
	text, pages, err := e.boards.Render(ctx, quizID, 0)
	if err != nil {
		if domain.IsCode(err, domain.CodeNotFound) {
			return []dto.Reply{dto.NewReply(chatID, "❌ Quiz not found.")}, nil
		}
		return nil, err
	}
	reply := dto.Reply{
		ChatID:      chatID,
		Text:        text,
		Buttons:     e.boards.BoardButtons(quizID, 0, pages),
		Markdown:    true,
		BoardQuizID: quizID,
	}
	return []dto.Reply{reply}, nil
}

func (e *Engine) handleButton(ctx context.Context, userID int64, ev domain.Event) ([]dto.Reply, []dto.MessageEdit, error) {
	tag := ev.Tag

	switch {
	case tag == tagLocked || tag == tagBoardNop:
		return nil, nil, nil

	case strings.HasPrefix(tag, tagPlayAnswerPrefix):
		return e.handleAnswer(ctx, userID, ev)

	case tag == tagPlayStart:
		quizID, ok := e.registry.PlayTarget(userID)
		if !ok {
			// Owner starting their own quiz from the action menu.
			quizID = e.registry.Conversation(userID).ActiveQuizID
		}
		replies, err := e.startPlay(ctx, userID, quizID, ev.ChatID)
		return replies, nil, err

	case tag == tagStartThis:
		quizID := e.registry.Conversation(userID).ActiveQuizID
		replies, err := e.startPlay(ctx, userID, quizID, ev.ChatID)
		return replies, nil, err

	case strings.HasPrefix(tag, tagBoardPrevPrefix):
		e.boards.Navigate(ctx, strings.TrimPrefix(tag, tagBoardPrevPrefix), -1)
		return nil, nil, nil

	case strings.HasPrefix(tag, tagBoardNextPrefix):
		e.boards.Navigate(ctx, strings.TrimPrefix(tag, tagBoardNextPrefix), +1)
		return nil, nil, nil
	}

	// Everything else is an authoring action.
	if userID != e.ownerID {
		return nil, nil, nil
	}
	replies, err := e.conv.HandleButton(ctx, userID, ev)
	return replies, nil, err
}

func (e *Engine) startPlay(ctx context.Context, userID int64, quizID string, chatID int64) ([]dto.Reply, error) {
	if quizID == "" {
		return []dto.Reply{dto.NewReply(chatID, "❌ Quiz not found.")}, nil
	}
	view, err := e.play.StartSession(ctx, userID, quizID)
	if err != nil {
		switch {
		case domain.IsCode(err, domain.CodeNotFound):
			return []dto.Reply{dto.NewReply(chatID, "❌ Quiz not found.")}, nil
		case domain.IsCode(err, domain.CodeNoQuestions):
			return []dto.Reply{dto.NewReply(chatID, "❌ This quiz has no questions.")}, nil
		}
		return nil, err
	}
	e.registry.ClearPlayTarget(userID)
	return []dto.Reply{questionReply(chatID, view)}, nil
}

func (e *Engine) handleAnswer(ctx context.Context, userID int64, ev domain.Event) ([]dto.Reply, []dto.MessageEdit, error) {
	chosen, err := strconv.Atoi(strings.TrimPrefix(ev.Tag, tagPlayAnswerPrefix))
	if err != nil {
		return nil, nil, domain.NewValidationError("bad answer tag: " + ev.Tag)
	}

	outcome, err := e.play.SubmitAnswer(ctx, userID, ev.DisplayName, chosen)
	if err != nil {
		if domain.IsCode(err, domain.CodeSessionExpired) {
			return []dto.Reply{dto.NewReply(ev.ChatID, "❌ Quiz session expired.")}, nil, nil
		}
		return nil, nil, err
	}
	if outcome == nil {
		// Duplicate tap while the question was locked.
		return nil, nil, nil
	}

	edits := []dto.MessageEdit{{
		ChatID:      ev.ChatID,
		MessageID:   ev.MessageID,
		Buttons:     feedbackButtons(outcome.Feedback),
		ButtonsOnly: true,
	}}

	var replies []dto.Reply
	if outcome.Final != nil {
		text := fmt.Sprintf("🏁 Quiz finished!\n\nYour score: %d", outcome.Final.Score)
		replies = append(replies, dto.NewReply(ev.ChatID, text))
	} else if outcome.Next != nil {
		replies = append(replies, questionReply(ev.ChatID, outcome.Next))
	}
	return replies, edits, nil
}

func questionReply(chatID int64, view *dto.QuestionView) dto.Reply {
	rows := make([][]dto.Button, 0, len(view.Options))
	for i, opt := range view.Options {
		rows = append(rows, []dto.Button{{
			Label: opt,
			Tag:   fmt.Sprintf("%s%d", tagPlayAnswerPrefix, i),
		}})
	}
	reply := dto.Reply{
		ChatID:   chatID,
		Text:     "❓ " + view.Text,
		ImageRef: view.ImageRef,
	}
	return reply.WithButtons(rows...)
}

// feedbackButtons repaints the answered question's keyboard: the correct
// option gets a check, a wrong tap gets a cross, and every button goes inert.
func feedbackButtons(fb dto.AnswerFeedback) [][]dto.Button {
	rows := make([][]dto.Button, 0, len(fb.Options))
	for i, opt := range fb.Options {
		label := opt
		switch {
		case i == fb.Correct:
			label = "✅ " + opt
		case i == fb.Chosen:
			label = "❌ " + opt
		}
		rows = append(rows, []dto.Button{{Label: label, Tag: tagLocked}})
	}
	return rows
}
