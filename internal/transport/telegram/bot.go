package telegram

import (
	"context"

	"quizbot/internal/domain"
	"quizbot/internal/dto"
	"quizbot/internal/logger"
	"quizbot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot bridges the Telegram Bot API and the engine: it converts updates into
// events, renders the engine's replies and edits back onto the wire, and
// doubles as the Sender the leaderboard uses for pushes.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *service.Engine
	boards *service.LeaderboardService
}

func NewBot(token string, engine *service.Engine, boards *service.LeaderboardService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, engine: engine, boards: boards}, nil
}

// Username is the bot's account name as reported by the API.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// Run long-polls for updates until the context is cancelled. Each update is
// handled synchronously; Telegram delivers one user's updates in order, and
// handling them in order is what keeps the wizard steps consistent.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	logger.Get().Info("bot started", zap.String("username", b.Username()))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.ProcessUpdate(ctx, update)
		}
	}
}

// ProcessUpdate converts one update into an event and runs it through the
// engine. The webhook server feeds updates through here as well.
func (b *Bot) ProcessUpdate(ctx context.Context, update tgbotapi.Update) {
	userID, ev, ok := toEvent(update)
	if !ok {
		return
	}

	if update.CallbackQuery != nil {
		// Stop the client-side loading spinner.
		if _, err := b.api.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); err != nil {
			logger.Get().Debug("callback ack failed", zap.Error(err))
		}
	}

	replies, edits, err := b.engine.HandleEvent(ctx, userID, ev)
	if err != nil {
		logger.Get().Error("event handling failed",
			zap.Int64("user_id", userID),
			zap.String("tag", ev.Tag),
			zap.Error(err))
		b.sendPlain(ev.ChatID, "⚠️ Something went wrong. Please try again.")
		return
	}

	for _, edit := range edits {
		if err := b.EditMessage(edit); err != nil {
			logger.Get().Warn("message edit failed", zap.Error(err))
		}
	}
	for _, reply := range replies {
		b.sendReply(ctx, reply)
	}
}

func toEvent(update tgbotapi.Update) (int64, domain.Event, bool) {
	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.Message == nil || cb.From == nil {
			return 0, domain.Event{}, false
		}
		return cb.From.ID, domain.Event{
			Type:        domain.EventButton,
			Tag:         cb.Data,
			ChatID:      cb.Message.Chat.ID,
			MessageID:   cb.Message.MessageID,
			DisplayName: cb.From.FirstName,
			GroupChat:   cb.Message.Chat.IsGroup() || cb.Message.Chat.IsSuperGroup(),
		}, true

	case update.Message != nil:
		msg := update.Message
		if msg.From == nil {
			return 0, domain.Event{}, false
		}
		ev := domain.Event{
			ChatID:      msg.Chat.ID,
			DisplayName: msg.From.FirstName,
			GroupChat:   msg.Chat.IsGroup() || msg.Chat.IsSuperGroup(),
		}
		switch {
		case msg.IsCommand():
			ev.Type = domain.EventCommand
			ev.Text = msg.Text
		case len(msg.Photo) > 0:
			ev.Type = domain.EventImage
			// Last size is the highest resolution.
			ev.ImageRef = msg.Photo[len(msg.Photo)-1].FileID
		case msg.Text != "":
			ev.Type = domain.EventText
			ev.Text = msg.Text
		default:
			return 0, domain.Event{}, false
		}
		return msg.From.ID, ev, true
	}
	return 0, domain.Event{}, false
}

func (b *Bot) sendReply(ctx context.Context, reply dto.Reply) {
	sent, err := b.send(reply)
	if err != nil {
		logger.Get().Warn("send failed",
			zap.Int64("chat_id", reply.ChatID), zap.Error(err))
		return
	}
	if reply.BoardQuizID != "" {
		b.boards.RegisterBoardMessage(ctx, reply.BoardQuizID, reply.ChatID, sent.MessageID)
	}
}

func (b *Bot) send(reply dto.Reply) (tgbotapi.Message, error) {
	markup := toMarkup(reply.Buttons)

	if reply.ImageRef != "" {
		photo := tgbotapi.NewPhoto(reply.ChatID, tgbotapi.FileID(reply.ImageRef))
		photo.Caption = reply.Text
		if reply.Markdown {
			photo.ParseMode = tgbotapi.ModeMarkdown
		}
		if markup != nil {
			photo.ReplyMarkup = markup
		}
		return b.api.Send(photo)
	}

	msg := tgbotapi.NewMessage(reply.ChatID, reply.Text)
	if reply.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	return b.api.Send(msg)
}

func (b *Bot) sendPlain(chatID int64, text string) {
	if chatID == 0 {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.Get().Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// SendText implements service.Sender.
func (b *Bot) SendText(chatID int64, text string, buttons [][]dto.Button) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup := toMarkup(buttons); markup != nil {
		msg.ReplyMarkup = markup
	}
	_, err := b.api.Send(msg)
	return err
}

// EditMessage implements service.Sender.
func (b *Bot) EditMessage(edit dto.MessageEdit) error {
	markup := toMarkup(edit.Buttons)

	if edit.ButtonsOnly {
		if markup == nil {
			return nil
		}
		cfg := tgbotapi.NewEditMessageReplyMarkup(edit.ChatID, edit.MessageID, *markup)
		_, err := b.api.Send(cfg)
		return err
	}

	cfg := tgbotapi.NewEditMessageText(edit.ChatID, edit.MessageID, edit.Text)
	if edit.Markdown {
		cfg.ParseMode = tgbotapi.ModeMarkdown
	}
	cfg.ReplyMarkup = markup
	_, err := b.api.Send(cfg)
	return err
}
