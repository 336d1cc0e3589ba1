package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"quizbot/internal/cache"
	"quizbot/internal/domain"
	"quizbot/internal/dto"
	"quizbot/internal/logger"
	"quizbot/internal/util"

	"go.uber.org/zap"
)

const boardPageSize = 5

// boardTarget is the posted group message a quiz's leaderboard lives in.
// It is mirrored to the cache so a restarted process keeps editing the same
// message instead of going quiet.
type boardTarget struct {
	ChatID    int64 `json:"chat_id"`
	MessageID int   `json:"message_id"`
	Page      int   `json:"page"`
}

type board struct {
	mu      sync.Mutex
	entries []*domain.LeaderboardEntry // arrival order, re-sorted per render
	byUser  map[int64]*domain.LeaderboardEntry
	target  *boardTarget
	loaded  bool
}

// LeaderboardService keeps one board per posted quiz, applies the two-attempt
// scoring rule, and pushes edits to the shared group message. Scores are
// written through to the database and the message target to the cache; both
// are best effort, the in-memory board is authoritative for this process.
type LeaderboardService struct {
	mu     sync.Mutex
	boards map[string]*board

	quizRepo     domain.QuizRepository
	questionRepo domain.QuestionRepository
	boardRepo    domain.LeaderboardRepository
	cache        domain.Cache
	sender       Sender
	botUsername  string
}

func NewLeaderboardService(
	quizRepo domain.QuizRepository,
	questionRepo domain.QuestionRepository,
	boardRepo domain.LeaderboardRepository,
	cacheClient domain.Cache,
	sender Sender,
	botUsername string,
) *LeaderboardService {
	return &LeaderboardService{
		boards:       make(map[string]*board),
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		boardRepo:    boardRepo,
		cache:        cacheClient,
		sender:       sender,
		botUsername:  botUsername,
	}
}

// SetSender breaks the construction cycle between the service and the
// transport. Must be called before any update is handled.
func (s *LeaderboardService) SetSender(sender Sender) {
	s.sender = sender
}

// SetBotUsername overrides the configured username with the one the API
// reports, which is what deep links must use.
func (s *LeaderboardService) SetBotUsername(username string) {
	if username != "" {
		s.botUsername = username
	}
}

func (s *LeaderboardService) board(ctx context.Context, quizID string) *board {
	s.mu.Lock()
	b, ok := s.boards[quizID]
	if !ok {
		b = &board{byUser: make(map[int64]*domain.LeaderboardEntry)}
		s.boards[quizID] = b
	}
	s.mu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.loaded {
		s.hydrate(ctx, quizID, b)
		b.loaded = true
	}
	return b
}

// hydrate reloads a board from durable storage after a restart. Caller holds
// the board lock.
func (s *LeaderboardService) hydrate(ctx context.Context, quizID string, b *board) {
	if s.boardRepo != nil {
		entries, err := s.boardRepo.ListEntries(ctx, quizID)
		if err != nil {
			logger.Get().Error("failed to reload leaderboard entries",
				zap.String("quiz_id", quizID), zap.Error(err))
		} else {
			for _, e := range entries {
				b.entries = append(b.entries, e)
				b.byUser[e.UserID] = e
			}
		}
	}
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cache.BoardMessageKey(quizID))
		if err != nil {
			if !errors.Is(err, domain.ErrCacheMiss) {
				logger.Get().Error("failed to read board message target",
					zap.String("quiz_id", quizID), zap.Error(err))
			}
			return
		}
		var t boardTarget
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			logger.Get().Error("corrupt board message target",
				zap.String("quiz_id", quizID), zap.Error(err))
			return
		}
		b.target = &t
	}
}

// RecordResult applies one finished play-through. The first attempt creates
// the entry, the second overwrites the score, further attempts only bump the
// attempt counter. Returns whether the visible board changed.
func (s *LeaderboardService) RecordResult(ctx context.Context, quizID string, userID int64, name string, score int) bool {
	b := s.board(ctx, quizID)
	b.mu.Lock()

	updated := false
	entry, ok := b.byUser[userID]
	switch {
	case !ok:
		entry = &domain.LeaderboardEntry{UserID: userID, Name: name, Score: score, Attempts: 1}
		b.entries = append(b.entries, entry)
		b.byUser[userID] = entry
		updated = true
	case entry.Attempts == 1:
		entry.Score = score
		entry.Attempts = 2
		updated = true
	default:
		entry.Attempts++
	}
	persisted := *entry
	b.mu.Unlock()

	if s.boardRepo != nil {
		if err := s.boardRepo.UpsertEntry(ctx, quizID, &persisted); err != nil {
			logger.Get().Error("failed to persist leaderboard entry",
				zap.String("quiz_id", quizID), zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	if updated {
		s.refresh(ctx, quizID)
	}
	return updated
}

// Render builds the full group message for a quiz: header with settings, then
// the leaderboard slice for the given page. Pages is 0 while nobody has
// played yet.
func (s *LeaderboardService) Render(ctx context.Context, quizID string, page int) (string, int, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return "", 0, err
	}
	if quiz == nil {
		return "", 0, domain.NewNotFoundError("quiz not found: " + quizID)
	}
	total, err := s.questionRepo.CountQuestions(ctx, quizID)
	if err != nil {
		return "", 0, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📘 *%s*\n", quiz.Title)
	if quiz.Description != "" {
		sb.WriteString(quiz.Description + "\n")
	}
	fmt.Fprintf(&sb, "\n📊 %d Questions • ⏱ %ds • 🔀 Q: %s / A: %s\n\n",
		total, quiz.TimerSeconds, onOff(quiz.ShuffleQuestion), onOff(quiz.ShuffleOptions))
	sb.WriteString("🏆 *Quiz Leaderboard*\n")

	b := s.board(ctx, quizID)
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == 0 {
		sb.WriteString("_No attempts yet_\n")
		return sb.String(), 0, nil
	}

	ranked := make([]*domain.LeaderboardEntry, len(b.entries))
	copy(ranked, b.entries)
	// Stable keeps arrival order among equal scores.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	p := util.PaginateSparse(len(ranked), boardPageSize, page)
	for i, e := range ranked[p.Start:p.End] {
		rank := p.Start + i + 1
		prefix := fmt.Sprintf("%d.", rank)
		switch rank {
		case 1:
			prefix = "🥇"
		case 2:
			prefix = "🥈"
		case 3:
			prefix = "🥉"
		}
		fmt.Fprintf(&sb, "%s %s — %d\n", prefix, e.Name, e.Score)
	}
	return sb.String(), p.TotalPages, nil
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

// RegisterBoardMessage pins the board to the message the quiz was posted as.
// Posting again moves the board to the new message and resets the page.
func (s *LeaderboardService) RegisterBoardMessage(ctx context.Context, quizID string, chatID int64, messageID int) {
	b := s.board(ctx, quizID)
	b.mu.Lock()
	b.target = &boardTarget{ChatID: chatID, MessageID: messageID}
	target := *b.target
	b.mu.Unlock()
	s.storeTarget(ctx, quizID, target)
}

// Navigate moves the shared board message one page and re-renders it.
func (s *LeaderboardService) Navigate(ctx context.Context, quizID string, delta int) {
	b := s.board(ctx, quizID)
	b.mu.Lock()
	if b.target == nil {
		b.mu.Unlock()
		return
	}
	b.target.Page += delta
	if b.target.Page < 0 {
		b.target.Page = 0
	}
	target := *b.target
	b.mu.Unlock()

	s.storeTarget(ctx, quizID, target)
	s.refresh(ctx, quizID)
}

func (s *LeaderboardService) storeTarget(ctx context.Context, quizID string, t boardTarget) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cache.BoardMessageKey(quizID), string(raw), 0); err != nil {
		logger.Get().Error("failed to store board message target",
			zap.String("quiz_id", quizID), zap.Error(err))
	}
}

// refresh re-renders the board into its pinned group message. Failures are
// logged and never surfaced to the player whose answer triggered the push.
func (s *LeaderboardService) refresh(ctx context.Context, quizID string) {
	b := s.board(ctx, quizID)
	b.mu.Lock()
	if b.target == nil {
		b.mu.Unlock()
		return
	}
	target := *b.target
	b.mu.Unlock()

	text, pages, err := s.Render(ctx, quizID, target.Page)
	if err != nil {
		logger.Get().Error("failed to render leaderboard",
			zap.String("quiz_id", quizID), zap.Error(err))
		return
	}

	if s.sender == nil {
		return
	}
	edit := dto.MessageEdit{
		ChatID:    target.ChatID,
		MessageID: target.MessageID,
		Text:      text,
		Buttons:   s.BoardButtons(quizID, target.Page, pages),
		Markdown:  true,
	}
	if err := s.sender.EditMessage(edit); err != nil {
		logger.Get().Warn("failed to update group leaderboard",
			zap.String("quiz_id", quizID), zap.Error(err))
	}
}

// DropBoard removes a deleted quiz's board and its cached message target.
// Durable rows go away with the quiz's cascade delete.
func (s *LeaderboardService) DropBoard(ctx context.Context, quizID string) {
	s.mu.Lock()
	delete(s.boards, quizID)
	s.mu.Unlock()
	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.BoardMessageKey(quizID)); err != nil {
			logger.Get().Warn("failed to drop board message target",
				zap.String("quiz_id", quizID), zap.Error(err))
		}
	}
}

// BoardButtons builds the nav row (only when there is more than one page)
// plus the deep-link start button every posted quiz carries.
func (s *LeaderboardService) BoardButtons(quizID string, page, pages int) [][]dto.Button {
	var rows [][]dto.Button
	if pages > 1 {
		var nav []dto.Button
		if page > 0 {
			nav = append(nav, dto.Button{Label: "◀ Prev", Tag: "LB_PREV|" + quizID})
		}
		nav = append(nav, dto.Button{Label: fmt.Sprintf("%d/%d", page+1, pages), Tag: "LB_NOP"})
		if page < pages-1 {
			nav = append(nav, dto.Button{Label: "Next ▶", Tag: "LB_NEXT|" + quizID})
		}
		rows = append(rows, nav)
	}
	rows = append(rows, []dto.Button{{
		Label: "▶️ Start this Quiz",
		URL:   fmt.Sprintf("https://t.me/%s?start=PLAY_%s", s.botUsername, quizID),
	}})
	return rows
}
