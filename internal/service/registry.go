package service

import (
	"context"
	"sync"
	"time"

	"quizbot/internal/domain"
	"quizbot/internal/logger"

	"go.uber.org/zap"
)

// SessionRegistry holds all per-user runtime state: the authoring
// conversation, a pending deletion awaiting confirmation, an active play
// session, and the quiz a deep-linked participant is about to start.
// Entries older than idleTTL are removed by Sweep.
type SessionRegistry struct {
	mu            sync.RWMutex
	conversations map[int64]*domain.ConversationState
	pending       map[int64]*domain.PendingDeletion
	plays         map[int64]*domain.PlaySession
	playTargets   map[int64]playTarget
	userLocks     map[int64]*sync.Mutex

	idleTTL time.Duration
	now     func() time.Time
}

type playTarget struct {
	quizID  string
	touched time.Time
}

func NewSessionRegistry(idleTTL time.Duration) *SessionRegistry {
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	return &SessionRegistry{
		conversations: make(map[int64]*domain.ConversationState),
		pending:       make(map[int64]*domain.PendingDeletion),
		plays:         make(map[int64]*domain.PlaySession),
		playTargets:   make(map[int64]playTarget),
		userLocks:     make(map[int64]*sync.Mutex),
		idleTTL:       idleTTL,
		now:           time.Now,
	}
}

// LockUser serializes all event handling for one user and returns the
// unlock. The long-poll loop handles updates one at a time, but the webhook
// server dispatches concurrently, so every event goes through this lock
// before any per-user state is touched. Locks are never swept; a held lock
// must stay valid across a sweep.
func (r *SessionRegistry) LockUser(userID int64) func() {
	r.mu.Lock()
	l, ok := r.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		r.userLocks[userID] = l
	}
	r.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Conversation returns the user's conversation state, creating an idle one
// on first access. The returned pointer is owned by the single goroutine
// handling this user's updates; the registry only guards the map itself.
func (r *SessionRegistry) Conversation(userID int64) *domain.ConversationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.conversations[userID]
	if !ok {
		st = &domain.ConversationState{
			Step:          domain.StepIdle,
			CurrentFolder: domain.DefaultFolderName,
			FolderPages:   make(map[string]int),
		}
		r.conversations[userID] = st
	}
	st.Touched = r.now()
	return st
}

// ResetConversation drops the wizard back to idle but keeps navigation
// context (current folder, page positions) so menus reopen where they were.
func (r *SessionRegistry) ResetConversation(userID int64) *domain.ConversationState {
	st := r.Conversation(userID)
	st.Step = domain.StepIdle
	st.Draft = nil
	st.ReplacementOptions = nil
	st.RenameFrom = ""
	return st
}

func (r *SessionRegistry) PendingDeletion(userID int64) *domain.PendingDeletion {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pending[userID]
}

func (r *SessionRegistry) SetPendingDeletion(userID int64, pd *domain.PendingDeletion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[userID] = pd
}

// ClearPendingDeletion is the only way a pending deletion goes away short of
// the idle sweep. Unrelated traffic never cancels it implicitly.
func (r *SessionRegistry) ClearPendingDeletion(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, userID)
}

func (r *SessionRegistry) Play(userID int64) *domain.PlaySession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := r.plays[userID]
	if s != nil {
		s.Touched = r.now()
	}
	return s
}

func (r *SessionRegistry) SetPlay(userID int64, s *domain.PlaySession) {
	s.Touched = r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plays[userID] = s
}

func (r *SessionRegistry) DeletePlay(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plays, userID)
}

// SetPlayTarget remembers which quiz a deep-linked user will start when they
// press the start button in their private chat.
func (r *SessionRegistry) SetPlayTarget(userID int64, quizID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playTargets[userID] = playTarget{quizID: quizID, touched: r.now()}
}

func (r *SessionRegistry) PlayTarget(userID int64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.playTargets[userID]
	return t.quizID, ok
}

func (r *SessionRegistry) ClearPlayTarget(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.playTargets, userID)
}

// Sweep removes state untouched for longer than the idle TTL and reports how
// many entries were dropped.
func (r *SessionRegistry) Sweep() int {
	cutoff := r.now().Add(-r.idleTTL)
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, st := range r.conversations {
		if st.Touched.Before(cutoff) {
			delete(r.conversations, id)
			delete(r.pending, id)
			removed++
		}
	}
	for id, s := range r.plays {
		if s.Touched.Before(cutoff) {
			delete(r.plays, id)
			removed++
		}
	}
	for id, t := range r.playTargets {
		if t.touched.Before(cutoff) {
			delete(r.playTargets, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps on the given interval until the context is cancelled.
func (r *SessionRegistry) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.Get().Debug("swept idle sessions", zap.Int("removed", n))
			}
		}
	}
}
