package service

import (
	"sync"
	"testing"
	"time"

	"quizbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationGetOrCreate(t *testing.T) {
	r := NewSessionRegistry(time.Minute)

	st := r.Conversation(7)
	require.NotNil(t, st)
	assert.Equal(t, domain.StepIdle, st.Step)
	assert.Equal(t, domain.DefaultFolderName, st.CurrentFolder)
	assert.NotNil(t, st.FolderPages)

	st.Step = domain.StepAwaitingTitle
	again := r.Conversation(7)
	assert.Same(t, st, again)
	assert.Equal(t, domain.StepAwaitingTitle, again.Step)
}

func TestResetConversationKeepsNavigation(t *testing.T) {
	r := NewSessionRegistry(time.Minute)

	st := r.Conversation(7)
	st.Step = domain.StepAwaitingOption
	st.Draft = &domain.QuestionDraft{Text: "half done"}
	st.ReplacementOptions = []string{"a", "b"}
	st.RenameFrom = "Archive"
	st.CurrentFolder = "Archive"
	st.FolderPages["Archive"] = 3

	reset := r.ResetConversation(7)
	assert.Same(t, st, reset)
	assert.Equal(t, domain.StepIdle, reset.Step)
	assert.Nil(t, reset.Draft)
	assert.Nil(t, reset.ReplacementOptions)
	assert.Empty(t, reset.RenameFrom)
	assert.Equal(t, "Archive", reset.CurrentFolder)
	assert.Equal(t, 3, reset.FolderPages["Archive"])
}

func TestSweepRemovesIdleState(t *testing.T) {
	r := NewSessionRegistry(30 * time.Minute)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }

	r.Conversation(1)
	r.SetPendingDeletion(1, &domain.PendingDeletion{Kind: domain.DeleteQuiz, QuizID: "q"})
	r.SetPlay(2, &domain.PlaySession{QuizID: "q"})
	r.SetPlayTarget(3, "q")

	// Nothing is stale yet.
	assert.Zero(t, r.Sweep())

	// User 2 stays active past the cutoff, the rest go idle.
	r.now = func() time.Time { return base.Add(25 * time.Minute) }
	r.Play(2)

	r.now = func() time.Time { return base.Add(40 * time.Minute) }
	assert.Equal(t, 2, r.Sweep())

	assert.Nil(t, r.PendingDeletion(1))
	require.NotNil(t, r.Play(2))
	_, ok := r.PlayTarget(3)
	assert.False(t, ok)

	// The swept conversation comes back fresh on next contact.
	st := r.Conversation(1)
	assert.Equal(t, domain.StepIdle, st.Step)
}

func TestSweepDropsPendingWithConversation(t *testing.T) {
	r := NewSessionRegistry(10 * time.Minute)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }

	r.Conversation(1)
	r.SetPendingDeletion(1, &domain.PendingDeletion{Kind: domain.DeleteFolder, Folder: "Archive"})

	r.now = func() time.Time { return base.Add(time.Hour) }
	assert.Equal(t, 1, r.Sweep())
	assert.Nil(t, r.PendingDeletion(1))
}

func TestPlayTargetLifecycle(t *testing.T) {
	r := NewSessionRegistry(time.Minute)

	_, ok := r.PlayTarget(5)
	assert.False(t, ok)

	r.SetPlayTarget(5, "quiz-1")
	id, ok := r.PlayTarget(5)
	require.True(t, ok)
	assert.Equal(t, "quiz-1", id)

	r.ClearPlayTarget(5)
	_, ok = r.PlayTarget(5)
	assert.False(t, ok)
}

func TestLockUserSerializesAccess(t *testing.T) {
	r := NewSessionRegistry(time.Minute)

	const workers = 64
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := r.LockUser(7)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, workers, counter)
}

func TestLockUserIsPerUser(t *testing.T) {
	r := NewSessionRegistry(time.Minute)

	unlockA := r.LockUser(1)
	defer unlockA()

	// A different user's lock must not block.
	done := make(chan struct{})
	go func() {
		unlockB := r.LockUser(2)
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock for user 2 blocked on user 1's lock")
	}
}

func TestDefaultIdleTTL(t *testing.T) {
	r := NewSessionRegistry(0)
	assert.Equal(t, 30*time.Minute, r.idleTTL)
}
