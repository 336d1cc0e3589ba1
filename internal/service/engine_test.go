package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"quizbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type engineFixture struct {
	engine       *Engine
	registry     *SessionRegistry
	quizRepo     *MockQuizRepository
	questionRepo *MockQuestionRepository
	boardRepo    *MockLeaderboardRepository
	folderRepo   *MockFolderRepository
}

func newEngineFixture() *engineFixture {
	registry := NewSessionRegistry(time.Minute)
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	boardRepo := new(MockLeaderboardRepository)
	folderRepo := new(MockFolderRepository)

	boards := NewLeaderboardService(quizRepo, questionRepo, boardRepo, nil, nil, "quizdemo_bot")
	play := NewPlayService(registry, quizRepo, questionRepo, boards)
	play.perm = identityPerm
	conv := NewConversationService(registry, quizRepo, questionRepo, folderRepo, testOwner)
	conv.SetBoardCleaner(boards)

	return &engineFixture{
		engine:       NewEngine(registry, conv, play, boards, testOwner),
		registry:     registry,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		boardRepo:    boardRepo,
		folderRepo:   folderRepo,
	}
}

func command(text string, group bool) domain.Event {
	return domain.Event{Type: domain.EventCommand, Text: text, ChatID: testChat, GroupChat: group}
}

func TestStartDeepLinkOffersPlayButton(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	replies, edits, err := f.engine.HandleEvent(ctx, 99, command("/start PLAY_quiz-1", false))
	require.NoError(t, err)
	assert.Empty(t, edits)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "Quiz ready")
	assert.Equal(t, tagPlayStart, replies[0].Buttons[0][0].Tag)

	quizID, ok := f.registry.PlayTarget(99)
	require.True(t, ok)
	assert.Equal(t, "quiz-1", quizID)
}

func TestStartFromStrangerHasNoAdminPanel(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	replies, _, err := f.engine.HandleEvent(ctx, 99, command("/start", false))
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "don't have access")
	assert.Empty(t, replies[0].Buttons)
}

func TestStartFromOwnerOpensAdminPanel(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	replies, _, err := f.engine.HandleEvent(ctx, testOwner, command("/start", false))
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "Admin Panel")
	assert.NotEmpty(t, replies[0].Buttons)
}

func TestStartInGroupIsIgnored(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	replies, _, err := f.engine.HandleEvent(ctx, testOwner, command("/start", true))
	require.NoError(t, err)
	assert.Nil(t, replies)
}

func TestPostCommandOnlyWorksInGroups(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	replies, _, err := f.engine.HandleEvent(ctx, testOwner, command("/post_quiz-1", false))
	require.NoError(t, err)
	assert.Nil(t, replies)
	f.quizRepo.AssertNotCalled(t, "GetQuizByID", mock.Anything, mock.Anything)
}

func TestPostCommandRendersBoardWithDeepLink(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	f.quizRepo.On("GetQuizByID", ctx, "quiz-1").Return(testQuiz(), nil)
	f.questionRepo.On("CountQuestions", ctx, "quiz-1").Return(3, nil)
	f.boardRepo.On("ListEntries", ctx, "quiz-1").Return([]*domain.LeaderboardEntry{}, nil)

	replies, _, err := f.engine.HandleEvent(ctx, testOwner, command("/post_quiz-1", true))
	require.NoError(t, err)
	require.Len(t, replies, 1)

	reply := replies[0]
	assert.Contains(t, reply.Text, "Capitals")
	assert.Contains(t, reply.Text, "No attempts yet")
	assert.Equal(t, "quiz-1", reply.BoardQuizID)

	last := reply.Buttons[len(reply.Buttons)-1][0]
	assert.Equal(t, "▶️ Start this Quiz", last.Label)
	assert.Equal(t, "https://t.me/quizdemo_bot?start=PLAY_quiz-1", last.URL)
}

func TestPostCommandUnknownQuiz(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	f.quizRepo.On("GetQuizByID", ctx, "nope").Return(nil, domain.NewNotFoundError("quiz not found: nope"))
	f.boardRepo.On("ListEntries", ctx, "nope").Return([]*domain.LeaderboardEntry{}, nil)

	replies, _, err := f.engine.HandleEvent(ctx, testOwner, command("/post_nope", true))
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "❌ Quiz not found.", replies[0].Text)
	assert.Empty(t, replies[0].BoardQuizID)
}

func TestPlayStartConsumesTarget(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()
	f.registry.SetPlayTarget(99, "quiz-1")

	quiz := testQuiz()
	quiz.ShuffleQuestion = false
	quiz.ShuffleOptions = false
	f.quizRepo.On("GetQuizByID", ctx, "quiz-1").Return(quiz, nil)
	f.questionRepo.On("ListQuestions", ctx, "quiz-1").Return(playQuestions(), nil)

	tap := domain.Event{Type: domain.EventButton, Tag: tagPlayStart, ChatID: 555}
	replies, _, err := f.engine.HandleEvent(ctx, 99, tap)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "❓")

	_, ok := f.registry.PlayTarget(99)
	assert.False(t, ok)
	require.NotNil(t, f.registry.Play(99))
}

func TestAnswerTapEditsKeyboardAndAsksNext(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	quiz := testQuiz()
	quiz.ShuffleQuestion = false
	quiz.ShuffleOptions = false
	f.quizRepo.On("GetQuizByID", ctx, "quiz-1").Return(quiz, nil)
	f.questionRepo.On("ListQuestions", ctx, "quiz-1").Return(playQuestions(), nil)

	_, err := f.engine.play.StartSession(ctx, 99, "quiz-1")
	require.NoError(t, err)

	tap := domain.Event{
		Type:        domain.EventButton,
		Tag:         "PLAY_ANSWER_0",
		ChatID:      555,
		MessageID:   71,
		DisplayName: "Alice",
	}
	replies, edits, err := f.engine.HandleEvent(ctx, 99, tap)
	require.NoError(t, err)

	require.Len(t, edits, 1)
	assert.Equal(t, int64(555), edits[0].ChatID)
	assert.Equal(t, 71, edits[0].MessageID)
	assert.True(t, edits[0].ButtonsOnly)
	assert.Equal(t, "✅ a", edits[0].Buttons[0][0].Label)
	assert.Equal(t, tagLocked, edits[0].Buttons[0][0].Tag)

	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "❓")
}

func TestAnswerTapWithoutSession(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	tap := domain.Event{Type: domain.EventButton, Tag: "PLAY_ANSWER_0", ChatID: 555}
	replies, edits, err := f.engine.HandleEvent(ctx, 99, tap)
	require.NoError(t, err)
	assert.Empty(t, edits)
	require.Len(t, replies, 1)
	assert.Equal(t, "❌ Quiz session expired.", replies[0].Text)
}

func TestAuthoringButtonsAreOwnerOnly(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	tap := domain.Event{Type: domain.EventButton, Tag: tagHomeCreate, ChatID: testChat}
	replies, edits, err := f.engine.HandleEvent(ctx, 99, tap)
	require.NoError(t, err)
	assert.Nil(t, replies)
	assert.Nil(t, edits)

	replies, _, err = f.engine.HandleEvent(ctx, testOwner, tap)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "Send quiz title")
}

func TestLockedAndNopTagsAreIgnored(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	for _, tag := range []string{tagLocked, tagBoardNop} {
		replies, edits, err := f.engine.HandleEvent(ctx, testOwner, domain.Event{
			Type: domain.EventButton, Tag: tag, ChatID: testChat,
		})
		require.NoError(t, err)
		assert.Nil(t, replies)
		assert.Nil(t, edits)
	}
}

func TestConcurrentTapsScoreEachQuestionOnce(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	quiz := testQuiz()
	quiz.ShuffleQuestion = false
	quiz.ShuffleOptions = false
	questions := []*domain.Question{
		{ID: 1, QuizID: "quiz-1", Text: "one", Options: []string{"a", "b", "c", "d"}, Correct: 0},
		{ID: 2, QuizID: "quiz-1", Text: "two", Options: []string{"e", "f", "g", "h"}, Correct: 0},
		{ID: 3, QuizID: "quiz-1", Text: "three", Options: []string{"i", "j", "k", "l"}, Correct: 0},
	}
	f.quizRepo.On("GetQuizByID", ctx, "quiz-1").Return(quiz, nil)
	f.questionRepo.On("ListQuestions", ctx, "quiz-1").Return(questions, nil)
	f.boardRepo.On("ListEntries", ctx, "quiz-1").Return([]*domain.LeaderboardEntry{}, nil)

	var recorded []*domain.LeaderboardEntry
	var recordedMu sync.Mutex
	f.boardRepo.On("UpsertEntry", ctx, "quiz-1", mock.Anything).
		Run(func(args mock.Arguments) {
			recordedMu.Lock()
			recorded = append(recorded, args.Get(2).(*domain.LeaderboardEntry))
			recordedMu.Unlock()
		}).
		Return(nil)

	_, err := f.engine.play.StartSession(ctx, 99, "quiz-1")
	require.NoError(t, err)

	// Every question's correct answer is option 0, so three taps must land
	// as exactly one answer each regardless of interleaving.
	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func() {
			defer wg.Done()
			tap := domain.Event{
				Type:        domain.EventButton,
				Tag:         "PLAY_ANSWER_0",
				ChatID:      555,
				MessageID:   71,
				DisplayName: "Alice",
			}
			_, _, err := f.engine.HandleEvent(ctx, 99, tap)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Nil(t, f.registry.Play(99))
	require.Len(t, recorded, 1)
	assert.Equal(t, 3, recorded[0].Score)
	assert.Equal(t, 1, recorded[0].Attempts)
}

func TestFinalAnswerReportsScore(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	quiz := testQuiz()
	quiz.ShuffleQuestion = false
	quiz.ShuffleOptions = false
	f.quizRepo.On("GetQuizByID", ctx, "quiz-1").Return(quiz, nil)
	f.questionRepo.On("ListQuestions", ctx, "quiz-1").
		Return(playQuestions()[:1], nil)
	f.boardRepo.On("ListEntries", ctx, "quiz-1").Return([]*domain.LeaderboardEntry{}, nil)
	f.boardRepo.On("UpsertEntry", ctx, "quiz-1", mock.Anything).Return(nil)

	_, err := f.engine.play.StartSession(ctx, 99, "quiz-1")
	require.NoError(t, err)

	tap := domain.Event{
		Type:        domain.EventButton,
		Tag:         "PLAY_ANSWER_0",
		ChatID:      555,
		MessageID:   71,
		DisplayName: "Alice",
	}
	replies, edits, err := f.engine.HandleEvent(ctx, 99, tap)
	require.NoError(t, err)
	require.Len(t, edits, 1)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "Quiz finished")
	assert.Contains(t, replies[0].Text, "Your score: 1")
	assert.Nil(t, f.registry.Play(99))
}
