package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"quizbot/internal/domain"
	"quizbot/internal/dto"
)

// PlayService runs private play-throughs: it snapshots a quiz into an
// immutable session (shuffled per the quiz settings), scores taps with a
// per-question lock, and reports the final score to the leaderboard exactly
// once per finished session.
type PlayService struct {
	registry     *SessionRegistry
	quizRepo     domain.QuizRepository
	questionRepo domain.QuestionRepository
	boards       *LeaderboardService

	// perm generates option/question orderings; swapped in tests for a
	// deterministic one.
	permMu sync.Mutex
	perm   func(n int) []int
}

func NewPlayService(
	registry *SessionRegistry,
	quizRepo domain.QuizRepository,
	questionRepo domain.QuestionRepository,
	boards *LeaderboardService,
) *PlayService {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &PlayService{
		registry:     registry,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		boards:       boards,
		perm:         rng.Perm,
	}
}

func (s *PlayService) permute(n int) []int {
	s.permMu.Lock()
	defer s.permMu.Unlock()
	return s.perm(n)
}

// StartSession snapshots the quiz and its questions into a new play session
// for the user, replacing any session already in flight. Question and option
// order are shuffled per the quiz settings; the correct index is remapped
// along with the options so correctness tracks the option text.
func (s *PlayService) StartSession(ctx context.Context, userID int64, quizID string) (*dto.QuestionView, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError("quiz not found: " + quizID)
	}

	questions, err := s.questionRepo.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, domain.NewNoQuestionsError(quizID)
	}

	if quiz.ShuffleQuestion {
		order := s.permute(len(questions))
		shuffled := make([]*domain.Question, len(questions))
		for i, old := range order {
			shuffled[i] = questions[old]
		}
		questions = shuffled
	}

	snapshot := make([]domain.PlayQuestion, len(questions))
	for i, q := range questions {
		if quiz.ShuffleOptions {
			if err := q.Permute(s.permute(len(q.Options))); err != nil {
				return nil, err
			}
		}
		snapshot[i] = domain.PlayQuestion{
			Text:        q.Text,
			ImageRef:    q.ImageRef,
			Options:     q.Options,
			Correct:     q.Correct,
			Explanation: q.Explanation,
		}
	}

	session := &domain.PlaySession{
		QuizID:    quizID,
		Questions: snapshot,
	}
	s.registry.SetPlay(userID, session)

	return questionView(session), nil
}

// SubmitAnswer scores one tap. A tap that lands while the current question is
// already locked is dropped silently, the outcome and error are both nil.
// When the last question is answered the session is torn down and the score
// recorded before the outcome is returned.
func (s *PlayService) SubmitAnswer(ctx context.Context, userID int64, displayName string, chosen int) (*dto.AnswerOutcome, error) {
	session := s.registry.Play(userID)
	if session == nil {
		return nil, domain.NewSessionExpiredError()
	}
	if session.Locked {
		return nil, nil
	}
	session.Locked = true

	q := session.Current()
	if chosen < 0 || chosen >= len(q.Options) {
		session.Locked = false
		return nil, domain.NewValidationError("answer index out of range")
	}
	if chosen == q.Correct {
		session.Score++
	}

	outcome := &dto.AnswerOutcome{
		Feedback: dto.AnswerFeedback{
			Options: q.Options,
			Chosen:  chosen,
			Correct: q.Correct,
		},
	}

	session.Index++
	session.Locked = false

	if session.Finished() {
		s.registry.DeletePlay(userID)
		s.boards.RecordResult(ctx, session.QuizID, userID, displayName, session.Score)
		outcome.Final = &dto.FinalResult{
			QuizID: session.QuizID,
			Score:  session.Score,
			Total:  len(session.Questions),
		}
		return outcome, nil
	}

	outcome.Next = questionView(session)
	return outcome, nil
}

func questionView(s *domain.PlaySession) *dto.QuestionView {
	q := s.Current()
	return &dto.QuestionView{
		Number:   s.Index + 1,
		Total:    len(s.Questions),
		Text:     q.Text,
		ImageRef: q.ImageRef,
		Options:  q.Options,
	}
}
