package domain

import "context"

// QuizRepository persists quizzes.
type QuizRepository interface {
	SaveQuiz(ctx context.Context, quiz *Quiz) error
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
	ListQuizzesByFolder(ctx context.Context, ownerID int64, folder string) ([]*Quiz, error)
	ListQuizzesByOwner(ctx context.Context, ownerID int64) ([]*Quiz, error)
	CountQuizzesInFolder(ctx context.Context, ownerID int64, folder string) (int, error)
	UpdateTitle(ctx context.Context, id, title string) error
	UpdateDescription(ctx context.Context, id, description string) error
	UpdateTimer(ctx context.Context, id string, seconds int) error
	ToggleShuffleQuestions(ctx context.Context, id string) error
	ToggleShuffleOptions(ctx context.Context, id string) error
	MoveToFolder(ctx context.Context, id, folder string) error
	// DeleteQuiz removes the quiz and cascades to its questions.
	DeleteQuiz(ctx context.Context, id string) error
}

// QuestionRepository persists questions.
type QuestionRepository interface {
	SaveQuestion(ctx context.Context, q *Question) error
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)
	ListQuestions(ctx context.Context, quizID string) ([]*Question, error)
	CountQuestions(ctx context.Context, quizID string) (int, error)
	UpdateText(ctx context.Context, id int64, text string) error
	UpdateImage(ctx context.Context, id int64, imageRef string) error
	UpdateOptions(ctx context.Context, id int64, options []string) error
	UpdateCorrect(ctx context.Context, id int64, correct int) error
	UpdateExplanation(ctx context.Context, id int64, explanation string) error
	DeleteQuestion(ctx context.Context, id int64) error
}

// LeaderboardRepository is the durable mirror of the in-memory boards.
type LeaderboardRepository interface {
	// UpsertEntry writes a participant's tracked score and attempt count.
	UpsertEntry(ctx context.Context, quizID string, entry *LeaderboardEntry) error
	// ListEntries returns a quiz's entries in arrival order.
	ListEntries(ctx context.Context, quizID string) ([]*LeaderboardEntry, error)
}

// FolderRepository persists folders with the (owner, name) uniqueness rule.
type FolderRepository interface {
	CreateFolder(ctx context.Context, ownerID int64, name string) error
	Exists(ctx context.Context, ownerID int64, name string) (bool, error)
	ListFolders(ctx context.Context, ownerID int64) ([]string, error)
	RenameFolder(ctx context.Context, ownerID int64, from, to string) error
	// DeleteFolder reassigns the folder's quizzes to Default and removes the
	// folder row, atomically.
	DeleteFolder(ctx context.Context, ownerID int64, name string) error
	// EnsureDefault creates the reserved Default folder if missing.
	EnsureDefault(ctx context.Context, ownerID int64) error
}
