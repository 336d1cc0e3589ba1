package domain

import "time"

// ConversationStep is the tag of the per-user conversation state machine.
// At most one wizard is active per user at a time; entering a new wizard
// replaces the whole state, which clears prior scratch data.
type ConversationStep int

const (
	// StepIdle means no wizard is active; text input is ignored and only
	// menu navigation applies.
	StepIdle ConversationStep = iota

	// Quiz creation / quiz field edits.
	StepAwaitingTitle
	StepEditingTitle
	StepEditingDescription

	// Question-add wizard.
	StepAwaitingQuestionText
	StepAwaitingQuestionImage
	StepAwaitingOption
	StepAwaitingCorrectChoice
	StepAwaitingExplanation

	// Question field edits.
	StepEditingQuestionText
	StepEditingQuestionImage
	StepEditingOptions
	StepEditingExplanation

	// Folder wizards.
	StepAddingFolder
	StepRenamingFolder
	StepAddingFolderForMove

	// Copy-question target selection.
	StepCopyingQuestion
)

// QuestionDraft accumulates the fields of a new question across wizard steps.
type QuestionDraft struct {
	Text        string
	ImageRef    string
	Options     []string
	Correct     int
	Explanation string
}

// ConversationState is a user's single tagged wizard state plus the scratch
// data that wizard needs.
type ConversationState struct {
	Step ConversationStep

	// ActiveQuizID / ActiveQuestionID are the authoring targets.
	ActiveQuizID     string
	ActiveQuestionID int64

	// Draft holds the accumulating new question during the add wizard.
	Draft *QuestionDraft

	// ReplacementOptions collects the four new options during an options edit.
	ReplacementOptions []string

	// RenameFrom is the folder being renamed.
	RenameFrom string

	// CurrentFolder is the folder the user last opened; new quizzes land here.
	CurrentFolder string

	// LastQuizFolder remembers where to return from a quiz action menu.
	LastQuizFolder string

	// Per-list page cursors.
	QuestionPage int
	CopyPage     int
	FolderPages  map[string]int

	// Touched drives idle expiry.
	Touched time.Time
}

// DeletionKind discriminates what a pending deletion targets.
type DeletionKind int

const (
	DeleteQuestion DeletionKind = iota
	DeleteQuiz
	DeleteFolder
)

// PendingDeletion is a user's single outstanding delete request awaiting an
// explicit confirm or cancel. A new deletion request replaces it; any other
// event leaves it pending.
type PendingDeletion struct {
	Kind       DeletionKind
	QuizID     string
	QuestionID int64
	Folder     string
}

// PlayQuestion is an immutable question snapshot inside a play session, with
// options already shuffled and the correct index remapped.
type PlayQuestion struct {
	Text        string
	ImageRef    string
	Options     []string
	Correct     int
	Explanation string
}

// PlaySession tracks one user's play-through of one quiz.
type PlaySession struct {
	QuizID    string
	Questions []PlayQuestion
	Index     int
	Score     int
	// Locked guards against a duplicate tap being scored before the next
	// question is shown.
	Locked  bool
	Touched time.Time
}

// Finished reports whether every question has been answered.
func (s *PlaySession) Finished() bool {
	return s.Index >= len(s.Questions)
}

// Current returns the question at the session cursor.
func (s *PlaySession) Current() *PlayQuestion {
	return &s.Questions[s.Index]
}
