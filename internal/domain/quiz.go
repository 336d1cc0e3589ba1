package domain

import (
	"fmt"
	"strings"
)

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// OptionDelimiter joins the four option strings into a single storage
// column. Option text must never contain it, or the stored list would decode
// to more than four options; ValidateOptions rejects it on every write path.
const OptionDelimiter = "||"

// DefaultFolderName is the reserved folder every owner always has.
// It cannot be renamed, deleted, or recreated.
const DefaultFolderName = "Default"

// Default quiz settings applied on creation.
const (
	DefaultTimerSeconds    = 15
	DefaultShuffleQuestion = true
	DefaultShuffleOptions  = true
)

// Quiz represents an authored quiz owned by a single owner.
type Quiz struct {
	ID              string
	OwnerID         int64
	Title           string
	Description     string
	Folder          string
	ShuffleQuestion bool
	ShuffleOptions  bool
	TimerSeconds    int
}

// NewQuiz creates a Quiz with the source defaults (shuffle on/on, 15s timer).
func NewQuiz(id string, ownerID int64, title, folder string) *Quiz {
	if folder == "" {
		folder = DefaultFolderName
	}
	return &Quiz{
		ID:              id,
		OwnerID:         ownerID,
		Title:           title,
		Folder:          folder,
		ShuffleQuestion: DefaultShuffleQuestion,
		ShuffleOptions:  DefaultShuffleOptions,
		TimerSeconds:    DefaultTimerSeconds,
	}
}

// Validate validates the quiz.
func (q *Quiz) Validate() error {
	if q.Title == "" {
		return NewValidationError("title is required")
	}
	if q.TimerSeconds <= 0 {
		return NewValidationError("timer must be positive")
	}
	return nil
}

// Question represents a single four-option question of a quiz.
type Question struct {
	ID          int64
	QuizID      string
	Text        string
	ImageRef    string
	Options     []string
	Correct     int
	Explanation string
}

// Validate checks the question invariants: exactly four options and a
// correct index that is valid for the current option list.
func (q *Question) Validate() error {
	if q.Text == "" {
		return NewValidationError("question text is required")
	}
	if err := ValidateOptions(q.Options); err != nil {
		return err
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return NewValidationError("correct option index is out of range")
	}
	return nil
}

// ValidateOptions checks an option list: exactly four options, none
// containing the storage delimiter.
func ValidateOptions(options []string) error {
	if len(options) != OptionCount {
		return NewValidationError(fmt.Sprintf("question must have exactly %d options", OptionCount))
	}
	for _, opt := range options {
		if strings.Contains(opt, OptionDelimiter) {
			return NewValidationError(fmt.Sprintf("option text cannot contain %q", OptionDelimiter))
		}
	}
	return nil
}

// IsCorrect reports whether the chosen option index is the correct one.
func (q *Question) IsCorrect(chosen int) bool {
	return chosen == q.Correct
}

// Permute reorders the question's options by perm (perm[i] is the old index
// shown at position i) and remaps the correct index so the option text that
// was correct before stays correct after.
func (q *Question) Permute(perm []int) error {
	if len(perm) != len(q.Options) {
		return NewValidationError("permutation length mismatch")
	}
	opts := make([]string, len(q.Options))
	correct := -1
	for i, old := range perm {
		opts[i] = q.Options[old]
		if old == q.Correct {
			correct = i
		}
	}
	if correct < 0 {
		return NewValidationError("permutation is not a bijection")
	}
	q.Options = opts
	q.Correct = correct
	return nil
}

// Folder represents a named quiz folder, unique per owner.
type Folder struct {
	OwnerID int64
	Name    string
}

// IsReserved reports whether the name is the reserved Default folder.
func IsReservedFolder(name string) bool {
	return name == DefaultFolderName
}

// LeaderboardEntry is one participant's tracked result for a quiz.
type LeaderboardEntry struct {
	UserID   int64
	Name     string
	Score    int
	Attempts int
}
