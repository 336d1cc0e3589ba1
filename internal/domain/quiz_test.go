package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuizDefaults(t *testing.T) {
	quiz := NewQuiz("q1", 7, "Capitals", "")

	assert.Equal(t, DefaultFolderName, quiz.Folder)
	assert.True(t, quiz.ShuffleQuestion)
	assert.True(t, quiz.ShuffleOptions)
	assert.Equal(t, DefaultTimerSeconds, quiz.TimerSeconds)
}

func TestQuizValidate(t *testing.T) {
	quiz := NewQuiz("q1", 7, "", "")
	err := quiz.Validate()
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeValidation))

	quiz.Title = "Capitals"
	assert.NoError(t, quiz.Validate())
}

func TestQuestionValidate(t *testing.T) {
	q := &Question{
		Text:    "Capital of France?",
		Options: []string{"Paris", "Lyon", "Nice", "Lille"},
		Correct: 0,
	}
	assert.NoError(t, q.Validate())

	q.Options = q.Options[:3]
	assert.Error(t, q.Validate())

	q.Options = []string{"Paris", "Lyon", "Nice", "Lille"}
	q.Correct = 4
	assert.Error(t, q.Validate())
}

func TestValidateOptionsRejectsDelimiter(t *testing.T) {
	// "6 || 7" would decode as two options after a storage round trip.
	err := ValidateOptions([]string{"6 || 7", "8", "9", "10"})
	assert.Error(t, err)
	assert.True(t, IsCode(err, CodeValidation))

	q := &Question{
		Text:    "What is 3 + 4?",
		Options: []string{"6 || 7", "8", "9", "10"},
		Correct: 1,
	}
	assert.Error(t, q.Validate())

	assert.NoError(t, ValidateOptions([]string{"6", "7", "8", "9"}))
}

func TestQuestionPermuteRemapsCorrect(t *testing.T) {
	q := &Question{
		Text:    "Capital of France?",
		Options: []string{"Paris", "Lyon", "Nice", "Lille"},
		Correct: 0,
	}

	require.NoError(t, q.Permute([]int{2, 0, 3, 1}))

	assert.Equal(t, []string{"Nice", "Paris", "Lille", "Lyon"}, q.Options)
	assert.Equal(t, 1, q.Correct)
	assert.Equal(t, "Paris", q.Options[q.Correct])
}

func TestQuestionPermuteRejectsBadInput(t *testing.T) {
	q := &Question{
		Options: []string{"a", "b", "c", "d"},
		Correct: 2,
	}

	assert.Error(t, q.Permute([]int{0, 1}))
	// Not a bijection: index 2 never appears, so the correct option is lost.
	assert.Error(t, q.Permute([]int{0, 1, 1, 3}))
}

func TestIsReservedFolder(t *testing.T) {
	assert.True(t, IsReservedFolder("Default"))
	assert.False(t, IsReservedFolder("default"))
	assert.False(t, IsReservedFolder("Archive"))
}
