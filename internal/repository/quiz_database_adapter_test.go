package repository

import (
	"context"
	"regexp"
	"testing"

	"quizbot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a new sqlx.DB instance and sqlmock for adapter testing.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func sampleQuiz() *domain.Quiz {
	return &domain.Quiz{
		ID:              "01JX0000000000000000000000",
		OwnerID:         1,
		Title:           "Capitals",
		Description:     "European capitals",
		Folder:          domain.DefaultFolderName,
		ShuffleQuestion: true,
		ShuffleOptions:  true,
		TimerSeconds:    15,
	}
}

func TestSaveQuiz(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)
	quiz := sampleQuiz()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO quizzes`)).
		WithArgs(quiz.ID, quiz.OwnerID, quiz.Title, sqlmock.AnyArg(), quiz.Folder, true, true, 15).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SaveQuiz(context.Background(), quiz)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveQuizRejectsInvalid(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	quiz := sampleQuiz()
	quiz.Title = ""

	err := repo.SaveQuiz(context.Background(), quiz)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuizByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)
	quiz := sampleQuiz()

	rows := sqlmock.NewRows([]string{"quiz_id", "owner_id", "title", "description", "folder", "shuffle_q", "shuffle_a", "timer"}).
		AddRow(quiz.ID, quiz.OwnerID, quiz.Title, quiz.Description, quiz.Folder, quiz.ShuffleQuestion, quiz.ShuffleOptions, quiz.TimerSeconds)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT quiz_id, owner_id, title, description, folder, shuffle_q, shuffle_a, timer`)).
		WithArgs(quiz.ID).
		WillReturnRows(rows)

	result, err := repo.GetQuizByID(context.Background(), quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, quiz.Title, result.Title)
	assert.Equal(t, quiz.Description, result.Description)
	assert.True(t, result.ShuffleQuestion)
	assert.Equal(t, 15, result.TimerSeconds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuizByIDNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	rows := sqlmock.NewRows([]string{"quiz_id", "owner_id", "title", "description", "folder", "shuffle_q", "shuffle_a", "timer"})
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT quiz_id, owner_id, title, description, folder, shuffle_q, shuffle_a, timer`)).
		WithArgs("missing").
		WillReturnRows(rows)

	result, err := repo.GetQuizByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleShuffleQuestions(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE quizzes SET shuffle_q = 1 - shuffle_q WHERE quiz_id = ?`)).
		WithArgs("quiz-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ToggleShuffleQuestions(context.Background(), "quiz-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTitleUnknownQuiz(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE quizzes SET title = ? WHERE quiz_id = ?`)).
		WithArgs("New Title", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateTitle(context.Background(), "missing", "New Title")
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDescriptionClearsWithEmptyString(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE quizzes SET description = ? WHERE quiz_id = ?`)).
		WithArgs(sqlmock.AnyArg(), "quiz-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateDescription(context.Background(), "quiz-1", "")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteQuizRemovesDependentsInOneTransaction(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM questions WHERE quiz_id = ?`)).
		WithArgs("quiz-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM leaderboard WHERE quiz_id = ?`)).
		WithArgs("quiz-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM quizzes WHERE quiz_id = ?`)).
		WithArgs("quiz-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteQuiz(context.Background(), "quiz-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteQuizRollsBackOnFailure(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM questions WHERE quiz_id = ?`)).
		WithArgs("quiz-1").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.DeleteQuiz(context.Background(), "quiz-1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountQuizzesInFolder(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM quizzes WHERE owner_id = ? AND folder = ?`)).
		WithArgs(int64(1), "Default").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountQuizzesInFolder(context.Background(), 1, "Default")
	assert.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
