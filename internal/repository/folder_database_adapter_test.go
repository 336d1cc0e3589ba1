package repository

import (
	"context"
	"regexp"
	"testing"

	"quizbot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderExists(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewFolderDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM folders WHERE owner_id = ? AND name = ?`)).
		WithArgs(int64(1), "Archive").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), 1, "Archive")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRenameFolderMovesMemberQuizzes(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewFolderDatabaseAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE folders SET name = ? WHERE owner_id = ? AND name = ?`)).
		WithArgs("History", int64(1), "Archive").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE quizzes SET folder = ? WHERE owner_id = ? AND folder = ?`)).
		WithArgs("History", int64(1), "Archive").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.RenameFolder(context.Background(), 1, "Archive", "History")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFolderReassignsQuizzesToDefault(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewFolderDatabaseAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE quizzes SET folder = ? WHERE owner_id = ? AND folder = ?`)).
		WithArgs(domain.DefaultFolderName, int64(1), "Archive").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM folders WHERE owner_id = ? AND name = ?`)).
		WithArgs(int64(1), "Archive").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteFolder(context.Background(), 1, "Archive")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFolderRollsBackWhenReassignFails(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewFolderDatabaseAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE quizzes SET folder = ? WHERE owner_id = ? AND folder = ?`)).
		WithArgs(domain.DefaultFolderName, int64(1), "Archive").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.DeleteFolder(context.Background(), 1, "Archive")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureDefaultIsIdempotent(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewFolderDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT OR IGNORE INTO folders (owner_id, name) VALUES (?, ?)`)).
		WithArgs(int64(1), domain.DefaultFolderName).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.EnsureDefault(context.Background(), 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
