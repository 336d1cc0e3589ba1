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

func TestUpsertEntry(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewLeaderboardDatabaseAdapter(db)

	entry := &domain.LeaderboardEntry{UserID: 9, Name: "Alice", Score: 3, Attempts: 2}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO leaderboard`)).
		WithArgs("quiz-1", entry.UserID, entry.Name, entry.Score, entry.Attempts).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.UpsertEntry(context.Background(), "quiz-1", entry)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertEntryNil(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewLeaderboardDatabaseAdapter(db)

	err := repo.UpsertEntry(context.Background(), "quiz-1", nil)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEntriesPreservesArrivalOrder(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewLeaderboardDatabaseAdapter(db)

	rows := sqlmock.NewRows([]string{"quiz_id", "user_id", "username", "score", "attempts"}).
		AddRow("quiz-1", int64(9), "Alice", 3, 1).
		AddRow("quiz-1", int64(10), "Bob", 3, 2)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT quiz_id, user_id, username, score, attempts`)).
		WithArgs("quiz-1").
		WillReturnRows(rows)

	entries, err := repo.ListEntries(context.Background(), "quiz-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Alice", entries[0].Name)
	assert.Equal(t, "Bob", entries[1].Name)
	assert.Equal(t, 2, entries[1].Attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEntriesEmpty(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewLeaderboardDatabaseAdapter(db)

	rows := sqlmock.NewRows([]string{"quiz_id", "user_id", "username", "score", "attempts"})
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT quiz_id, user_id, username, score, attempts`)).
		WithArgs("quiz-1").
		WillReturnRows(rows)

	entries, err := repo.ListEntries(context.Background(), "quiz-1")
	assert.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}
