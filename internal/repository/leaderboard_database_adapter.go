package repository

import (
	"context"
	"fmt"
	"quizbot/internal/domain"
	"quizbot/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// LeaderboardDatabaseAdapter implements domain.LeaderboardRepository using
// sqlx.DB. It is the durable mirror of the in-memory boards; the aggregator
// reloads from it at startup.
type LeaderboardDatabaseAdapter struct {
	db *sqlx.DB
}

// NewLeaderboardDatabaseAdapter creates a new instance of LeaderboardDatabaseAdapter
func NewLeaderboardDatabaseAdapter(db *sqlx.DB) domain.LeaderboardRepository {
	return &LeaderboardDatabaseAdapter{db: db}
}

// UpsertEntry implements domain.LeaderboardRepository
func (a *LeaderboardDatabaseAdapter) UpsertEntry(ctx context.Context, quizID string, entry *domain.LeaderboardEntry) error {
	if entry == nil {
		return fmt.Errorf("cannot upsert nil leaderboard entry")
	}

	query := `INSERT INTO leaderboard (quiz_id, user_id, username, score, attempts)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (quiz_id, user_id) DO UPDATE SET username = excluded.username, score = excluded.score, attempts = excluded.attempts`

	_, err := a.db.ExecContext(ctx, query, quizID, entry.UserID, entry.Name, entry.Score, entry.Attempts)
	if err != nil {
		return fmt.Errorf("failed to upsert leaderboard entry for quiz %s: %w", quizID, err)
	}
	return nil
}

// ListEntries implements domain.LeaderboardRepository. Rowid order preserves
// arrival order, which keeps tie-breaking stable across restarts.
func (a *LeaderboardDatabaseAdapter) ListEntries(ctx context.Context, quizID string) ([]*domain.LeaderboardEntry, error) {
	var rows []models.LeaderboardEntry
	query := `SELECT quiz_id, user_id, username, score, attempts
	FROM leaderboard WHERE quiz_id = ? ORDER BY rowid`

	if err := a.db.SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to list leaderboard of quiz %s: %w", quizID, err)
	}

	entries := make([]*domain.LeaderboardEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, &domain.LeaderboardEntry{
			UserID:   rows[i].UserID,
			Name:     rows[i].Username,
			Score:    rows[i].Score,
			Attempts: rows[i].Attempts,
		})
	}
	return entries, nil
}
