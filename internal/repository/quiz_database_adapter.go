package repository

import (
	"context"
	"database/sql"
	"fmt"
	"quizbot/internal/domain"
	"quizbot/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// SaveQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	if err := quiz.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO quizzes (quiz_id, owner_id, title, description, folder, shuffle_q, shuffle_a, timer)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := a.db.ExecContext(ctx, query,
		quiz.ID,
		quiz.OwnerID,
		quiz.Title,
		models.NullableString(quiz.Description),
		quiz.Folder,
		quiz.ShuffleQuestion,
		quiz.ShuffleOptions,
		quiz.TimerSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var row models.Quiz
	query := `SELECT quiz_id, owner_id, title, description, folder, shuffle_q, shuffle_a, timer
	FROM quizzes WHERE quiz_id = ?`

	err := a.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return toDomainQuiz(&row), nil
}

// ListQuizzesByFolder implements domain.QuizRepository
func (a *QuizDatabaseAdapter) ListQuizzesByFolder(ctx context.Context, ownerID int64, folder string) ([]*domain.Quiz, error) {
	var rows []models.Quiz
	query := `SELECT quiz_id, owner_id, title, description, folder, shuffle_q, shuffle_a, timer
	FROM quizzes WHERE owner_id = ? AND folder = ? ORDER BY title COLLATE NOCASE`

	if err := a.db.SelectContext(ctx, &rows, query, ownerID, folder); err != nil {
		return nil, fmt.Errorf("failed to list quizzes in folder %s: %w", folder, err)
	}
	return toDomainQuizzes(rows), nil
}

// ListQuizzesByOwner implements domain.QuizRepository
func (a *QuizDatabaseAdapter) ListQuizzesByOwner(ctx context.Context, ownerID int64) ([]*domain.Quiz, error) {
	var rows []models.Quiz
	query := `SELECT quiz_id, owner_id, title, description, folder, shuffle_q, shuffle_a, timer
	FROM quizzes WHERE owner_id = ? ORDER BY title COLLATE NOCASE`

	if err := a.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list quizzes for owner %d: %w", ownerID, err)
	}
	return toDomainQuizzes(rows), nil
}

// CountQuizzesInFolder implements domain.QuizRepository
func (a *QuizDatabaseAdapter) CountQuizzesInFolder(ctx context.Context, ownerID int64, folder string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM quizzes WHERE owner_id = ? AND folder = ?`
	if err := a.db.GetContext(ctx, &count, query, ownerID, folder); err != nil {
		return 0, fmt.Errorf("failed to count quizzes in folder %s: %w", folder, err)
	}
	return count, nil
}

// UpdateTitle implements domain.QuizRepository
func (a *QuizDatabaseAdapter) UpdateTitle(ctx context.Context, id, title string) error {
	return a.updateField(ctx, id, `UPDATE quizzes SET title = ? WHERE quiz_id = ?`, title)
}

// UpdateDescription implements domain.QuizRepository. An empty description
// clears the stored value.
func (a *QuizDatabaseAdapter) UpdateDescription(ctx context.Context, id, description string) error {
	query := `UPDATE quizzes SET description = ? WHERE quiz_id = ?`
	res, err := a.db.ExecContext(ctx, query, models.NullableString(description), id)
	if err != nil {
		return fmt.Errorf("failed to update quiz %s: %w", id, err)
	}
	return requireRow(res, id)
}

// UpdateTimer implements domain.QuizRepository
func (a *QuizDatabaseAdapter) UpdateTimer(ctx context.Context, id string, seconds int) error {
	return a.updateField(ctx, id, `UPDATE quizzes SET timer = ? WHERE quiz_id = ?`, seconds)
}

// ToggleShuffleQuestions implements domain.QuizRepository
func (a *QuizDatabaseAdapter) ToggleShuffleQuestions(ctx context.Context, id string) error {
	query := `UPDATE quizzes SET shuffle_q = 1 - shuffle_q WHERE quiz_id = ?`
	res, err := a.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to toggle shuffle questions for quiz %s: %w", id, err)
	}
	return requireRow(res, id)
}

// ToggleShuffleOptions implements domain.QuizRepository
func (a *QuizDatabaseAdapter) ToggleShuffleOptions(ctx context.Context, id string) error {
	query := `UPDATE quizzes SET shuffle_a = 1 - shuffle_a WHERE quiz_id = ?`
	res, err := a.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to toggle shuffle options for quiz %s: %w", id, err)
	}
	return requireRow(res, id)
}

// MoveToFolder implements domain.QuizRepository
func (a *QuizDatabaseAdapter) MoveToFolder(ctx context.Context, id, folder string) error {
	return a.updateField(ctx, id, `UPDATE quizzes SET folder = ? WHERE quiz_id = ?`, folder)
}

// DeleteQuiz implements domain.QuizRepository. The quiz's questions are
// removed in the same transaction.
func (a *QuizDatabaseAdapter) DeleteQuiz(ctx context.Context, id string) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete questions of quiz %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM leaderboard WHERE quiz_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete leaderboard of quiz %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM quizzes WHERE quiz_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete quiz %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quiz delete: %w", err)
	}
	return nil
}

func (a *QuizDatabaseAdapter) updateField(ctx context.Context, id, query string, value interface{}) error {
	res, err := a.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("failed to update quiz %s: %w", id, err)
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return nil // driver without RowsAffected support; treat as success
	}
	if n == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("quiz %s not found", id))
	}
	return nil
}

func toDomainQuiz(row *models.Quiz) *domain.Quiz {
	return &domain.Quiz{
		ID:              row.QuizID,
		OwnerID:         row.OwnerID,
		Title:           row.Title,
		Description:     row.Description.String,
		Folder:          row.Folder,
		ShuffleQuestion: row.ShuffleQ,
		ShuffleOptions:  row.ShuffleA,
		TimerSeconds:    row.Timer,
	}
}

func toDomainQuizzes(rows []models.Quiz) []*domain.Quiz {
	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toDomainQuiz(&rows[i]))
	}
	return quizzes
}
