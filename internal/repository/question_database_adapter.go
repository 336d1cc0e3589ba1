package repository

import (
	"context"
	"database/sql"
	"fmt"
	"quizbot/internal/domain"
	"quizbot/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// SaveQuestion implements domain.QuestionRepository. The assigned row ID is
// written back into q.ID.
func (a *QuestionDatabaseAdapter) SaveQuestion(ctx context.Context, q *domain.Question) error {
	if q == nil {
		return fmt.Errorf("cannot save nil question")
	}
	if err := q.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO questions (quiz_id, question, image_file_id, options, correct, explanation)
	VALUES (?, ?, ?, ?, ?, ?)`

	res, err := a.db.ExecContext(ctx, query,
		q.QuizID,
		q.Text,
		models.NullableString(q.ImageRef),
		models.JoinOptions(q.Options),
		q.Correct,
		models.NullableString(q.Explanation),
	)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	id, err := res.LastInsertId()
	if err == nil {
		q.ID = id
	}
	return nil
}

// GetQuestionByID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	var row models.Question
	query := `SELECT id, quiz_id, question, image_file_id, options, correct, explanation
	FROM questions WHERE id = ?`

	err := a.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}
	return toDomainQuestion(&row), nil
}

// ListQuestions implements domain.QuestionRepository. Questions are ordered
// by text, matching the authoring list view.
func (a *QuestionDatabaseAdapter) ListQuestions(ctx context.Context, quizID string) ([]*domain.Question, error) {
	var rows []models.Question
	query := `SELECT id, quiz_id, question, image_file_id, options, correct, explanation
	FROM questions WHERE quiz_id = ? ORDER BY question COLLATE NOCASE`

	if err := a.db.SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to list questions of quiz %s: %w", quizID, err)
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}

// CountQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CountQuestions(ctx context.Context, quizID string) (int, error) {
	var count int
	if err := a.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM questions WHERE quiz_id = ?`, quizID); err != nil {
		return 0, fmt.Errorf("failed to count questions of quiz %s: %w", quizID, err)
	}
	return count, nil
}

// UpdateText implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) UpdateText(ctx context.Context, id int64, text string) error {
	return a.exec(ctx, id, `UPDATE questions SET question = ? WHERE id = ?`, text)
}

// UpdateImage implements domain.QuestionRepository. An empty imageRef removes
// the image.
func (a *QuestionDatabaseAdapter) UpdateImage(ctx context.Context, id int64, imageRef string) error {
	return a.exec(ctx, id, `UPDATE questions SET image_file_id = ? WHERE id = ?`, models.NullableString(imageRef))
}

// UpdateOptions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) UpdateOptions(ctx context.Context, id int64, options []string) error {
	if err := domain.ValidateOptions(options); err != nil {
		return err
	}
	return a.exec(ctx, id, `UPDATE questions SET options = ? WHERE id = ?`, models.JoinOptions(options))
}

// UpdateCorrect implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) UpdateCorrect(ctx context.Context, id int64, correct int) error {
	if correct < 0 || correct >= domain.OptionCount {
		return domain.NewValidationError("correct option index is out of range")
	}
	return a.exec(ctx, id, `UPDATE questions SET correct = ? WHERE id = ?`, correct)
}

// UpdateExplanation implements domain.QuestionRepository. An empty explanation
// removes the stored one.
func (a *QuestionDatabaseAdapter) UpdateExplanation(ctx context.Context, id int64, explanation string) error {
	return a.exec(ctx, id, `UPDATE questions SET explanation = ? WHERE id = ?`, models.NullableString(explanation))
}

// DeleteQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id int64) error {
	if _, err := a.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	return nil
}

func (a *QuestionDatabaseAdapter) exec(ctx context.Context, id int64, query string, value interface{}) error {
	res, err := a.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("failed to update question %d: %w", id, err)
	}
	if n, rerr := res.RowsAffected(); rerr == nil && n == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("question %d not found", id))
	}
	return nil
}

func toDomainQuestion(row *models.Question) *domain.Question {
	return &domain.Question{
		ID:          row.ID,
		QuizID:      row.QuizID,
		Text:        row.Question,
		ImageRef:    row.ImageFileID.String,
		Options:     models.SplitOptions(row.Options),
		Correct:     row.Correct,
		Explanation: row.Explanation.String,
	}
}
