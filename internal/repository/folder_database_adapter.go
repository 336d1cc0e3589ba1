package repository

import (
	"context"
	"fmt"
	"quizbot/internal/domain"

	"github.com/jmoiron/sqlx"
)

// FolderDatabaseAdapter implements domain.FolderRepository using sqlx.DB
type FolderDatabaseAdapter struct {
	db *sqlx.DB
}

// NewFolderDatabaseAdapter creates a new instance of FolderDatabaseAdapter
func NewFolderDatabaseAdapter(db *sqlx.DB) domain.FolderRepository {
	return &FolderDatabaseAdapter{db: db}
}

// CreateFolder implements domain.FolderRepository
func (a *FolderDatabaseAdapter) CreateFolder(ctx context.Context, ownerID int64, name string) error {
	if _, err := a.db.ExecContext(ctx, `INSERT INTO folders (owner_id, name) VALUES (?, ?)`, ownerID, name); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", name, err)
	}
	return nil
}

// Exists implements domain.FolderRepository
func (a *FolderDatabaseAdapter) Exists(ctx context.Context, ownerID int64, name string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM folders WHERE owner_id = ? AND name = ?`
	if err := a.db.GetContext(ctx, &count, query, ownerID, name); err != nil {
		return false, fmt.Errorf("failed to check folder %s: %w", name, err)
	}
	return count > 0, nil
}

// ListFolders implements domain.FolderRepository
func (a *FolderDatabaseAdapter) ListFolders(ctx context.Context, ownerID int64) ([]string, error) {
	var names []string
	query := `SELECT name FROM folders WHERE owner_id = ? ORDER BY name`
	if err := a.db.SelectContext(ctx, &names, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return names, nil
}

// RenameFolder implements domain.FolderRepository. The folders row and the
// member quizzes' folder column change together.
func (a *FolderDatabaseAdapter) RenameFolder(ctx context.Context, ownerID int64, from, to string) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin rename transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE folders SET name = ? WHERE owner_id = ? AND name = ?`, to, ownerID, from); err != nil {
		return fmt.Errorf("failed to rename folder %s: %w", from, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE quizzes SET folder = ? WHERE owner_id = ? AND folder = ?`, to, ownerID, from); err != nil {
		return fmt.Errorf("failed to move quizzes from folder %s: %w", from, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit folder rename: %w", err)
	}
	return nil
}

// DeleteFolder implements domain.FolderRepository. Member quizzes are
// reassigned to the Default folder before the row is removed.
func (a *FolderDatabaseAdapter) DeleteFolder(ctx context.Context, ownerID int64, name string) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE quizzes SET folder = ? WHERE owner_id = ? AND folder = ?`,
		domain.DefaultFolderName, ownerID, name); err != nil {
		return fmt.Errorf("failed to reassign quizzes of folder %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM folders WHERE owner_id = ? AND name = ?`, ownerID, name); err != nil {
		return fmt.Errorf("failed to delete folder %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit folder delete: %w", err)
	}
	return nil
}

// EnsureDefault implements domain.FolderRepository
func (a *FolderDatabaseAdapter) EnsureDefault(ctx context.Context, ownerID int64) error {
	query := `INSERT OR IGNORE INTO folders (owner_id, name) VALUES (?, ?)`
	if _, err := a.db.ExecContext(ctx, query, ownerID, domain.DefaultFolderName); err != nil {
		return fmt.Errorf("failed to ensure default folder: %w", err)
	}
	return nil
}
