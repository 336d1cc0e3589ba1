package models

import (
	"database/sql"
	"strings"

	"quizbot/internal/domain"
)

// OptionDelimiter joins the four option strings into the single options
// column, matching the original storage format. Option text containing the
// delimiter never reaches this codec: domain.ValidateOptions rejects it.
const OptionDelimiter = domain.OptionDelimiter

// Quiz is the quizzes table row.
type Quiz struct {
	QuizID      string         `db:"quiz_id"`
	OwnerID     int64          `db:"owner_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Folder      string         `db:"folder"`
	ShuffleQ    bool           `db:"shuffle_q"`
	ShuffleA    bool           `db:"shuffle_a"`
	Timer       int            `db:"timer"`
}

// Question is the questions table row.
type Question struct {
	ID          int64          `db:"id"`
	QuizID      string         `db:"quiz_id"`
	Question    string         `db:"question"`
	ImageFileID sql.NullString `db:"image_file_id"`
	Options     string         `db:"options"`
	Correct     int            `db:"correct"`
	Explanation sql.NullString `db:"explanation"`
}

// Folder is the folders table row.
type Folder struct {
	OwnerID int64  `db:"owner_id"`
	Name    string `db:"name"`
}

// LeaderboardEntry is the leaderboard table row (durable mirror).
type LeaderboardEntry struct {
	QuizID   string `db:"quiz_id"`
	UserID   int64  `db:"user_id"`
	Username string `db:"username"`
	Score    int    `db:"score"`
	Attempts int    `db:"attempts"`
}

// JoinOptions encodes an option list into the options column value.
func JoinOptions(options []string) string {
	return strings.Join(options, OptionDelimiter)
}

// SplitOptions decodes the options column value.
func SplitOptions(encoded string) []string {
	return strings.Split(encoded, OptionDelimiter)
}

// NullableString maps an empty string to SQL NULL.
func NullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
