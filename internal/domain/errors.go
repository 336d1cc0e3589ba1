package domain

import "fmt"

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	CodeNotFound ErrorCode = "NOT_FOUND"

	// Authoring errors
	CodeNoActiveTarget ErrorCode = "NO_ACTIVE_TARGET"
	CodeDuplicateName  ErrorCode = "DUPLICATE_NAME"
	CodeReservedFolder ErrorCode = "RESERVED_FOLDER"

	// Play errors
	CodeNoQuestions    ErrorCode = "NO_QUESTIONS"
	CodeSessionExpired ErrorCode = "SESSION_EXPIRED"

	// Validation
	CodeValidation ErrorCode = "VALIDATION_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}

// Helper constructors for the core taxonomy.

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewValidationError(message string) *DomainError {
	return NewError(CodeValidation, message, nil)
}

// NewNoActiveTargetError signals an authoring action with no quiz or question
// selected in the conversation scratch data.
func NewNoActiveTargetError(what string) *DomainError {
	return NewError(CodeNoActiveTarget, fmt.Sprintf("no active %s selected", what), nil)
}

func NewDuplicateNameError(name string) *DomainError {
	return NewError(CodeDuplicateName, fmt.Sprintf("folder %q already exists", name), nil)
}

func NewReservedFolderError() *DomainError {
	return NewError(CodeReservedFolder, fmt.Sprintf("folder %q is reserved", DefaultFolderName), nil)
}

func NewNoQuestionsError(quizID string) *DomainError {
	return NewError(CodeNoQuestions, fmt.Sprintf("quiz %s has no questions", quizID), nil)
}

func NewSessionExpiredError() *DomainError {
	return NewError(CodeSessionExpired, "quiz session expired", nil)
}
