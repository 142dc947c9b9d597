package core

// error_messages.go maps technical errors to short user-facing messages.
//
// Every message carries a code the operator can quote when reading the log
// file. Codes are grouped by category:
//
//	ALM001-ALM009  File errors (not found, invalid CSV, missing header, size)
//	ALM010-ALM019  Record errors (validation, duplicate, not found)
//	ALM020-ALM029  Database errors (unavailable, write failure, references)
//	ALM030-ALM039  Collaborator errors (email, authentication)
//	ALM099         Fallback; check the log for the technical error
//
// Sentinel errors and pgconn SQLSTATE codes are matched first. Plain text
// patterns are the fallback for errors that arrive without a typed cause.

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgFileNotFound = UserMessage{
		Message: "File not found",
		Action:  "Check the path and try again",
		Code:    "ALM001",
	}
	msgInvalidCSV = UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Ensure the file is comma-separated with one record per line",
		Code:    "ALM002",
	}
	msgMissingHeader = UserMessage{
		Message: "Required column is missing from the header",
		Action:  "The header must include email and graduation_year",
		Code:    "ALM003",
	}
	msgFileTooLarge = UserMessage{
		Message: "File exceeds the import size limit",
		Action:  "Split the file into smaller files",
		Code:    "ALM004",
	}
	msgValidation = UserMessage{
		Message: "Input failed validation",
		Action:  "Correct the highlighted field and try again",
		Code:    "ALM010",
	}
	msgDuplicate = UserMessage{
		Message: "An alumnus with this email already exists",
		Action:  "Use a different email or update the existing record",
		Code:    "ALM011",
	}
	msgNotFound = UserMessage{
		Message: "No matching record was found",
		Action:  "Check the ID or email and try again",
		Code:    "ALM012",
	}
	msgDBUnavailable = UserMessage{
		Message: "Unable to connect to database",
		Action:  "Please try again in a few moments",
		Code:    "ALM020",
	}
	msgDBWrite = UserMessage{
		Message: "The database rejected the change",
		Action:  "No changes were saved; check the log for details",
		Code:    "ALM021",
	}
	msgForeignKey = UserMessage{
		Message: "Referenced record does not exist",
		Action:  "Create the referenced alumnus or event first",
		Code:    "ALM022",
	}
	msgTimeout = UserMessage{
		Message: "Operation timed out",
		Action:  "Please try again",
		Code:    "ALM023",
	}
	msgNoEmailConfig = UserMessage{
		Message: "Email is not configured",
		Action:  "Add SMTP settings under Email Configuration",
		Code:    "ALM030",
	}
	msgAuthFailed = UserMessage{
		Message: "Authentication failed",
		Action:  "Check the password and try again",
		Code:    "ALM031",
	}
)

// ErrAuthFailed is returned by role logins on a wrong password.
var ErrAuthFailed = errors.New("authentication failed")

// errorPattern defines a text pattern and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is consulted only after typed matching fails.
// The first matching pattern wins.
var errorPatterns = []errorPattern{
	{pattern: "duplicate key", msg: msgDuplicate},
	{pattern: "violates unique", msg: msgDuplicate},
	{pattern: "violates foreign key", msg: msgForeignKey},
	{pattern: "connection refused", msg: msgDBUnavailable},
	{pattern: "connection reset", msg: msgDBUnavailable},
	{pattern: "timeout", msg: msgTimeout},
	{pattern: "no such file", msg: msgFileNotFound},
}

// defaultMessage is returned when nothing matches (ALM099).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again; details are in the log file",
	Code:    "ALM099",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	msg := MapError(fmt.Errorf("insert: %w", ErrDuplicate))
//	// msg.Code == "ALM011"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ue *UserError
	if errors.As(err, &ue) {
		return ue.User
	}

	var parseErr *csv.ParseError
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, ErrFileNotFound):
		return msgFileNotFound
	case errors.Is(err, ErrMissingHeader):
		return msgMissingHeader
	case errors.Is(err, ErrFileTooLarge):
		return msgFileTooLarge
	case errors.As(err, &parseErr):
		return msgInvalidCSV
	case errors.Is(err, ErrInvalidInput):
		return msgValidation
	case errors.Is(err, ErrDuplicate):
		return msgDuplicate
	case errors.Is(err, ErrNotFound):
		return msgNotFound
	case errors.Is(err, ErrNoEmailConfig):
		return msgNoEmailConfig
	case errors.Is(err, ErrAuthFailed):
		return msgAuthFailed
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	case isConnectionError(err):
		return msgDBUnavailable
	case errors.As(err, &pgErr):
		switch pgErr.Code {
		case pgUniqueViolation:
			return msgDuplicate
		case pgForeignKeyViolation:
			return msgForeignKey
		}
		return msgDBWrite
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
//
// Validation errors show the field-level detail instead of the generic
// message, since the operator needs to know which field to fix.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}

	var ve ValidationError
	if errors.As(err, &ve) {
		return fmt.Sprintf("%s (Code: %s)", ve.Error(), msg.Code)
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ALM099 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with the message shown to the operator.
// The original error is preserved for logging.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
