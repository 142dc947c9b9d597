package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:     "file not found",
			err:      fmt.Errorf("open x.csv: %w", ErrFileNotFound),
			wantCode: "ALM001",
		},
		{
			name:     "csv parse error",
			err:      fmt.Errorf("line 3: %w", &csv.ParseError{Line: 3, Err: csv.ErrFieldCount}),
			wantCode: "ALM002",
		},
		{
			name:     "missing header",
			err:      fmt.Errorf("%w: email", ErrMissingHeader),
			wantCode: "ALM003",
		},
		{
			name:     "file too large",
			err:      fmt.Errorf("%w: 10 bytes", ErrFileTooLarge),
			wantCode: "ALM004",
		},
		{
			name:     "validation error",
			err:      ValidationError{Field: "email", Message: "invalid email format"},
			wantCode: "ALM010",
		},
		{
			name:     "duplicate sentinel",
			err:      fmt.Errorf("insert: %w", ErrDuplicate),
			wantCode: "ALM011",
		},
		{
			name:     "unique violation sqlstate",
			err:      &pgconn.PgError{Code: "23505", Message: "duplicate key value"},
			wantCode: "ALM011",
		},
		{
			name:     "not found",
			err:      classifyPgError(pgx.ErrNoRows),
			wantCode: "ALM012",
		},
		{
			name:     "connection class sqlstate",
			err:      &pgconn.PgError{Code: "08006"},
			wantCode: "ALM020",
		},
		{
			name:     "other database error",
			err:      &pgconn.PgError{Code: "22001", Message: "value too long"},
			wantCode: "ALM021",
		},
		{
			name:     "foreign key sqlstate",
			err:      fmt.Errorf("mark attendance: %w", &pgconn.PgError{Code: "23503"}),
			wantCode: "ALM022",
		},
		{
			name:     "deadline exceeded",
			err:      fmt.Errorf("import: %w", context.DeadlineExceeded),
			wantCode: "ALM023",
		},
		{
			name:     "email not configured",
			err:      ErrNoEmailConfig,
			wantCode: "ALM030",
		},
		{
			name:     "authentication failed",
			err:      ErrAuthFailed,
			wantCode: "ALM031",
		},
		{
			name:     "text pattern fallback",
			err:      errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			wantCode: "ALM020",
		},
		{
			name:     "unknown error returns default",
			err:      errors.New("some random internal error"),
			wantCode: "ALM099",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	t.Run("generic message", func(t *testing.T) {
		got := FormatUserError(fmt.Errorf("insert: %w", ErrDuplicate))
		want := "An alumnus with this email already exists (Code: ALM011). Use a different email or update the existing record"
		if got != want {
			t.Errorf("FormatUserError() = %q, want %q", got, want)
		}
	})

	t.Run("validation detail", func(t *testing.T) {
		got := FormatUserError(ValidationError{Field: "email", Value: "a@b", Message: "invalid email format"})
		want := "email: invalid email format (Code: ALM010)"
		if got != want {
			t.Errorf("FormatUserError() = %q, want %q", got, want)
		}
	})

	t.Run("nil", func(t *testing.T) {
		if got := FormatUserError(nil); got != "" {
			t.Errorf("FormatUserError(nil) = %q, want empty", got)
		}
	})
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", ErrNotFound, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := fmt.Errorf("delete alumnus 7: %w", ErrNotFound)
		userErr := NewUserError(techErr)

		if userErr.Error() != "No matching record was found" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if !errors.Is(userErr, ErrNotFound) {
			t.Error("Unwrap() should expose the original error")
		}
		if MapError(userErr).Code != "ALM012" {
			t.Errorf("MapError(UserError) code = %q, want ALM012", MapError(userErr).Code)
		}
	})
}

func TestClassifyPgError(t *testing.T) {
	dup := classifyPgError(&pgconn.PgError{Code: pgUniqueViolation})
	if !errors.Is(dup, ErrDuplicate) {
		t.Errorf("classifyPgError(23505) = %v, want ErrDuplicate", dup)
	}
	var pgErr *pgconn.PgError
	if !errors.As(dup, &pgErr) {
		t.Error("classifyPgError should keep the driver error in the chain")
	}

	if classifyPgError(nil) != nil {
		t.Error("classifyPgError(nil) should be nil")
	}
}
