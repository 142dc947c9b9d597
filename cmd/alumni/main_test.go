package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/alumni/internal/core"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://alumni:pw@127.0.0.1:1/alumni_test")
	t.Setenv("LOG_FILE", "-")

	var out bytes.Buffer
	err := (&app{}).execute(context.Background(), args, &out, &out)
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "alumni dev (schema 1)") {
		t.Errorf("output = %q", out)
	}
}

func TestResetCmd_RequiresConfirmation(t *testing.T) {
	_, err := execute(t, "reset")
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("reset error = %v, want a validation error", err)
	}
	if got := core.MapError(err).Code; got != "ALM010" {
		t.Errorf("code = %q, want ALM010", got)
	}
}

func TestMigrateCmd_RejectsUnknownDirection(t *testing.T) {
	if _, err := execute(t, "migrate", "sideways"); err == nil {
		t.Fatal("migrate sideways should fail")
	}
}

func TestImportCmd_RequiresFile(t *testing.T) {
	if _, err := execute(t, "import"); err == nil {
		t.Fatal("import without a file should fail")
	}
}

func TestMissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")
	t.Setenv("LOG_FILE", "-")

	var out bytes.Buffer
	err := (&app{}).execute(context.Background(), []string{"report"}, &out, &out)
	if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("error = %v, want missing DATABASE_URL", err)
	}
	// No catalog entry covers configuration errors, so the detail is printed.
	if !strings.Contains(out.String(), "ALM099") || !strings.Contains(out.String(), "DATABASE_URL") {
		t.Errorf("output = %q, want the fallback message and the detail", out.String())
	}
}

func TestFailedCommandReleasesLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "alumni.log")
	t.Setenv("DATABASE_URL", "postgres://alumni:pw@127.0.0.1:1/alumni_test")
	t.Setenv("DB_CONNECT_TIMEOUT", "2s")
	t.Setenv("LOG_FILE", logFile)

	a := &app{}
	var out bytes.Buffer
	if err := a.execute(context.Background(), []string{"report"}, &out, &out); err == nil {
		t.Fatal("report against an unreachable database should fail")
	}
	if a.logOut != nil || a.pool != nil {
		t.Error("log file and pool should be released after a failed command")
	}

	logged, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(logged), "command failed") {
		t.Errorf("log file missing the failure record:\n%s", logged)
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		want      string
		wantLines int
	}{
		{"catalog entry", fmt.Errorf("insert: %w", core.ErrDuplicate), "ALM011", 1},
		{"validation", core.ValidationError{Field: "confirm", Message: "pass --confirm RESET"}, "confirm: pass --confirm RESET (Code: ALM010)", 1},
		{"no catalog entry", errors.New("something odd"), "ALM099", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			reportError(&out, tt.err)
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
			if got := strings.Count(out.String(), "\n"); got != tt.wantLines {
				t.Errorf("lines = %d, want %d", got, tt.wantLines)
			}
		})
	}
}

func TestPrintImport(t *testing.T) {
	var out bytes.Buffer
	printImport(&out, core.ImportResult{
		File:          "a.csv",
		Inserted:      3,
		Skipped:       []core.SkippedRow{{Line: 4, Email: "x@", Reason: "email: invalid email format"}},
		FailedRowsCSV: "failed/a - failed.csv",
	})

	want := "Imported 3, skipped 1 (a.csv)\n" +
		"  line 4\tx@\temail: invalid email format\n" +
		"Skipped rows written to failed/a - failed.csv\n"
	if out.String() != want {
		t.Errorf("printImport() = %q, want %q", out.String(), want)
	}
}
