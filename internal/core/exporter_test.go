package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	records, err := NewCSVReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

// ============================================================================
// Export Tests
// ============================================================================

func TestExport_NoRecords(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")

	res, err := NewExporter(newMemStore()).Export(context.Background(), out)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if res.Rows != 0 {
		t.Errorf("Rows = %d, want 0", res.Rows)
	}

	if diff := cmp.Diff([][]string{alumniColumns}, readCSV(t, out)); diff != "" {
		t.Errorf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestExport_WritesRows(t *testing.T) {
	store := newMemStore(
		AlumniRecord{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", GraduationYear: 1990, CurrentJob: "Analyst, Senior"},
		AlumniRecord{Email: "grace@example.com", FirstName: "Grace", LastName: "Hopper", GraduationYear: 1934},
	)
	out := filepath.Join(t.TempDir(), "out.csv")

	res, err := NewExporter(store).Export(context.Background(), out)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if res.Rows != 2 {
		t.Errorf("Rows = %d, want 2", res.Rows)
	}
	if diff := cmp.Diff(alumniColumns, res.Columns); diff != "" {
		t.Errorf("Columns mismatch (-want +got):\n%s", diff)
	}

	want := [][]string{
		alumniColumns,
		{"1", "Ada", "Lovelace", "ada@example.com", "1990", "Analyst, Senior"},
		{"2", "Grace", "Hopper", "grace@example.com", "1934", ""},
	}
	if diff := cmp.Diff(want, readCSV(t, out)); diff != "" {
		t.Errorf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestExport_ScanFailureLeavesPartialFile(t *testing.T) {
	store := newMemStore(
		AlumniRecord{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", GraduationYear: 1990},
		AlumniRecord{Email: "grace@example.com", FirstName: "Grace", LastName: "Hopper", GraduationYear: 1934},
	)
	store.scanErr = errors.New("server closed the connection")
	out := filepath.Join(t.TempDir(), "out.csv")

	_, err := NewExporter(store).Export(context.Background(), out)
	if !errors.Is(err, store.scanErr) {
		t.Fatalf("Export() error = %v, want %v", err, store.scanErr)
	}

	got := readCSV(t, out)
	if len(got) != 2 {
		t.Errorf("partial file has %d lines, want header plus one row", len(got))
	}
}

func TestExport_UnwritablePath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing-dir", "out.csv")

	if _, err := NewExporter(newMemStore()).Export(context.Background(), out); err == nil {
		t.Fatal("Export() should fail when the directory does not exist")
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "Ada", "Ada"},
		{"bytes", []byte("raw"), "raw"},
		{"int32", int32(1990), "1990"},
		{"int64", int64(7), "7"},
		{"bool", true, "true"},
		{"timestamp", ts, "2024-03-15T10:30:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.in); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
