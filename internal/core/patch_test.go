package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgtype"
)

func TestPatch_Set(t *testing.T) {
	p := Patch{}
	p.Set(PatchFirstName, "  Ada ").Set(PatchLastName, "").Set(PatchCurrentJob, "   ")

	want := Patch{PatchFirstName: "Ada"}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Patch mismatch (-want +got):\n%s", diff)
	}
}

func TestPatch_Validate(t *testing.T) {
	tests := []struct {
		name      string
		patch     Patch
		wantErr   bool
		wantField string
	}{
		{"empty patch", Patch{}, true, ""},
		{"valid single field", Patch{PatchCurrentJob: "Engineer"}, false, ""},
		{"valid all fields", Patch{
			PatchFirstName:      "Ada",
			PatchLastName:       "Lovelace",
			PatchEmail:          "ada@example.com",
			PatchGraduationYear: "1990",
			PatchCurrentJob:     "Analyst",
		}, false, ""},
		{"bad email", Patch{PatchEmail: "a@b"}, true, "email"},
		{"bad year", Patch{PatchGraduationYear: "1899"}, true, "graduation_year"},
		{"bad name", Patch{PatchFirstName: "Ada1"}, true, "first_name"},
		{"unknown field", Patch{PatchField("id"): "7"}, true, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() error = %v, want ErrInvalidInput", err)
			}
			var ve ValidationError
			if tt.wantField != "" && (!errors.As(err, &ve) || ve.Field != tt.wantField) {
				t.Errorf("Validate() field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestPatch_Args(t *testing.T) {
	p := Patch{PatchLastName: "Byron", PatchGraduationYear: "1990"}

	want := []any{
		pgtype.Text{},
		pgtype.Text{String: "Byron", Valid: true},
		pgtype.Text{},
		pgtype.Int4{Int32: 1990, Valid: true},
		pgtype.Text{},
	}
	if diff := cmp.Diff(want, p.args()); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestPatch_ArgsNonASCIIYear(t *testing.T) {
	p := Patch{PatchGraduationYear: "١٩٩٠"}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	got := p.args()[3]
	if diff := cmp.Diff(pgtype.Int4{Int32: 1990, Valid: true}, got); diff != "" {
		t.Errorf("year arg mismatch (-want +got):\n%s", diff)
	}
}

func TestPatch_Fields(t *testing.T) {
	p := Patch{PatchEmail: "a@b.com", PatchCurrentJob: "Dev"}
	want := []string{"current_job", "email"}
	if diff := cmp.Diff(want, p.Fields()); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
}
