package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ============================================================================
// Field check Tests
// ============================================================================

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a.b@c.org", true},
		{"ada@example.com", true},
		{"first-last@mail.example.co.uk", true},
		{"user_1@domain.io", true},
		{"josé@example.com", true},
		{"müller@uni.de", true},
		{"ada@例え.jp", true},
		{"josé..x@example.com", false},
		{"a@b", false},
		{"@b.com", false},
		{"a@.com", false},
		{"a..b@c.com", false},
		{"a@b.c", false},
		{"a@b.info", false},
		{"a b@c.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ValidEmail(tt.in); got != tt.want {
				t.Errorf("ValidEmail(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidGraduationYear(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1899", false},
		{"1900", true},
		{"1999", true},
		{"2100", true},
		{"2101", false},
		{"20a0", false},
		{"", false},
		{" 2000", false},
		{"-2000", false},
		{"+2000", false},
		{"02000", true},
		{"١٩٩٩", true},
		{"１９９９", true},
		{"२०००", true},
		{"١٨٩٩", false},
		{"²⁰⁰⁰", false},
		{"19٩٩", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ValidGraduationYear(tt.in); got != tt.want {
				t.Errorf("ValidGraduationYear(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseGraduationYear(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"1999", 1999, true},
		{"١٩٩٩", 1999, true},
		{"１９８４", 1984, true},
		{"२०२०", 2020, true},
		{"𝟐𝟎𝟎𝟎", 2000, true},
		{"99999999999999999999", 0, false},
		{"2101", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseGraduationYear(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseGraduationYear(%q) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Ada", true},
		{"José", true},
		{"Zoë", true},
		{"", false},
		{"Ada Lovelace", false},
		{"O'Brien", false},
		{"R2D2", false},
	}

	for _, tt := range tests {
		if got := ValidName(tt.in); got != tt.want {
			t.Errorf("ValidName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidJobTitle(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Software Engineer", true},
		{"VP, Sales (EMEA) - Interim.", true},
		{"", false},
		{"Engineer 2", false},
		{"C++ Developer", false},
	}

	for _, tt := range tests {
		if got := ValidJobTitle(tt.in); got != tt.want {
			t.Errorf("ValidJobTitle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidEventAndSkillNames(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Reunion 2024", true},
		{"Go (advanced), part-2.", true},
		{"", false},
		{"Gala & Dinner", false},
		{"C#", false},
	}

	for _, tt := range tests {
		if got := ValidEventName(tt.in); got != tt.want {
			t.Errorf("ValidEventName(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got := ValidSkillName(tt.in); got != tt.want {
			t.Errorf("ValidSkillName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidEventDescription(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Annual dinner", true},
		{"  x  ", true},
		{"", false},
		{" \t\n", false},
	}

	for _, tt := range tests {
		if got := ValidEventDescription(tt.in); got != tt.want {
			t.Errorf("ValidEventDescription(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// ============================================================================
// Struct validation Tests
// ============================================================================

func validRecord() AlumniRecord {
	return AlumniRecord{
		Email:          "ada@example.com",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		GraduationYear: 1990,
		CurrentJob:     "Analyst",
	}
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*AlumniRecord)
		wantField string
	}{
		{"valid", func(*AlumniRecord) {}, ""},
		{"empty job allowed", func(r *AlumniRecord) { r.CurrentJob = "" }, ""},
		{"bad email", func(r *AlumniRecord) { r.Email = "a@b" }, "email"},
		{"missing first name", func(r *AlumniRecord) { r.FirstName = "" }, "first_name"},
		{"digit in last name", func(r *AlumniRecord) { r.LastName = "L0velace" }, "last_name"},
		{"year too early", func(r *AlumniRecord) { r.GraduationYear = 1899 }, "graduation_year"},
		{"year too late", func(r *AlumniRecord) { r.GraduationYear = 2101 }, "graduation_year"},
		{"bad job title", func(r *AlumniRecord) { r.CurrentJob = "Dev #1" }, "current_job"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)

			err := ValidateRecord(rec)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateRecord() error = %v, want nil", err)
				}
				return
			}

			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("ValidateRecord() error = %v, want ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", ve.Field, tt.wantField)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Error("ValidationError should match ErrInvalidInput")
			}
		})
	}
}

func TestValidateRecordAll_ReportsEveryField(t *testing.T) {
	rec := AlumniRecord{Email: "bad", FirstName: "A1", LastName: "", GraduationYear: 3000}

	var fields []string
	for _, ve := range ValidateRecordAll(rec) {
		fields = append(fields, ve.Field)
	}

	want := []string{"email", "first_name", "last_name", "graduation_year"}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("failed fields mismatch (-want +got):\n%s", diff)
	}
}
