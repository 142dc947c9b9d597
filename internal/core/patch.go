package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// PatchField names an updatable alumni column.
type PatchField string

const (
	PatchFirstName      PatchField = ColFirstName
	PatchLastName       PatchField = ColLastName
	PatchEmail          PatchField = ColEmail
	PatchGraduationYear PatchField = ColGraduationYear
	PatchCurrentJob     PatchField = ColCurrentJob
)

// PatchFields lists every updatable field in statement order.
var PatchFields = []PatchField{PatchFirstName, PatchLastName, PatchEmail, PatchGraduationYear, PatchCurrentJob}

// Patch is a partial alumni update. Absent keys leave the column unchanged.
type Patch map[PatchField]string

// Set adds field=value to the patch when value is non-empty after trimming,
// and returns the patch for chaining.
func (p Patch) Set(field PatchField, value string) Patch {
	value = strings.TrimSpace(value)
	if value != "" {
		p[field] = value
	}
	return p
}

// Fields returns the fields present in the patch, sorted.
func (p Patch) Fields() []string {
	out := make([]string, 0, len(p))
	for f := range p {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

// Validate checks every present value with its field rule. An empty patch
// or an unknown field is an error.
func (p Patch) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	for field, value := range p {
		var ok bool
		switch field {
		case PatchFirstName, PatchLastName:
			ok = ValidName(value)
		case PatchEmail:
			ok = ValidEmail(value)
		case PatchGraduationYear:
			ok = ValidGraduationYear(value)
		case PatchCurrentJob:
			ok = ValidJobTitle(value)
		default:
			return ValidationError{Field: string(field), Value: value, Message: "unknown field"}
		}
		if !ok {
			return ValidationError{Field: string(field), Value: value, Message: "invalid value"}
		}
	}
	return nil
}

// args returns the positional parameters for updateAlumniSQL, in
// PatchFields order, with SQL NULL for absent fields.
func (p Patch) args() []any {
	out := make([]any, 0, len(PatchFields))
	for _, field := range PatchFields {
		value, present := p[field]
		if field == PatchGraduationYear {
			var year pgtype.Int4
			if present {
				n, ok := ParseGraduationYear(value)
				year = pgtype.Int4{Int32: int32(n), Valid: ok}
			}
			out = append(out, year)
			continue
		}
		out = append(out, pgtype.Text{String: value, Valid: present})
	}
	return out
}
