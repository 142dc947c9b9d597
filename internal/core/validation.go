package core

// validation.go holds the syntactic field checks used by interactive forms
// and by the batch importer.
//
// The check functions are pure and return a bool; callers decide whether a
// failure re-prompts (menu) or skips the row (import). ValidateRecord runs
// the same checks over a whole AlumniRecord through validator/v10 custom tags.

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	MinGraduationYear = 1900
	MaxGraduationYear = 2100
)

// word is a Unicode word character: any letter, number or underscore.
const word = `[\p{L}\p{N}_]`

var (
	emailPattern    = regexp.MustCompile(`^` + word + `+([.-]?` + word + `+)*@` + word + `+([.-]?` + word + `+)*(\.` + word + `{2,3})+$`)
	jobTitlePattern = regexp.MustCompile(`^[A-Za-z .,()-]+$`)
	labelPattern    = regexp.MustCompile(`^[A-Za-z0-9 .,()-]+$`)
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field/column name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Is makes every ValidationError match ErrInvalidInput.
func (e ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

/* ---- Field checks ---- */

// ValidName reports whether every character of s is a letter.
// The empty string is rejected.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ValidEmail reports whether s has the local@domain.suffix shape, where
// each label is word characters optionally joined by single '.' or '-',
// and the suffix is one or more groups of a dot and 2-3 word characters.
// Word characters include non-ASCII letters and digits.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidGraduationYear reports whether s is all decimal digits and lies in
// [MinGraduationYear, MaxGraduationYear]. Digits may come from any script.
func ValidGraduationYear(s string) bool {
	_, ok := ParseGraduationYear(s)
	return ok
}

// ParseGraduationYear converts s to a year, accepting decimal digits from
// any script ("1999", "١٩٩٩", "１９９９"). ok is false unless every rune is a
// digit and the year is in range.
func ParseGraduationYear(s string) (year int, ok bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		d, isDigit := digitValue(r)
		if !isDigit {
			return 0, false
		}
		year = year*10 + d
		if year > MaxGraduationYear {
			return 0, false
		}
	}
	if !validYear(year) {
		return 0, false
	}
	return year, true
}

// digitValue returns the value of a Unicode decimal digit. Decimal digits
// are encoded in contiguous runs of 0 through 9, so the value is the offset
// from the start of the run modulo 10.
func digitValue(r rune) (int, bool) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), true
	}
	if !unicode.IsDigit(r) {
		return 0, false
	}
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return int(r-start) % 10, true
}

func validYear(year int) bool {
	return year >= MinGraduationYear && year <= MaxGraduationYear
}

// ValidJobTitle reports whether s is non-empty and uses only letters,
// spaces and . , ( ) -
func ValidJobTitle(s string) bool {
	return jobTitlePattern.MatchString(s)
}

// ValidEventName reports whether s is non-empty and uses only letters,
// digits, spaces and . , ( ) -
func ValidEventName(s string) bool {
	return labelPattern.MatchString(s)
}

// ValidEventDescription reports whether s has any non-space content.
func ValidEventDescription(s string) bool {
	return len(strings.TrimSpace(s)) > 0
}

// ValidSkillName uses the event name character set.
func ValidSkillName(s string) bool {
	return labelPattern.MatchString(s)
}

// CheckEmail returns a ValidationError for an invalid email, or nil.
func CheckEmail(s string) error {
	if !ValidEmail(s) {
		return ValidationError{Field: ColEmail, Value: s, Message: "invalid email format"}
	}
	return nil
}

// CheckGraduationYear returns a ValidationError for an invalid year, or nil.
func CheckGraduationYear(s string) error {
	if !ValidGraduationYear(s) {
		return ValidationError{
			Field:   ColGraduationYear,
			Value:   s,
			Message: fmt.Sprintf("must be a year between %d and %d", MinGraduationYear, MaxGraduationYear),
		}
	}
	return nil
}

/* ---- Struct validation ---- */

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

func recordValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		v := validator.New()

		// Report json names so messages match column names.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		mustRegister(v, "alumname", func(fl validator.FieldLevel) bool {
			return ValidName(fl.Field().String())
		})
		mustRegister(v, "alumemail", func(fl validator.FieldLevel) bool {
			return ValidEmail(fl.Field().String())
		})
		mustRegister(v, "jobtitle", func(fl validator.FieldLevel) bool {
			return ValidJobTitle(fl.Field().String())
		})
		mustRegister(v, "gradyear", func(fl validator.FieldLevel) bool {
			return validYear(int(fl.Field().Int()))
		})

		structValidator = v
	})
	return structValidator
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

var tagMessages = map[string]string{
	"required":  "is required",
	"alumname":  "must contain letters only",
	"alumemail": "invalid email format",
	"jobtitle":  "may contain letters, spaces and . , ( ) - only",
	"gradyear":  fmt.Sprintf("must be a year between %d and %d", MinGraduationYear, MaxGraduationYear),
}

// ValidateRecord checks every field of rec and returns the first failure as
// a ValidationError, or nil. The ID is not checked.
func ValidateRecord(rec AlumniRecord) error {
	errs := ValidateRecordAll(rec)
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// ValidateRecordAll returns every field failure of rec, in field order.
func ValidateRecordAll(rec AlumniRecord) []ValidationError {
	err := recordValidator().Struct(rec)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "failed " + fe.Tag()
		}
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Value:   fmt.Sprint(fe.Value()),
			Message: msg,
		})
	}
	return out
}
