package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/alumni/internal/core"
)

// checkWith adapts a boolean validator to a Field.Check.
func checkWith(field string, valid func(string) bool, message string) func(string) error {
	return func(s string) error {
		if !valid(s) {
			return core.ValidationError{Field: field, Value: s, Message: message}
		}
		return nil
	}
}

var (
	checkName      = checkWith("name", core.ValidName, "must contain letters only")
	checkJobTitle  = checkWith("job_title", core.ValidJobTitle, "may contain letters, spaces and . , ( ) - only")
	checkEventName = checkWith("event_name", core.ValidEventName, "may contain letters, digits, spaces and . , ( ) - only")
	checkSkill     = checkWith("skill", core.ValidSkillName, "may contain letters, digits, spaces and . , ( ) - only")
)

func checkID(s string) error {
	if _, err := parseID(s); err != nil {
		return err
	}
	return nil
}

func parseID(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, core.ValidationError{Field: "id", Value: s, Message: "must be a positive number"}
	}
	return n, nil
}

func checkDate(s string) error {
	_, err := core.ParseDate("date", s)
	return err
}

func checkPort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return core.ValidationError{Field: "port", Value: s, Message: "must be between 1 and 65535"}
	}
	return nil
}

func checkRSVP(s string) error {
	_, err := core.ParseRSVPStatus(s)
	return err
}

// splitEmails splits a comma or whitespace separated address list.
func splitEmails(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
}

// yearOrZero parses an already checked graduation year.
func yearOrZero(s string) int {
	n, _ := core.ParseGraduationYear(s)
	return n
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
