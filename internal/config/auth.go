package config

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Role identifies which password an interactive login is checked against.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// CheckPassword reports whether input matches the configured password for role.
// Configured values beginning with "$2" are treated as bcrypt hashes.
func (a AuthConfig) CheckPassword(role Role, input string) bool {
	var want string
	switch role {
	case RoleAdmin:
		want = a.AdminPassword
	case RoleStudent:
		want = a.StudentPassword
	default:
		return false
	}
	if want == "" {
		return false
	}

	if strings.HasPrefix(want, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(want), []byte(input)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(input)) == 1
}
