package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field limits matching database schema constraints.
const (
	MaxUserIDLen = 64 // users.user_id VARCHAR(64)

	DefaultListLimit = 25
	MaxListLimit     = 100
)

// userIDRe matches user IDs: lowercase alphanumeric with dash/underscore
// (opaque identifiers issued by the identity service).
var userIDRe = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateUserID checks that a user ID is well-formed and within DB limits.
func ValidateUserID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "userId is required"
	}
	if len(id) > MaxUserIDLen {
		return "", "userId must be at most 64 characters"
	}
	if !userIDRe.MatchString(id) {
		return "", "userId contains invalid characters"
	}
	return id, ""
}

// ValidateLimit parses a limit query parameter, applying the default when
// absent and clamping to the maximum.
func ValidateLimit(raw string) (int, string) {
	if raw == "" {
		return DefaultListLimit, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, "limit must be a positive integer"
	}
	if n > MaxListLimit {
		n = MaxListLimit
	}
	return n, ""
}
