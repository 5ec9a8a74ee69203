package common

import (
	"fmt"
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 50 {
		return fmt.Errorf("%w: username must be between 3 and 50 characters", ErrInvalidArgument)
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("%w: username can only contain letters, numbers, and underscores", ErrInvalidArgument)
	}

	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters long", ErrInvalidArgument)
	}

	if len(password) > 100 {
		return fmt.Errorf("%w: password is too long", ErrInvalidArgument)
	}

	return nil
}

func ValidateDisplayName(displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return fmt.Errorf("%w: display name is required", ErrInvalidArgument)
	}
	if len(displayName) > 100 {
		return fmt.Errorf("%w: display name is too long", ErrInvalidArgument)
	}
	return nil
}

func ValidateTheme(theme string) error {
	if !Theme(theme).IsValid() {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidArgument, theme)
	}
	return nil
}
