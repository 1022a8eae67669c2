package services

import (
	"fmt"
	"net/mail"

	"github.com/yunusemrekaplan/SmartFA-Dev/internal/common"
)

// Validation collects every violation before reporting, so a caller sees
// all problems with their input at once.

func validateRegistration(email, password, confirmPassword string, minPasswordLength int) *common.ValidationError {
	var messages []string

	messages = append(messages, emailMessages(email)...)

	if password == "" {
		messages = append(messages, "password must not be empty")
	} else if len(password) < minPasswordLength {
		messages = append(messages, fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}

	if confirmPassword == "" {
		messages = append(messages, "password confirmation must not be empty")
	} else if confirmPassword != password {
		messages = append(messages, "passwords do not match")
	}

	if len(messages) > 0 {
		return common.NewValidationError(messages...)
	}
	return nil
}

func validateLogin(email, password string) *common.ValidationError {
	var messages []string

	messages = append(messages, emailMessages(email)...)

	if password == "" {
		messages = append(messages, "password must not be empty")
	}

	if len(messages) > 0 {
		return common.NewValidationError(messages...)
	}
	return nil
}

func emailMessages(email string) []string {
	if email == "" {
		return []string{"email must not be empty"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []string{"email address is not valid"}
	}
	return nil
}
