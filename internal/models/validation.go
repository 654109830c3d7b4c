package models

import (
	"errors"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MsgNameRequired   = "Please enter a name for this server."
	MsgInvalidURL     = "Please enter a valid URL."
	MsgURLScheme      = "The server URL must start with http or https."
	MsgAppIDRequired  = "Please enter an app ID."
	MsgAppIDCharset   = "The app ID may contain only letters and digits."
	MsgSecretRequired = "Please enter an API key."
)

var ErrInvalidConfiguration = errors.New("invalid server configuration")

// ValidationError carries the human-readable problems found in user input.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

var validate = validator.New()

func formatValidationError(err validator.FieldError) string {
	switch err.Field() {
	case "Name":
		return MsgNameRequired
	case "ServerURL":
		return MsgInvalidURL
	case "AppID":
		if err.Tag() == "required" {
			return MsgAppIDRequired
		}
		return MsgAppIDCharset
	default:
		return "Validation failed for " + err.Field() + " with tag " + err.Tag() + "."
	}
}

// Validate checks the fields a user can edit. It returns nil or a
// *ValidationError.
func (c ServerConfiguration) Validate() error {
	var messages []string

	urlOK := true
	if err := validate.Struct(c); err != nil {
		var validatorErrors validator.ValidationErrors
		if !errors.As(err, &validatorErrors) {
			return &ValidationError{Messages: []string{err.Error()}}
		}
		for _, fe := range validatorErrors {
			if fe.Field() == "ServerURL" {
				urlOK = false
			}
			messages = append(messages, formatValidationError(fe))
		}
	}

	if urlOK {
		if msg := checkScheme(c.ServerURL); msg != "" {
			messages = append(messages, msg)
		}
	}

	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}

func checkScheme(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return MsgInvalidURL
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return ""
	default:
		return MsgURLScheme
	}
}

// RequireSecret rejects a blank credential for deployments that need one.
func RequireSecret(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return &ValidationError{Messages: []string{MsgSecretRequired}}
	}
	return nil
}
