package models

import (
	"strings"

	"github.com/google/uuid"
)

// ServerConfiguration identifies one Parse Server connection. The secret
// credential is deliberately not part of it; it lives in the vault under
// SecretKey().
type ServerConfiguration struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" validate:"required"`
	ServerURL string    `json:"serverURL" validate:"required,url"`
	AppID     string    `json:"appID" validate:"required,alphanum"`
}

// NewServerConfiguration trims the user input and assigns a fresh ID.
func NewServerConfiguration(name, serverURL, appID string) ServerConfiguration {
	return ServerConfiguration{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		ServerURL: strings.TrimSpace(serverURL),
		AppID:     strings.TrimSpace(appID),
	}
}

// SecretKey is the vault key holding this configuration's credential.
func (c ServerConfiguration) SecretKey() string {
	return c.ID.String()
}

// WithInput returns a copy with new user-editable fields, keeping the ID.
func (c ServerConfiguration) WithInput(name, serverURL, appID string) ServerConfiguration {
	updated := NewServerConfiguration(name, serverURL, appID)
	updated.ID = c.ID
	return updated
}
