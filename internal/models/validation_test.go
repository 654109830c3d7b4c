package models

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerConfiguration_TrimsAndAssignsID(t *testing.T) {
	c := NewServerConfiguration("  Prod ", " https://api.example.com/parse\n", "\tAPP1 ")

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, "Prod", c.Name)
	assert.Equal(t, "https://api.example.com/parse", c.ServerURL)
	assert.Equal(t, "APP1", c.AppID)
	assert.Equal(t, c.ID.String(), c.SecretKey())
}

func TestWithInput_KeepsID(t *testing.T) {
	c := NewServerConfiguration("a", "https://a.example", "A")
	u := c.WithInput(" b ", "https://b.example", "B")

	assert.Equal(t, c.ID, u.ID)
	assert.Equal(t, "b", u.Name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  ServerConfiguration
		want []string
	}{
		{
			name: "valid https",
			cfg:  NewServerConfiguration("Prod", "https://api.example.com/parse", "abc123"),
		},
		{
			name: "valid http with port",
			cfg:  NewServerConfiguration("Local", "http://localhost:1337/parse", "dev"),
		},
		{
			name: "missing name",
			cfg:  NewServerConfiguration("   ", "https://api.example.com", "abc"),
			want: []string{MsgNameRequired},
		},
		{
			name: "missing url",
			cfg:  NewServerConfiguration("Prod", "", "abc"),
			want: []string{MsgInvalidURL},
		},
		{
			name: "relative url",
			cfg:  NewServerConfiguration("Prod", "api.example.com/parse", "abc"),
			want: []string{MsgInvalidURL},
		},
		{
			name: "ftp scheme",
			cfg:  NewServerConfiguration("Prod", "ftp://files.example.com", "abc"),
			want: []string{MsgURLScheme},
		},
		{
			name: "app id with dash",
			cfg:  NewServerConfiguration("Prod", "https://api.example.com", "my-app"),
			want: []string{MsgAppIDCharset},
		},
		{
			name: "app id missing",
			cfg:  NewServerConfiguration("Prod", "https://api.example.com", ""),
			want: []string{MsgAppIDRequired},
		},
		{
			name: "everything wrong",
			cfg:  NewServerConfiguration("", "nope", "a b"),
			want: []string{MsgNameRequired, MsgInvalidURL, MsgAppIDCharset},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected *ValidationError, got %T", err)
			assert.ElementsMatch(t, tt.want, ve.Messages)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestRequireSecret(t *testing.T) {
	require.NoError(t, RequireSecret("key"))

	err := RequireSecret("  ")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{MsgSecretRequired}, ve.Messages)
}
