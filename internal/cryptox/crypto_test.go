package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveMasterKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveMasterKey(password, salt)
	key2 := DeriveMasterKey(password, salt)

	require.Len(t, key1, KeySize)
	require.Equal(t, key1, key2, "same password and salt must give the same key")

	other := DeriveMasterKey([]byte("secret-passwore"), salt)
	require.NotEqual(t, key1, other, "a different password must give a different key")
}

func TestDeriveMasterKey_DifferentInputs(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveMasterKey(password, []byte("salt-1"))
	key2 := DeriveMasterKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestVerifier(t *testing.T) {
	key := bytes.Repeat([]byte{1}, KeySize)
	other := bytes.Repeat([]byte{2}, KeySize)

	v := MakeVerifier(key)
	assert.True(t, CheckVerifier(key, v))
	assert.False(t, CheckVerifier(other, v))
	assert.False(t, CheckVerifier(key, nil))
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key, err := RandomBytes(KeySize)
	require.NoError(t, err)
	aad := []byte("svc|key-1")

	ct, nonce, err := Seal(key, []byte("rest-api-key"), aad)
	require.NoError(t, err)
	assert.NotContains(t, string(ct), "rest-api-key")

	pt, err := Open(key, ct, nonce, aad)
	require.NoError(t, err)
	assert.Equal(t, "rest-api-key", string(pt))
}

func TestSeal_FreshNonceEachTime(t *testing.T) {
	key := bytes.Repeat([]byte{7}, KeySize)

	ct1, n1, err := Seal(key, []byte("same"), nil)
	require.NoError(t, err)
	ct2, n2, err := Seal(key, []byte("same"), nil)
	require.NoError(t, err)

	assert.NotEqual(t, n1, n2)
	assert.NotEqual(t, ct1, ct2)
}

func TestOpen_Failures(t *testing.T) {
	key := bytes.Repeat([]byte{3}, KeySize)
	ct, nonce, err := Seal(key, []byte("value"), []byte("svc|a"))
	require.NoError(t, err)

	tampered := append([]byte(nil), ct...)
	tampered[0] ^= 0xff

	tests := []struct {
		name  string
		key   []byte
		ct    []byte
		nonce []byte
		aad   []byte
	}{
		{"wrong key", bytes.Repeat([]byte{4}, KeySize), ct, nonce, []byte("svc|a")},
		{"other additional data", key, ct, nonce, []byte("svc|b")},
		{"tampered ciphertext", key, tampered, nonce, []byte("svc|a")},
		{"short nonce", key, ct, nonce[:4], []byte("svc|a")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.key, tt.ct, tt.nonce, tt.aad)
			require.ErrorIs(t, err, ErrOpenFailed)
		})
	}
}

func TestSeal_RejectsShortKey(t *testing.T) {
	_, _, err := Seal([]byte("short"), []byte("x"), nil)
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestWipe(t *testing.T) {
	b := []byte("passphrase")
	Wipe(b)
	require.Equal(t, make([]byte, len("passphrase")), b)

	Wipe(nil)
}
