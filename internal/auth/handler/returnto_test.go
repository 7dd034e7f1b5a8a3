package handler

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeReturnTo(t *testing.T) {
	const fallback = "/dashboard"

	tests := []struct {
		raw  string
		want string
	}{
		{"/projects/42", "/projects/42"},
		{"/", "/"},
		{"/a-b_c/%7Euser", "/a-b_c/%7Euser"},
		{"", fallback},
		{"projects", fallback},
		{"https://evil.example/x", fallback},
		{"//evil.example", fallback},
		{"/\\evil.example", fallback},
		{"/%2Fevil.example", fallback},
		{"/%5Cevil.example", fallback},
		{"/a/../b", fallback},
		{"/a/%2e%2e/b", fallback},
		{"/./a", fallback},
		{"/a?next=//evil", fallback},
		{"/a#frag", fallback},
		{"/a\nb", fallback},
		{"/a b", fallback},
		{"javascript:alert(1)", fallback},
		{"/" + string(make([]byte, maxReturnToLen)), fallback},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeReturnTo(tt.raw, nil, fallback), "raw=%q", tt.raw)
	}
}

func TestSafeReturnToPrefixes(t *testing.T) {
	prefixes := []string{"/projects", "/settings/"}

	assert.Equal(t, "/projects", SafeReturnTo("/projects", prefixes, "/home"))
	assert.Equal(t, "/projects/1", SafeReturnTo("/projects/1", prefixes, "/home"))
	assert.Equal(t, "/settings/profile", SafeReturnTo("/settings/profile", prefixes, "/home"))
	assert.Equal(t, "/home", SafeReturnTo("/projectsX", prefixes, "/home"))
	assert.Equal(t, "/home", SafeReturnTo("/admin", prefixes, "/home"))
}

func TestStateRoundTrip(t *testing.T) {
	state, err := encodeState("n0nce", "/projects/7")
	require.NoError(t, err)

	nonce, payload, ok := splitState(state)
	require.True(t, ok)
	assert.Equal(t, "n0nce", nonce)
	assert.Equal(t, "/projects/7", returnToFromState(payload, nil, "/dashboard"))
}

func TestReturnToFromStateFallsBack(t *testing.T) {
	bad := []string{
		"",
		"!!!",
		base64.RawURLEncoding.EncodeToString([]byte("not json")),
		base64.RawURLEncoding.EncodeToString([]byte(`{"returnTo":"https://evil.example"}`)),
		base64.RawURLEncoding.EncodeToString([]byte(`{"returnTo":42}`)),
	}
	for _, payload := range bad {
		assert.Equal(t, "/dashboard", returnToFromState(payload, nil, "/dashboard"), "payload=%q", payload)
	}

	_, _, ok := splitState("no-separator")
	assert.False(t, ok)
	_, _, ok = splitState(".payload")
	assert.False(t, ok)
}
