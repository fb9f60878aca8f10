package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIRule(t *testing.T) {
	rule := APIRule("https://backend.example.com/ignored/path/")

	assert.Equal(t, "/api/v1/:path*", rule.Source)
	assert.Equal(t, "https://backend.example.com/api/v1/:path*", rule.Destination)
	assert.Equal(t, "/api/v1/", rule.Prefix())
	require.NoError(t, rule.Validate())
}

func TestRuleMatch(t *testing.T) {
	rule := APIRule("https://backend.example.com")

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/api/v1/todos", "https://backend.example.com/api/v1/todos", true},
		{"/api/v1/todos/42/toggle", "https://backend.example.com/api/v1/todos/42/toggle", true},
		{"/api/v1/auth/me", "https://backend.example.com/api/v1/auth/me", true},
		{"/api/v1/", "https://backend.example.com/api/v1/", true},
		{"/api/v1/a%2Fb//c/", "https://backend.example.com/api/v1/a%2Fb//c/", true},
		{"/api/v1", "", false},
		{"/api/v2/todos", "", false},
		{"/todos", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := rule.Match(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRulesFirstMatchWins(t *testing.T) {
	rules := Rules{
		{Source: "/api/v1/auth/:path*", Destination: "https://auth.example.com/api/v1/auth/:path*"},
		APIRule("https://backend.example.com"),
	}

	got, ok := rules.Match("/api/v1/auth/login")
	require.True(t, ok)
	assert.Equal(t, "https://auth.example.com/api/v1/auth/login", got)

	got, ok = rules.Match("/api/v1/todos")
	require.True(t, ok)
	assert.Equal(t, "https://backend.example.com/api/v1/todos", got)

	_, ok = rules.Match("/index.html")
	assert.False(t, ok)
}

func TestRuleValidate(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{"relative source", Rule{Source: "api/v1/:path*", Destination: "https://x.com/:path*"}},
		{"no wildcard in source", Rule{Source: "/api/v1/", Destination: "https://x.com/:path*"}},
		{"wildcard twice", Rule{Source: "/:path*/:path*", Destination: "https://x.com/:path*"}},
		{"no wildcard in destination", Rule{Source: "/api/v1/:path*", Destination: "https://x.com/api/v1/"}},
		{"relative destination", Rule{Source: "/api/v1/:path*", Destination: "/api/v1/:path*"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.rule.Validate(), ErrInvalidRule)
		})
	}
}
