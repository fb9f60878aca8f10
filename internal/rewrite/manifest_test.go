package rewrite

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestWriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := NewManifest(APIRule("https://backend.example.com")).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	assert.JSONEq(t, `{
		"rewrites": [
			{"source": "/api/v1/:path*", "destination": "https://backend.example.com/api/v1/:path*"}
		]
	}`, buf.String())
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	parsed, err := ParseManifest(&buf)
	require.NoError(t, err)
	assert.Equal(t, Rules{APIRule("https://backend.example.com")}, parsed.Rewrites)
}

func TestManifestWriteToEmpty(t *testing.T) {
	var buf bytes.Buffer
	_, err := Manifest{}.WriteTo(&buf)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rewrites": []}`, buf.String())
}

func TestManifestWriteToRejectsInvalidRule(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewManifest(Rule{Source: "/api"}).WriteTo(&buf)
	assert.ErrorIs(t, err, ErrInvalidRule)
	assert.Zero(t, buf.Len())
}

func TestParseManifestErrors(t *testing.T) {
	_, err := ParseManifest(strings.NewReader("{"))
	assert.Error(t, err)

	_, err = ParseManifest(strings.NewReader(`{"rewrites":[{"source":"/x","destination":"/y"}]}`))
	assert.ErrorIs(t, err, ErrInvalidRule)
}
