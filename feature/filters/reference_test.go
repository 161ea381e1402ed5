package filters

import (
	"testing"

	"crm-matcher/core/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveReference(t *testing.T) {
	cases := []struct {
		name      string
		reference string
		want      string
	}{
		{"path segment", "https://example.pipedrive.com/filters/123", "123"},
		{"path segment with trailing path", "https://example.pipedrive.com/filters/123/edit", "123"},
		{"query parameter", "https://example.pipedrive.com/organizations?filter_id=456", "456"},
		{"query parameter after other params", "https://x.com/list?view=grid&filter_id=789", "789"},
		{"bare digits", "987", "987"},
		{"digits embedded in text", "use filter 42 please", "42"},
		{"path segment wins over query", "https://x.com/filters/11?filter_id=22", "11"},
		{"query wins over earlier digit run", "https://x99.com/list?filter_id=33", "33"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveReference(tc.reference)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveReferenceNoDigits(t *testing.T) {
	_, err := ResolveReference("https://example.pipedrive.com/settings")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidReference)
}

func TestResolveReferenceEmpty(t *testing.T) {
	_, err := ResolveReference("")
	assert.ErrorIs(t, err, apperror.ErrInvalidReference)
}
