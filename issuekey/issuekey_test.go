package issuekey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenTitleWithKeys_WhenExtracting_ThenReturnsOccurrencesInOrder(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected []string
	}{
		{
			name:     "single key",
			title:    "CYP-123 logs in",
			expected: []string{"CYP-123"},
		},
		{
			name:     "multiple keys left to right",
			title:    "CYP-9 and CYP-123 share a step",
			expected: []string{"CYP-9", "CYP-123"},
		},
		{
			name:     "duplicates are preserved",
			title:    "CYP-1 does something CYP-1",
			expected: []string{"CYP-1", "CYP-1"},
		},
		{
			name:     "keys of other projects are ignored",
			title:    "ABC-1 CYP-2 XYZ-3",
			expected: []string{"CYP-2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When
			keys, err := Extract(tt.title, "CYP")

			// Then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, keys)
		})
	}
}

func Test_GivenTitleWithoutKeys_WhenExtracting_ThenFailsWithRemediation(t *testing.T) {
	// When
	keys, err := Extract("logs in with valid credentials", "CYP")

	// Then
	require.Error(t, err)
	assert.Nil(t, keys)

	var noKeysErr NoIssueKeysError
	require.True(t, errors.As(err, &noKeysErr))
	assert.Equal(t, "CYP", noKeysErr.ProjectKey)
	assert.Contains(t, err.Error(), "Test: logs in with valid credentials")
	assert.Contains(t, err.Error(), `it("CYP-123 logs in with valid credentials", () => {`)
}

func Test_GivenProjectKeyWithRegexCharacters_WhenExtracting_ThenMatchesLiterally(t *testing.T) {
	// When
	_, err := Extract("C.P-1 test", "C+P")

	// Then
	assert.Error(t, err)
}

func Test_GivenFilename_WhenMatchingKeys_ThenReturnsContainedKeys(t *testing.T) {
	// When
	matches := ContainsAny("CYP-123 login -- failed (attempt 2).png", []string{"CYP-12", "CYP-123", "CYP-5"})

	// Then
	assert.Equal(t, []string{"CYP-12", "CYP-123"}, matches)
}
