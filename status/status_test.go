package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenNormalizedStatus_WhenMapping_ThenUsesEnvironmentVocabulary(t *testing.T) {
	tests := []struct {
		status   Status
		isCloud  bool
		expected string
	}{
		{Passed, false, "PASS"},
		{Failed, false, "FAIL"},
		{Pending, false, "TODO"},
		{Skipped, false, "FAIL"},
		{Passed, true, "PASSED"},
		{Failed, true, "FAILED"},
		{Pending, true, "TO DO"},
		{Skipped, true, "FAILED"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Map(tt.status, tt.isCloud, Overrides{}), "%s (cloud: %t)", tt.status, tt.isCloud)
	}
}

func Test_GivenOverrides_WhenMapping_ThenOverridesWinInBothEnvironments(t *testing.T) {
	overrides := Overrides{Passed: "OK", Failed: "NOK", Pending: "WAIT", Skipped: "SKIP"}

	for _, isCloud := range []bool{false, true} {
		assert.Equal(t, "OK", Map(Passed, isCloud, overrides))
		assert.Equal(t, "NOK", Map(Failed, isCloud, overrides))
		assert.Equal(t, "WAIT", Map(Pending, isCloud, overrides))
		assert.Equal(t, "SKIP", Map(Skipped, isCloud, overrides))
	}
}

func Test_GivenPartialOverrides_WhenMapping_ThenOtherStatusesKeepDefaults(t *testing.T) {
	overrides := Overrides{Skipped: "SKIPPED"}

	assert.Equal(t, "SKIPPED", Map(Skipped, false, overrides))
	assert.Equal(t, "PASS", Map(Passed, false, overrides))
}

func Test_GivenRawState_WhenParsing_ThenRejectsUnknownStates(t *testing.T) {
	s, err := Parse("pending")
	require.NoError(t, err)
	assert.Equal(t, Pending, s)

	_, err = Parse("broken")
	assert.EqualError(t, err, "unknown status: broken")
}

func Test_GivenIterationCounts_WhenAggregating_ThenAppliesDecisionTable(t *testing.T) {
	overrides := Overrides{Skipped: "SKIPPED"}

	tests := []struct {
		name     string
		counts   Counts
		expected string
	}{
		{"all passed", Counts{Passed: 3}, "PASS"},
		{"passed with pending", Counts{Passed: 1, Pending: 1}, "PASS"},
		{"all pending", Counts{Pending: 2}, "TODO"},
		{"skipped outranks failed", Counts{Passed: 2, Failed: 1, Skipped: 1}, "SKIPPED"},
		{"failed", Counts{Passed: 1, Failed: 1}, "FAIL"},
		{"nothing", Counts{}, "FAIL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := Aggregate(tt.counts, false, overrides, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}

func Test_GivenCustomAggregate_WhenAggregating_ThenResultIsUsedVerbatim(t *testing.T) {
	var received Counts
	fn := func(counts Counts) (string, error) {
		received = counts
		return "flaky", nil
	}

	result, err := Aggregate(Counts{Passed: 1, Failed: 1}, true, Overrides{Failed: "NOK"}, fn)

	require.NoError(t, err)
	assert.Equal(t, "flaky", result)
	assert.Equal(t, Counts{Passed: 1, Failed: 1}, received)
}

func Test_GivenStatuses_WhenCounting_ThenTalliesEachStatus(t *testing.T) {
	counts := Count([]Status{Passed, Failed, Passed, Skipped, Pending})

	assert.Equal(t, Counts{Passed: 2, Failed: 1, Pending: 1, Skipped: 1}, counts)
}

func Test_GivenAggregateExpression_WhenCompiled_ThenEvaluatesCounts(t *testing.T) {
	fn, err := CompileAggregateExpression(`failed > 0 && passed > 0 ? "FLAKY" : (failed > 0 ? "FAIL" : "PASS")`)
	require.NoError(t, err)

	for counts, expected := range map[Counts]string{
		{Passed: 1, Failed: 1}: "FLAKY",
		{Failed: 2}:            "FAIL",
		{Passed: 2}:            "PASS",
	} {
		token, err := fn(counts)
		require.NoError(t, err)
		assert.Equal(t, expected, token)
	}
}

func Test_GivenExpressionFailingAtRuntime_WhenAggregating_ThenFallsBackToDefaultWithError(t *testing.T) {
	fn, err := CompileAggregateExpression(`["PASS", "FAIL"][failed]`)
	require.NoError(t, err)

	token, err := Aggregate(Counts{Passed: 1, Failed: 3}, false, Overrides{}, fn)

	require.Error(t, err)
	assert.Equal(t, "FAIL", token)
}

func Test_GivenCustomAggregateReturningEmptyStatus_WhenAggregating_ThenFallsBackToDefaultWithError(t *testing.T) {
	fn := func(Counts) (string, error) { return "", nil }

	token, err := Aggregate(Counts{Passed: 2}, true, Overrides{}, fn)

	require.Error(t, err)
	assert.Equal(t, "PASSED", token)
}

func Test_GivenNonStringExpression_WhenCompiled_ThenFails(t *testing.T) {
	_, err := CompileAggregateExpression(`passed + failed`)

	assert.Error(t, err)
}
