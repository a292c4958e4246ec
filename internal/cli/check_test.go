package cli

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_AllValid(t *testing.T) {
	stdout, _, err := execute(t, nil, "check",
		"testdata/filters/or.yaml",
		"testdata/filters/nested.yaml",
		"testdata/filters/or.cue",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ testdata/filters/nested.yaml: 3 condition(s), 4 param(s)")
	assert.Contains(t, stdout, "3 file(s) checked, 0 failed")
}

func TestCheck_CollectsAllFailures(t *testing.T) {
	stdout, stderr, err := execute(t, nil, "check",
		"testdata/filters/or.yaml",
		"testdata/filters/unknown.yaml",
		"testdata/filters/missing.yaml",
	)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "2 of 3 file(s) failed")
	assert.Contains(t, stderr, "filter failed")

	newGoldie(t).Assert(t, "check_mixed", []byte(stdout))
}

func TestCheck_JSON(t *testing.T) {
	stdout, _, err := execute(t, nil, "check", "--format", "json",
		"testdata/filters/nested.yaml",
		"testdata/filters/unknown.yaml",
	)
	require.Error(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   CheckReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Files, 2)

	assert.Equal(t, CheckResult{
		Path:         "testdata/filters/nested.yaml",
		OK:           true,
		Conditions:   3,
		Placeholders: 4,
		Depth:        1,
	}, resp.Data.Files[0])

	assert.False(t, resp.Data.Files[1].OK)
	assert.Equal(t, ErrCodeUnknownOperator, resp.Data.Files[1].Code)
}

func TestCheck_RequiresArgs(t *testing.T) {
	_, _, err := execute(t, nil, "check")
	assert.Error(t, err)
}
