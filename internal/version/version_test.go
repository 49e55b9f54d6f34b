package version

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoString(t *testing.T) {
	info := Info{Version: "v1.0.0", Commit: "abc123", BuildDate: "2026-01-01T00:00:00Z", GoVersion: "go1.25"}
	assert.Equal(t, "v1.0.0 (commit=abc123, built=2026-01-01T00:00:00Z, go=go1.25)", info.String())
}

func TestGetReflectsLinkerVariables(t *testing.T) {
	prev := Version
	Version = "v9.9.9"
	t.Cleanup(func() { Version = prev })

	info := Get()
	assert.Equal(t, "v9.9.9", info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestInfoJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(Info{Version: "dev"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"dev"}`, string(data))
}
