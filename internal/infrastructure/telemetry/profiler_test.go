package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProfiler(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		p, err := NewProfiler(ProfilerConfig{}, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, p.Running())
		assert.NoError(t, p.Stop())
		assert.NoError(t, p.Stop())
	})

	t.Run("missing server address", func(t *testing.T) {
		_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "shop"}, zap.NewNop())
		assert.ErrorContains(t, err, "server address")
	})

	t.Run("missing application name", func(t *testing.T) {
		_, err := NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zap.NewNop())
		assert.ErrorContains(t, err, "application name")
	})
}

func TestProfileTypes(t *testing.T) {
	assert.Len(t, profileTypes(ProfilerConfig{}), 6)
	assert.Len(t, profileTypes(ProfilerConfig{MutexProfiles: true, BlockProfiles: true}), 10)
}

func TestSanitizeLabels(t *testing.T) {
	pairs := sanitizeLabels(map[string]string{
		"Store-Code": "DEFAULT",
		"route":      "/api/v1/products",
		"request_id": "abc",
		"username":   "admin",
		"empty":      "",
		"long":       strings.Repeat("x", 200),
	})

	require.Len(t, pairs, 6)
	assert.Equal(t, "long", pairs[0])
	assert.Len(t, pairs[1], MaxLabelValueLength)
	assert.Equal(t, []string{"route", "/api/v1/products", "store_code", "DEFAULT"}, pairs[2:])
}

func TestWithProfilingLabels(t *testing.T) {
	var got string
	WithProfilingLabels(context.Background(), map[string]string{"store_code": "DEFAULT"}, func(ctx context.Context) {
		got, _ = pprof.Label(ctx, "store_code")
	})
	assert.Equal(t, "DEFAULT", got)

	called := false
	WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
	assert.True(t, called)
}
