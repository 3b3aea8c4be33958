package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResignThresholdDefaultsToTenPercent(t *testing.T) {
	cfg := Config{ResignPct: -1}
	enabled, threshold := cfg.resignThreshold()
	assert.True(t, enabled)
	assert.Equal(t, float32(0.10), threshold)
}

func TestResignThresholdZeroDisables(t *testing.T) {
	cfg := Config{ResignPct: 0}
	enabled, _ := cfg.resignThreshold()
	assert.False(t, enabled)
}

func TestResignThresholdUsesLiteralPercent(t *testing.T) {
	cfg := Config{ResignPct: 5}
	enabled, threshold := cfg.resignThreshold()
	assert.True(t, enabled)
	assert.Equal(t, float32(0.05), threshold)
}

func TestResolvedClampsNonPositiveFields(t *testing.T) {
	cfg := Config{Threads: -1, MaxTreeSize: 0, MaxPlayouts: -5, MaxVisits: 0}
	resolved := cfg.resolved()
	assert.Greater(t, resolved.Threads, 0)
	assert.Equal(t, 25_000_000, resolved.MaxTreeSize)
	assert.Greater(t, resolved.MaxPlayouts, 0)
	assert.Greater(t, resolved.MaxVisits, 0)
}

func TestDefaultConfigIsMatchPlayReady(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Noise)
	assert.Equal(t, 0, cfg.RandomCnt)
	assert.Equal(t, -1, cfg.ResignPct)
}
