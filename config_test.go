package zerogo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigMatchesMCTSDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Noise)
	assert.Equal(t, -1, cfg.ResignPct)
	assert.Greater(t, cfg.MaxPlayouts, 0)
}

func TestMctsConfigCarriesEveryField(t *testing.T) {
	cfg := Config{
		Threads: 2, MaxPlayouts: 10, MaxVisits: 100, PUCT: 0.7,
		FPUReduction: 0.1, SoftmaxTemp: 1.2, Noise: true, RandomCnt: 5,
		ResignPct: 20, RNGSeed: 9,
	}
	mc := cfg.mctsConfig()
	assert.Equal(t, cfg.Threads, mc.Threads)
	assert.Equal(t, cfg.MaxPlayouts, mc.MaxPlayouts)
	assert.Equal(t, cfg.MaxVisits, mc.MaxVisits)
	assert.Equal(t, cfg.PUCT, mc.PUCT)
	assert.Equal(t, cfg.FPUReduction, mc.FPUReduction)
	assert.Equal(t, cfg.SoftmaxTemp, mc.SoftmaxTemp)
	assert.Equal(t, cfg.Noise, mc.Noise)
	assert.Equal(t, cfg.RandomCnt, mc.RandomCnt)
	assert.Equal(t, cfg.ResignPct, mc.ResignPct)
	assert.Equal(t, cfg.RNGSeed, mc.RNGSeed)
}
