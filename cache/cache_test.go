package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupMissIsIdempotent(t *testing.T) {
	c := New(4)
	_, ok := c.Lookup(1)
	assert.False(t, ok)
	_, ok = c.Lookup(1)
	assert.False(t, ok)
}

func TestInsertThenLookupHits(t *testing.T) {
	c := New(4)
	want := EvalResult{Value: 0.5}
	want.Policy[0] = 1
	c.Insert(42, want)

	got, ok := c.Lookup(42)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestInsertIgnoresExistingKey(t *testing.T) {
	c := New(4)
	c.Insert(1, EvalResult{Value: 0.1})
	c.Insert(1, EvalResult{Value: 0.9})

	got, ok := c.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, float32(0.1), got.Value, "first writer wins")
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2)
	c.Insert(1, EvalResult{Value: 1})
	c.Insert(2, EvalResult{Value: 2})
	c.Insert(3, EvalResult{Value: 3}) // evicts 1, the oldest

	_, ok := c.Lookup(1)
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Lookup(2)
	assert.True(t, ok)
	_, ok = c.Lookup(3)
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestLookupRefreshesRecency(t *testing.T) {
	c := New(2)
	c.Insert(1, EvalResult{Value: 1})
	c.Insert(2, EvalResult{Value: 2})

	// Touch 1 so it becomes most-recently-used; 2 is now the oldest.
	_, _ = c.Lookup(1)
	c.Insert(3, EvalResult{Value: 3})

	_, ok := c.Lookup(2)
	assert.False(t, ok, "2 should have been evicted instead of 1")
	_, ok = c.Lookup(1)
	assert.True(t, ok)
	_, ok = c.Lookup(3)
	assert.True(t, ok)
}

func TestClearRemovesEverything(t *testing.T) {
	c := New(4)
	c.Insert(1, EvalResult{Value: 1})
	c.Insert(2, EvalResult{Value: 2})
	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Lookup(1)
	assert.False(t, ok)
}

func TestSizeForFormula(t *testing.T) {
	assert.Equal(t, 50_000, SizeFor(100))
	assert.Equal(t, 50_000, SizeFor(2_000))
	assert.Equal(t, 18*10_000, SizeFor(10_000))
}

func TestNonPositiveCapacityIsClampedToOne(t *testing.T) {
	c := New(0)
	c.Insert(1, EvalResult{Value: 1})
	c.Insert(2, EvalResult{Value: 2})
	assert.Equal(t, 1, c.Len())
	_, ok := c.Lookup(2)
	assert.True(t, ok)
}
