package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialGeneratesIncreasingDeterministicIds(t *testing.T) {
	g := NewSequential(7)

	assert.Equal(t, "O-7-1", g.VenueOrderId())
	assert.Equal(t, "O-7-2", g.VenueOrderId())
	assert.Equal(t, "T-7-1", g.TradeId())
	assert.Equal(t, "E-7-1", g.EventId())
}

func TestSequentialCountersAreIndependentPerKind(t *testing.T) {
	g := NewSequential(1)
	g.VenueOrderId()
	g.VenueOrderId()
	g.VenueOrderId()

	assert.Equal(t, "T-1-1", g.TradeId(), "the trade counter must not be advanced by venue-id calls")
}

func TestRandomProducesDistinctValues(t *testing.T) {
	g := Random{}
	a := g.VenueOrderId()
	b := g.VenueOrderId()
	assert.NotEqual(t, a, b)
}

func TestNewDispatchesOnUseRandomIds(t *testing.T) {
	det := New(1, false)
	_, isSequential := det.(*Sequential)
	assert.True(t, isSequential)

	rnd := New(1, true)
	_, isRandom := rnd.(Random)
	assert.True(t, isRandom)
}
