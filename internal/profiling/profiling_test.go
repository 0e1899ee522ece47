package profiling

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountersAndReset(t *testing.T) {
	ResetFrame()
	Count("draw")
	Count("draw")
	Count("bind")

	assert.Equal(t, map[string]int{"draw": 2, "bind": 1}, Counters())
	assert.Equal(t, "bind=1 draw=2", CounterSummary())

	ResetFrame()
	assert.Empty(t, Counters())
	assert.Empty(t, Snapshot())
}

func TestTopNOrdersByDuration(t *testing.T) {
	ResetFrame()
	mu.Lock()
	frameTotals["fast"] = 500 * time.Microsecond
	frameTotals["slow"] = 4200 * time.Microsecond
	frameTotals["mid"] = 2 * time.Millisecond
	mu.Unlock()

	assert.Equal(t, "slow:4.2ms, mid:2ms", TopN(2))
	assert.Equal(t, 3, len(strings.Split(TopN(10), ", ")))
	ResetFrame()
}

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	stop := Track("work")
	stop()
	stop = Track("work")
	stop()

	_, ok := Snapshot()["work"]
	assert.True(t, ok)
	ResetFrame()
}
