package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRunningMeans(t *testing.T) {
	c := &collector{}

	assert.Equal(t, 0.0, c.meanWait())
	assert.Equal(t, 1.0, c.meanQoE(1.0), "empty collector falls back to the full-mode baseline")

	c.recordWait(2)
	c.recordWait(4)
	c.recordQoE(0.8)
	c.recordQoE(0.6)

	assert.Equal(t, 3.0, c.meanWait())
	assert.InDelta(t, 0.7, c.meanQoE(1.0), 1e-12)
}

func TestQoEMonitorSamplesFallbackThenMean(t *testing.T) {
	sched := NewScheduler(4)
	coll := &collector{}
	m := NewQoEMonitor(sched, coll, 1.0, 1)

	// First QoE lands between the t=1 and t=2 samples.
	sched.After(1.5, func() { coll.recordQoE(0.5) })

	m.Start()
	sched.Run()

	series := m.Series()
	require.Len(t, series, 4)
	assert.Equal(t, 1.0, series[0].Value)
	assert.Equal(t, 1.0, series[1].Value)
	assert.Equal(t, 0.5, series[2].Value)
	assert.Equal(t, 0.5, series[3].Value)
	assert.Equal(t, []float64{0, 1, 2, 3}, []float64{series[0].Time, series[1].Time, series[2].Time, series[3].Time})
}
