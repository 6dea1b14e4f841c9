package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qoe-simulator/sim"
)

func TestSchedulerRunsEventsInTimestampOrder(t *testing.T) {
	s := sim.NewScheduler(100)

	var order []string
	s.After(5, func() { order = append(order, "b") })
	s.After(1, func() { order = append(order, "a") })
	s.After(10, func() { order = append(order, "c") })

	s.Run()

	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 100.0, s.Now())
}

func TestSchedulerSameInstantFIFO(t *testing.T) {
	s := sim.NewScheduler(10)

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		s.After(1, func() { order = append(order, i) })
	}

	s.Run()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestSchedulerClockAdvancesToEventTime(t *testing.T) {
	s := sim.NewScheduler(100)

	var seen []float64
	s.After(2, func() {
		seen = append(seen, s.Now())
		s.After(3, func() { seen = append(seen, s.Now()) })
	})

	s.Run()

	assert.Equal(t, []float64{2, 5}, seen)
}

func TestSchedulerAbandonsEventsAtHorizon(t *testing.T) {
	s := sim.NewScheduler(10)

	ran := 0
	s.After(9.5, func() { ran++ })
	s.After(10, func() { ran++ })
	s.After(11, func() { ran++ })

	s.Run()

	assert.Equal(t, 1, ran, "events at or beyond the horizon must not run")
}

func TestSchedulerZeroHorizonRunsNothing(t *testing.T) {
	s := sim.NewScheduler(0)

	ran := false
	s.After(0, func() { ran = true })

	s.Run()

	assert.False(t, ran)
	assert.Equal(t, 0.0, s.Now())
}

func TestSchedulerNegativeDelayPanics(t *testing.T) {
	s := sim.NewScheduler(10)

	require.Panics(t, func() {
		s.After(-0.1, func() {})
	})
}
