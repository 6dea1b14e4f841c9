package sim

import "qoe-simulator/models"

// collector accumulates completed-request metrics for one run with an
// incremental running sum, so the periodic mean is O(1) per sample instead
// of re-deriving it from the full history each tick.
type collector struct {
	waitSum   float64
	waitCount int
	qoeSum    float64
	qoeCount  int
}

func (c *collector) recordWait(wait float64) {
	c.waitSum += wait
	c.waitCount++
}

func (c *collector) recordQoE(qoe float64) {
	c.qoeSum += qoe
	c.qoeCount++
}

// meanQoE returns the running mean QoE, or fallback when no request has
// completed service yet.
func (c *collector) meanQoE(fallback float64) float64 {
	if c.qoeCount == 0 {
		return fallback
	}
	return c.qoeSum / float64(c.qoeCount)
}

// meanWait returns the running mean waiting time, or 0 when empty.
func (c *collector) meanWait() float64 {
	if c.waitCount == 0 {
		return 0
	}
	return c.waitSum / float64(c.waitCount)
}

// QoEMonitor samples the running mean QoE at a fixed interval, building the
// time series external plotting consumes.
type QoEMonitor struct {
	sched    *Scheduler
	coll     *collector
	fallback float64
	interval float64

	series []models.MetricSample
}

// NewQoEMonitor creates a monitor that falls back to the full-mode baseline
// while no QoE has been recorded.
func NewQoEMonitor(sched *Scheduler, coll *collector, fallback, interval float64) *QoEMonitor {
	return &QoEMonitor{sched: sched, coll: coll, fallback: fallback, interval: interval}
}

// Start schedules the first sample at t=0.
func (m *QoEMonitor) Start() {
	m.sched.After(0, m.tick)
}

func (m *QoEMonitor) tick() {
	m.series = append(m.series, models.MetricSample{
		Time:  m.sched.Now(),
		Value: m.coll.meanQoE(m.fallback),
	})
	m.sched.After(m.interval, m.tick)
}

// Series returns the sampled QoE means over time.
func (m *QoEMonitor) Series() []models.MetricSample { return m.series }
