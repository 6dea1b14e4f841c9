package sim

import (
	"github.com/sirupsen/logrus"

	"qoe-simulator/models"
)

// Mode identifies the active agent configuration.
type Mode int

const (
	// ModeFull runs the base neural models: fewer agents, higher QoE baseline.
	ModeFull Mode = iota
	// ModeSimplified runs the lightweight models: more agents, lower baseline.
	ModeSimplified
)

func (m Mode) String() string {
	if m == ModeSimplified {
		return "simplified"
	}
	return "full"
}

// ModeSettings carries the tunables of the mode controller.
type ModeSettings struct {
	ThresholdToSimplify int
	ThresholdToBase     int
	FullAgents          int
	SimplifiedAgents    int
	FullBaseline        float64
	SimplifiedBaseline  float64
	Interval            float64
	// ArrivalRate is only carried for log context.
	ArrivalRate float64
}

// ModeController owns the operating mode. Every sampling interval it checks
// the pool's queue length and flips between the two modes with a
// dual-threshold hysteresis:
//
//   - full -> simplified when queue length exceeds thresholdToSimplify;
//   - simplified -> full when queue length is at or below thresholdToBase
//     and no agent beyond the full-mode limit is still committed.
//
// All other components read the mode and baseline only through it.
type ModeController struct {
	sched    *Scheduler
	pool     *AgentPool
	settings ModeSettings

	mode                 Mode
	switchesToSimplified int
	switchesToFull       int

	extraAgents []models.MetricSample
}

// NewModeController creates a controller starting in full mode. The pool's
// effective limit must already match the full-mode agent count.
func NewModeController(sched *Scheduler, pool *AgentPool, settings ModeSettings) *ModeController {
	return &ModeController{
		sched:    sched,
		pool:     pool,
		settings: settings,
		mode:     ModeFull,
	}
}

// Start schedules the first sampling tick at t=0.
func (c *ModeController) Start() {
	c.sched.After(0, c.tick)
}

func (c *ModeController) tick() {
	queueLen := c.pool.QueueLen()

	switch {
	case queueLen > c.settings.ThresholdToSimplify && c.mode != ModeSimplified:
		c.mode = ModeSimplified
		c.pool.SetLimit(c.settings.SimplifiedAgents)
		c.switchesToSimplified++
		logrus.WithFields(logrus.Fields{
			"time":         c.sched.Now(),
			"arrival_rate": c.settings.ArrivalRate,
			"queue_len":    queueLen,
		}).Info("switching to simplified agents")
	case queueLen <= c.settings.ThresholdToBase && c.mode != ModeFull && c.pool.Busy() <= c.settings.FullAgents:
		c.mode = ModeFull
		c.pool.SetLimit(c.settings.FullAgents)
		c.switchesToFull++
		logrus.WithFields(logrus.Fields{
			"time":         c.sched.Now(),
			"arrival_rate": c.settings.ArrivalRate,
			"queue_len":    queueLen,
		}).Info("switching to full agents")
	}

	extra := 0
	if c.mode == ModeSimplified {
		extra = c.pool.Limit() - c.settings.FullAgents
	}
	c.extraAgents = append(c.extraAgents, models.MetricSample{Time: c.sched.Now(), Value: float64(extra)})

	c.sched.After(c.settings.Interval, c.tick)
}

// Mode returns the currently active mode.
func (c *ModeController) Mode() Mode { return c.mode }

// Baseline returns the QoE baseline of the active mode.
func (c *ModeController) Baseline() float64 {
	if c.mode == ModeSimplified {
		return c.settings.SimplifiedBaseline
	}
	return c.settings.FullBaseline
}

// ExtraAgents returns the sampled simplified-agent counts over time.
func (c *ModeController) ExtraAgents() []models.MetricSample { return c.extraAgents }

// Switches reports how many transitions happened in each direction.
func (c *ModeController) Switches() (toSimplified, toFull int) {
	return c.switchesToSimplified, c.switchesToFull
}
