// Package sim is the discrete-event core: a virtual clock with an event
// queue drives the arrival generator, the agent pool, the mode controller
// and the periodic monitors for exactly one (threshold, arrival rate) run.
package sim

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"qoe-simulator/config"
	"qoe-simulator/errors"
	"qoe-simulator/models"
)

// Request is a single incoming service request. It is created by the arrival
// generator and owned by its lifecycle alone; no two requests share state.
type Request struct {
	ID          int
	ArrivalTime float64
	WaitTime    float64
	QoE         float64
}

// simulation wires the components of one run together and owns all shared
// state. Everything executes single-threaded in simulated-time order, so no
// locking is needed.
type simulation struct {
	cfg  config.Config
	rate float64

	sched      *Scheduler
	pool       *AgentPool
	controller *ModeController
	monitor    *QoEMonitor
	coll       *collector
	rng        *rand.Rand

	nextID    int
	completed int
}

// Run executes one simulation for the given switch-to-simplified threshold
// and arrival rate. The rng seed fully determines the outcome: identical
// seed and parameters produce identical wait-time and QoE sequences.
func Run(cfg config.Config, threshold int, rate float64, seed int64) (models.RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return models.RunResult{}, err
	}
	if rate <= 0 {
		return models.RunResult{}, &errors.ConfigError{Field: "arrival_rate", Value: rate, Err: errors.ErrNonPositiveRate}
	}
	if threshold < 0 {
		return models.RunResult{}, &errors.ConfigError{Field: "queue_threshold", Value: threshold, Err: errors.ErrNegativeThreshold}
	}
	if cfg.ThresholdToBase >= threshold {
		return models.RunResult{}, &errors.ConfigError{Field: "threshold_to_base", Value: cfg.ThresholdToBase, Err: errors.ErrThresholdOrder}
	}

	s := &simulation{
		cfg:   cfg,
		rate:  rate,
		sched: NewScheduler(cfg.SimTime),
		coll:  &collector{},
		rng:   rand.New(rand.NewSource(seed)),
	}
	s.pool = NewAgentPool(max(cfg.NumAgentsFull, cfg.NumAgentsSimplified), cfg.NumAgentsFull)
	s.controller = NewModeController(s.sched, s.pool, ModeSettings{
		ThresholdToSimplify: threshold,
		ThresholdToBase:     cfg.ThresholdToBase,
		FullAgents:          cfg.NumAgentsFull,
		SimplifiedAgents:    cfg.NumAgentsSimplified,
		FullBaseline:        cfg.QoEFullBase,
		SimplifiedBaseline:  cfg.QoESimplifiedBase,
		Interval:            cfg.SampleInterval,
		ArrivalRate:         rate,
	})
	s.monitor = NewQoEMonitor(s.sched, s.coll, cfg.QoEFullBase, cfg.SampleInterval)

	s.sched.After(0, s.nextArrival)
	s.controller.Start()
	s.monitor.Start()
	s.sched.Run()

	return s.result(threshold), nil
}

// nextArrival draws an inter-arrival delay and schedules the next request.
// The generator has no terminal state; the horizon cuts it off.
func (s *simulation) nextArrival() {
	s.sched.After(s.rng.ExpFloat64()/s.rate, func() {
		s.nextID++
		req := &Request{ID: s.nextID, ArrivalTime: s.sched.Now()}
		logrus.WithFields(logrus.Fields{"request": req.ID, "time": req.ArrivalTime}).Debug("request arrived")
		s.pool.Acquire(func() { s.enterService(req) })
		s.nextArrival()
	})
}

// enterService runs when the pool grants the request an agent. The QoE
// baseline is the one active at this instant and is not re-sampled later.
func (s *simulation) enterService(req *Request) {
	req.WaitTime = s.sched.Now() - req.ArrivalTime
	req.QoE = math.Max(0, s.controller.Baseline()-s.cfg.Alpha*req.WaitTime)
	s.coll.recordWait(req.WaitTime)
	s.coll.recordQoE(req.QoE)

	serviceTime := s.rng.ExpFloat64() * s.cfg.AvgProcessingTime
	logrus.WithFields(logrus.Fields{
		"request": req.ID,
		"wait":    req.WaitTime,
		"qoe":     req.QoE,
		"mode":    s.controller.Mode().String(),
	}).Debug("request entered service")

	s.sched.After(serviceTime, func() {
		s.completed++
		s.pool.Release()
	})
}

// result reduces the run's collected samples to scalar means. Degenerate
// empty-sample cases resolve to defined fallbacks instead of errors.
func (s *simulation) result(threshold int) models.RunResult {
	toSimplified, toFull := s.controller.Switches()
	return models.RunResult{
		Threshold:            threshold,
		ArrivalRate:          s.rate,
		MeanWaitTime:         s.coll.meanWait(),
		MeanQoE:              s.coll.meanQoE(s.cfg.QoEFullBase),
		MeanExtraAgents:      meanSamples(s.controller.ExtraAgents()),
		CompletedRequests:    s.completed,
		SwitchesToSimplified: toSimplified,
		SwitchesToFull:       toFull,
		QoEOverTime:          s.monitor.Series(),
		ExtraAgentsOverTime:  s.controller.ExtraAgents(),
	}
}

func meanSamples(samples []models.MetricSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, sample := range samples {
		sum += sample.Value
	}
	return sum / float64(len(samples))
}
