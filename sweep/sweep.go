// Package sweep iterates the (threshold, arrival rate) grid, running one
// independent simulation per cell. Runs share nothing, so they can execute
// on a bounded worker pool in parallel.
package sweep

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"qoe-simulator/config"
	"qoe-simulator/metrics"
	"qoe-simulator/models"
	"qoe-simulator/sim"
)

// RunFunc executes one simulation run. It is injectable so the driver stays
// decoupled from simulation internals.
type RunFunc func(cfg config.Config, threshold int, rate float64, seed int64) (models.RunResult, error)

// Options tunes sweep execution.
type Options struct {
	// Workers is the number of runs executing concurrently. Values below 1
	// mean sequential execution.
	Workers int
}

type job struct {
	thresholdIdx int
	rateIdx      int
}

// Run sweeps the configured grid with the real simulation core.
func Run(cfg config.Config, opts Options) (*models.SweepResult, error) {
	return RunWith(cfg, sim.Run, opts)
}

// RunWith sweeps the grid using the given run function. Each run derives its
// own seed from the base seed and its grid position, so results are
// reproducible regardless of worker count or completion order.
func RunWith(cfg config.Config, runFn RunFunc, opts Options) (*models.SweepResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	result := &models.SweepResult{
		ArrivalRates: cfg.ArrivalRates,
		Thresholds:   cfg.QueueThresholds,
		ByThreshold:  make(map[int][]models.RunResult, len(cfg.QueueThresholds)),
	}
	for _, threshold := range cfg.QueueThresholds {
		result.ByThreshold[threshold] = make([]models.RunResult, len(cfg.ArrivalRates))
	}

	jobs := make(chan job)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				threshold := cfg.QueueThresholds[j.thresholdIdx]
				rate := cfg.ArrivalRates[j.rateIdx]

				start := time.Now()
				res, err := runFn(cfg, threshold, rate, runSeed(cfg.Seed, j.thresholdIdx, j.rateIdx))
				metrics.RunDurationSeconds.Observe(time.Since(start).Seconds())

				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else {
					result.ByThreshold[threshold][j.rateIdx] = res
					recordRun(res)
				}
				mu.Unlock()
			}
		}()
	}

	for ti := range cfg.QueueThresholds {
		logrus.WithField("threshold", cfg.QueueThresholds[ti]).Info("sweeping threshold")
		for ri := range cfg.ArrivalRates {
			jobs <- job{thresholdIdx: ti, rateIdx: ri}
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}

// runSeed spreads the base seed across the grid so every cell gets a
// distinct, position-stable stream.
func runSeed(base int64, thresholdIdx, rateIdx int) int64 {
	return base + int64(thresholdIdx)*1_000_003 + int64(rateIdx)*10_007
}

func recordRun(res models.RunResult) {
	labels := metrics.RunLabels(res.Threshold, res.ArrivalRate)
	metrics.MeanWaitTime.With(labels).Set(res.MeanWaitTime)
	metrics.MeanQoE.With(labels).Set(res.MeanQoE)
	metrics.MeanExtraAgents.With(labels).Set(res.MeanExtraAgents)
	metrics.RequestsCompletedTotal.Add(float64(res.CompletedRequests))
	metrics.ModeSwitchesTotal.WithLabelValues("to_simplified").Add(float64(res.SwitchesToSimplified))
	metrics.ModeSwitchesTotal.WithLabelValues("to_full").Add(float64(res.SwitchesToFull))
	metrics.RunsCompletedTotal.Inc()
}
