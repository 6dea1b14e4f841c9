package models

// MetricSample is a (simulated time, value) observation recorded by the
// periodic monitors during a single run.
type MetricSample struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// RunResult holds the reduced metrics of one simulation run for a single
// (threshold, arrival rate) pair. It is shared across packages to report
// sweep outcomes.
type RunResult struct {
	Threshold   int     `json:"threshold"`
	ArrivalRate float64 `json:"arrival_rate"`

	MeanWaitTime    float64 `json:"mean_wait_time"`
	MeanQoE         float64 `json:"mean_qoe"`
	MeanExtraAgents float64 `json:"mean_extra_agents"`

	CompletedRequests    int `json:"completed_requests"`
	SwitchesToSimplified int `json:"switches_to_simplified"`
	SwitchesToFull       int `json:"switches_to_full"`

	// Diagnostic time series consumed by external plotting; discarded by the
	// sweep tables.
	QoEOverTime         []MetricSample `json:"-"`
	ExtraAgentsOverTime []MetricSample `json:"-"`
}

// SweepResult maps each switch-to-simplified threshold to the ordered run
// results, one per arrival rate. It outlives the individual runs.
type SweepResult struct {
	ArrivalRates []float64
	Thresholds   []int
	ByThreshold  map[int][]RunResult
}
