package sim

import "fmt"

// AgentPool models the shared pool of agents. Its raw capacity is fixed for
// the whole run at the larger of the two mode limits, while the effective
// available-agent limit moves with the operating mode. Waiting requests are
// granted strictly first-come-first-served, woken immediately when a slot
// frees or the limit grows; there is no polling.
type AgentPool struct {
	capacity int
	limit    int
	busy     int
	waiters  []func()
}

// NewAgentPool creates a pool with the given raw capacity and initial
// effective limit.
func NewAgentPool(capacity, limit int) *AgentPool {
	if capacity <= 0 || limit <= 0 || limit > capacity {
		panic(fmt.Sprintf("sim: invalid pool sizing capacity=%d limit=%d", capacity, limit))
	}
	return &AgentPool{capacity: capacity, limit: limit}
}

// Acquire requests one agent. grant is invoked as soon as the caller reaches
// the front of the FIFO queue and a slot below the effective limit is free;
// the caller is busy from that instant until it calls Release.
func (p *AgentPool) Acquire(grant func()) {
	p.waiters = append(p.waiters, grant)
	p.dispatch()
}

// Release frees the slot held by one busy agent.
func (p *AgentPool) Release() {
	if p.busy <= 0 {
		panic("sim: release of an idle pool")
	}
	p.busy--
	p.dispatch()
}

// SetLimit changes the effective available-agent limit, waking queued
// requests that the new limit admits. Shrinking below the current busy count
// is allowed: committed agents finish their requests and the pool simply
// stops granting until attrition brings busy under the new limit.
func (p *AgentPool) SetLimit(limit int) {
	if limit <= 0 || limit > p.capacity {
		panic(fmt.Sprintf("sim: invalid limit %d for capacity %d", limit, p.capacity))
	}
	p.limit = limit
	p.dispatch()
}

func (p *AgentPool) dispatch() {
	for len(p.waiters) > 0 && p.busy < p.limit {
		grant := p.waiters[0]
		p.waiters = p.waiters[1:]
		p.busy++
		if p.busy > p.limit {
			panic(fmt.Sprintf("sim: busy count %d exceeds limit %d", p.busy, p.limit))
		}
		grant()
	}
}

// Busy returns the number of agents currently serving requests.
func (p *AgentPool) Busy() int { return p.busy }

// Limit returns the effective available-agent limit.
func (p *AgentPool) Limit() int { return p.limit }

// Waiting returns the number of requests not yet granted an agent.
func (p *AgentPool) Waiting() int { return len(p.waiters) }

// QueueLen returns the number of requests queued beyond the pool's raw
// capacity: requests the capacity itself cannot seat yet, regardless of the
// mode limit. This is the observable the mode controller thresholds against.
func (p *AgentPool) QueueLen() int {
	q := p.busy + len(p.waiters) - p.capacity
	if q < 0 {
		return 0
	}
	return q
}
