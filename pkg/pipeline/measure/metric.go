package measure

import (
	"sync"
	"time"
)

type durations struct {
	sum   time.Duration
	count int64
}

func (d *durations) add(v time.Duration) {
	d.sum += v
	d.count++
}

func (d durations) mean() time.Duration {
	if d.count == 0 {
		return 0
	}

	return d.sum / time.Duration(d.count)
}

// DefaultMetric is a mutex protected Metric.
type DefaultMetric struct {
	mu         sync.Mutex
	concurrent int
	compute    durations
	wait       map[string]*durations
	total      time.Duration
}

func newDefaultMetric(concurrent int) *DefaultMetric {
	return &DefaultMetric{
		concurrent: max(concurrent, 1),
		wait:       make(map[string]*durations),
	}
}

func (mt *DefaultMetric) Record(parent string, wait, compute time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.compute.add(compute)

	w, ok := mt.wait[parent]
	if !ok {
		w = &durations{}
		mt.wait[parent] = w
	}
	w.add(wait)
}

func (mt *DefaultMetric) Count() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.compute.count
}

// AVGDuration is the mean computation time per value.
func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return round(mt.compute.mean())
}

// AVGWaitDuration is the mean time the step waited for a value of each parent, divided by
// the step concurrency.
func (mt *DefaultMetric) AVGWaitDuration() map[string]time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	res := make(map[string]time.Duration, len(mt.wait))
	for parent, w := range mt.wait {
		res[parent] = round(w.mean() / time.Duration(mt.concurrent))
	}

	return res
}

func (mt *DefaultMetric) SetTotalDuration(total time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.total = total
}

func (mt *DefaultMetric) TotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		return d.Round(time.Minute)
	case d > time.Second:
		return d.Round(time.Millisecond)
	case d > time.Millisecond:
		return d.Round(time.Microsecond)
	default:
		return d
	}
}
