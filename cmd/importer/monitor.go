package main

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/farxc/carteira-devedores/internal/logger"
	"github.com/farxc/carteira-devedores/internal/registry"
	"github.com/farxc/carteira-devedores/internal/store"
)

// lookupMeter counts registry lookups as they pass through to next.
type lookupMeter struct {
	next     registry.Lookup
	inFlight atomic.Int64
	done     atomic.Int64
	failed   atomic.Int64
}

var _ registry.Lookup = (*lookupMeter)(nil)

func newLookupMeter(next registry.Lookup) *lookupMeter {
	return &lookupMeter{next: next}
}

func (m *lookupMeter) Fetch(ctx context.Context, taxID string) (*store.RegistryData, error) {
	m.inFlight.Add(1)
	defer m.inFlight.Add(-1)

	data, err := m.next.Fetch(ctx, taxID)
	m.done.Add(1)
	if err != nil {
		m.failed.Add(1)
	}
	return data, err
}

type RunStats struct {
	PeakInFlight  int64
	Lookups       int64
	FailedLookups int64
	PeakHeapMB    uint64
}

// progressMonitor periodically logs how far the registry enrichment got and
// how much heap the batch holds. meter may be nil when nothing is enriched.
type progressMonitor struct {
	meter *lookupMeter
	log   *logger.Logger

	mu    sync.Mutex
	stats RunStats

	quit    chan struct{}
	stopped chan struct{}
}

func newProgressMonitor(meter *lookupMeter, l *logger.Logger) *progressMonitor {
	return &progressMonitor{
		meter:   meter,
		log:     l,
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (p *progressMonitor) start(interval time.Duration) {
	go func() {
		defer close(p.stopped)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.sample()
			case <-p.quit:
				return
			}
		}
	}()
}

func (p *progressMonitor) sample() {
	const component = "Monitor"

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	heapMB := mem.HeapAlloc / 1024 / 1024

	p.mu.Lock()
	defer p.mu.Unlock()

	if heapMB > p.stats.PeakHeapMB {
		p.stats.PeakHeapMB = heapMB
	}
	if p.meter == nil {
		p.log.Debug(component, "heapMB=%d", heapMB)
		return
	}

	inFlight := p.meter.inFlight.Load()
	if inFlight > p.stats.PeakInFlight {
		p.stats.PeakInFlight = inFlight
	}
	p.stats.Lookups = p.meter.done.Load()
	p.stats.FailedLookups = p.meter.failed.Load()

	p.log.Debug(component, "lookups inFlight=%d done=%d failed=%d heapMB=%d",
		inFlight, p.stats.Lookups, p.stats.FailedLookups, heapMB)
}

// stop ends sampling and returns the totals, including lookups finished
// after the last tick.
func (p *progressMonitor) stop() RunStats {
	close(p.quit)
	<-p.stopped
	p.sample()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
