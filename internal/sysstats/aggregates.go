package sysstats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mackerelio/go-osstat/cpu"
	"github.com/mackerelio/go-osstat/memory"
	"github.com/mackerelio/go-osstat/uptime"

	"github.com/fudanchii/lcdrus/internal/humanreadable"
)

// Aggregates keeps the latest CPU, memory and uptime samples and renders
// them as a single status line.
type Aggregates struct {
	mu sync.RWMutex

	prevCPUStats    *cpu.Stats
	currentCPUStats *cpu.Stats
	memStats        *memory.Stats
	uptime          time.Duration
}

func NewAggregates() (*Aggregates, error) {
	cpuStats, err := cpu.Get()
	if err != nil {
		return nil, err
	}

	memStats, err := memory.Get()
	if err != nil {
		return nil, err
	}

	uptime, err := uptime.Get()
	if err != nil {
		return nil, err
	}

	return &Aggregates{
		currentCPUStats: cpuStats,
		prevCPUStats:    cpuStats,
		memStats:        memStats,
		uptime:          uptime,
	}, nil
}

// Refresh samples the system every interval until ctx is done.
func (aggr *Aggregates) Refresh(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if err := aggr.sample(); err != nil {
			return fmt.Errorf("sysstats: error sampling: %w", err)
		}
	}
}

func (aggr *Aggregates) sample() error {
	cpuStats, err := cpu.Get()
	if err != nil {
		return err
	}

	memStats, err := memory.Get()
	if err != nil {
		return err
	}

	up, err := uptime.Get()
	if err != nil {
		return err
	}

	aggr.mu.Lock()
	defer aggr.mu.Unlock()

	aggr.prevCPUStats = aggr.currentCPUStats
	aggr.currentCPUStats = cpuStats
	aggr.memStats = memStats
	aggr.uptime = up

	return nil
}

func (aggr *Aggregates) String() string {
	aggr.mu.RLock()
	defer aggr.mu.RUnlock()

	return formatAggregates(aggr.prevCPUStats, aggr.currentCPUStats, aggr.memStats, aggr.uptime)
}

func formatAggregates(prev, curr *cpu.Stats, mem *memory.Stats, up time.Duration) string {
	cpuTotal := float64(curr.Total - prev.Total)

	usrCpu := float64(0)
	sysCpu := float64(0)
	idlCpu := float64(0)

	if cpuTotal != 0 {
		usrCpu = float64(curr.User-prev.User) / cpuTotal * 100
		sysCpu = float64(curr.System-prev.System) / cpuTotal * 100
		idlCpu = float64(curr.Idle-prev.Idle) / cpuTotal * 100
	}

	return fmt.Sprintf("пам:%s, дост:%s, кэш:%s, акт:%s, неакт:%s, своб:%s, цп.польз:%.1f%%, цп.сист:%.1f%%, цп.прост:%.1f%%, работа:%v",
		humanize.IBytes(mem.Total),
		humanize.IBytes(mem.Available),
		humanize.IBytes(mem.Cached),
		humanize.IBytes(mem.Active),
		humanize.IBytes(mem.Inactive),
		humanize.IBytes(mem.Free),
		usrCpu, sysCpu, idlCpu,
		humanreadable.Second(up))
}
