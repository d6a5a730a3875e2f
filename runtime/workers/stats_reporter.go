package workers

import (
	"chat-hub/contract"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// StatsReporterWorker periodically logs sessions, transfer counters and the
// memory and CPU usage of the server process.
type StatsReporterWorker struct {
	log      *slog.Logger
	source   contract.IStatsSource
	interval time.Duration
}

func NewStatsReporterWorker(log *slog.Logger, source contract.IStatsSource, interval time.Duration) *StatsReporterWorker {
	return &StatsReporterWorker{log: log, source: source, interval: interval}
}

func (w *StatsReporterWorker) Run(ctx context.Context) error {
	if w.interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		w.log.Warn("Process stats unavailable", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.report(p)
			return nil
		case <-ticker.C:
			w.report(p)
		}
	}
}

func (w *StatsReporterWorker) report(p *process.Process) {
	stats := w.source.Stats()
	attrs := []any{
		"clients", stats.Online,
		"rooms", stats.Rooms,
		"active", stats.Transfers.Active,
		"queued", stats.Transfers.Queued,
		"capacity", stats.Transfers.Capacity,
		"completed", stats.Transfers.Completed,
		"failed", stats.Transfers.Failed,
	}
	if rss, cpu, err := selfStats(p); err == nil {
		attrs = append(attrs, "rss_bytes", rss, "cpu_percent", cpu)
	}
	w.log.Info("Server stats", attrs...)
}

// selfStats retrieves the resident memory and CPU usage of p.
func selfStats(p *process.Process) (uint64, float64, error) {
	if p == nil {
		return 0, 0, os.ErrInvalid
	}
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
