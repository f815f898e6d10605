package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mbaye/vsphere-inventory/internal/config"
	"github.com/mbaye/vsphere-inventory/internal/service/inventory"
)

// Scheduler runs inventory collection on the configured cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	collector inventory.Collector
	cfg       config.CollectorConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.CollectorConfig, collector inventory.Collector, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour,
	// dom, month, dow).
	c := cron.New()

	return &Scheduler{
		cron:      c,
		collector: collector,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the collection job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runCollection)
	if err != nil {
		s.logger.Error("failed to schedule inventory collection", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runCollection() {
	s.logger.Info("scheduled inventory collection starting")
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RunTimeout)
	defer cancel()

	snapshot, err := s.collector.Collect(ctx)
	if err != nil {
		s.logger.Error("scheduled inventory collection failed", zap.Error(err))
		return
	}

	s.logger.Info("scheduled inventory collection finished",
		zap.Int("vms", snapshot.VMCount),
		zap.Int("hosts", snapshot.HostCount),
		zap.Int("datastores", snapshot.DatastoreCount))
}
