package importer

import (
	"context"
	"sync"

	"github.com/roylee0704/gron"

	"sid/internal/importer/interfaces"
	"sid/internal/providers"
	"sid/internal/structures"
)

// Scheduler triggers an import run on a fixed interval in serve mode.
// Runs never overlap: the mutex serializes scheduled triggers, and the
// runner itself rejects a second concurrent run.
type Scheduler struct {
	config *structures.Config
	logger providers.Logger
	runner interfaces.RunnerInterface
	cron   *gron.Cron
	opsMu  sync.Mutex
}

func (s *Scheduler) Init() {
	interval := s.config.Importer.Interval
	if interval <= 0 {
		s.logger.Infof(providers.TypeApp, "Scheduled imports disabled")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		s.logger.Infof(providers.TypeImport, "Scheduled import starting")
		report, err := s.runner.RunImport(context.Background())
		if err != nil {
			s.logger.Errorf(providers.TypeImport, "Scheduled import failed: %s", err)
			return
		}
		s.logger.Infof(providers.TypeImport, "Scheduled import done: inserted=%d updated=%d skipped=%d in %s",
			report.Result.Inserted, report.Result.Updated, report.Result.Skipped, report.Duration)
	})

	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Scheduled imports every %s", interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, runner interfaces.RunnerInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config: config,
		logger: logger,
		runner: runner,
	}
}
