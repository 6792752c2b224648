// Package scheduler drives the periodic snapshot refresh. One tick walks
// every company and refreshes all of its commercial customers.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pvlabs/riskwatch/internal/clock"
	"github.com/pvlabs/riskwatch/internal/companyctx"
	customerdomain "github.com/pvlabs/riskwatch/internal/customer/domain"
	obsmetrics "github.com/pvlabs/riskwatch/internal/observability/metrics"
	snapshotdomain "github.com/pvlabs/riskwatch/internal/snapshot/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidConfig = errors.New("scheduler requires db, logger, clock and snapshot service")

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	SnapshotSvc snapshotdomain.Service
	Customers   customerdomain.Repository
	Config      Config `optional:"true"`
}

type Scheduler struct {
	db          *gorm.DB
	log         *zap.Logger
	cfg         Config
	clock       clock.Clock
	snapshotSvc snapshotdomain.Service
	customers   customerdomain.Repository
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil || p.Log == nil || p.Clock == nil || p.SnapshotSvc == nil || p.Customers == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		db:          p.DB,
		log:         p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:         p.Config.withDefaults(),
		clock:       p.Clock,
		snapshotSvc: p.SnapshotSvc,
		customers:   p.Customers,
	}, nil
}

func (s *Scheduler) runJob(
	parent context.Context,
	name string,
	timeout time.Duration,
	fn func(ctx context.Context) error,
) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	schedMetrics := obsmetrics.Scheduler()
	schedMetrics.IncJobRun(name)

	err := fn(ctx)
	schedMetrics.ObserveJobDuration(name, time.Since(start))
	if err == nil {
		return nil
	}

	// A deadline is a soft timeout: log it, count it, keep the loop alive.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		schedMetrics.IncJobTimeout(name)
		s.log.Warn("job timed out",
			zap.String("job", name),
			zap.Duration("timeout", timeout),
			zap.Error(err),
		)
		return nil
	}

	schedMetrics.IncJobError(name)
	return fmt.Errorf("%s: %w", name, err)
}

// RunOnce refreshes the KPI snapshots of every company sequentially.
func (s *Scheduler) RunOnce(parent context.Context) error {
	return s.runJob(parent, "refresh_kpis", s.cfg.JobTimeout, s.RefreshKPIsJob)
}

func (s *Scheduler) RefreshKPIsJob(ctx context.Context) error {
	companyIDs, err := s.customers.ListCompanyIDs(ctx, s.db)
	if err != nil {
		return fmt.Errorf("list companies: %w", err)
	}

	var errs error
	for _, companyID := range companyIDs {
		companyCtx := companyctx.WithCompanyID(ctx, int64(companyID))
		report, err := s.snapshotSvc.Refresh(companyCtx, snapshotdomain.RefreshRequest{})
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("company %s: %w", companyID, err))
			continue
		}
		s.log.Info("company snapshots refreshed",
			zap.String("company_id", companyID.String()),
			zap.Int("refreshed", report.Refreshed),
			zap.Int("failed", report.Failed),
		)
	}
	return errs
}

// RunForever ticks RunOnce on the configured interval until ctx is canceled.
func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	s.log.Info("scheduler started", zap.Duration("interval", s.cfg.RunInterval))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.log.Error("scheduled refresh failed", zap.Error(err))
			}
		}
	}
}
