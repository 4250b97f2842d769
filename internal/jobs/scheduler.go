package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/harmonymatch/admin-gateway/internal/auth"
	"github.com/harmonymatch/admin-gateway/internal/config"
	"github.com/harmonymatch/admin-gateway/internal/models"
	"github.com/harmonymatch/admin-gateway/internal/services"
)

// Scheduler triggers backend maintenance on a cron schedule. Scheduled runs
// carry the service token instead of an operator's token.
type Scheduler struct {
	cron        *cron.Cron
	maintenance *services.MaintenanceService
	cfg         config.MaintenanceConfig
	logger      *slog.Logger
}

// NewScheduler creates a new Scheduler
func NewScheduler(maintenance *services.MaintenanceService, cfg config.MaintenanceConfig, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		maintenance: maintenance,
		cfg:         cfg,
		logger:      logger,
	}
}

// Start registers the maintenance job and starts the cron loop. A no-op when
// no schedule is configured.
func (s *Scheduler) Start() error {
	if s.cfg.Schedule == "" {
		s.logger.Info("maintenance schedule disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.runMaintenance); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("maintenance schedule started",
		slog.String("schedule", s.cfg.Schedule),
	)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		s.logger.Warn("maintenance job did not finish before shutdown")
	}
}

func (s *Scheduler) runMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	claims, err := auth.ParseClaims(s.cfg.ServiceToken)
	if err != nil {
		// The token may be an opaque backend credential rather than a JWT;
		// the run still identifies itself as the scheduler.
		claims = &models.TokenClaims{}
	}
	if claims.Operator() == "" {
		claims.Username = "scheduler"
	}
	ctx = auth.WithCredentials(ctx, s.cfg.ServiceToken, claims)

	if _, err := s.maintenance.Run(ctx); err != nil {
		s.logger.Error("scheduled maintenance run failed",
			slog.Any("error", err),
		)
		return
	}
	s.logger.Info("scheduled maintenance run completed")
}
