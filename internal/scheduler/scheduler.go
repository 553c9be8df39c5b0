package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"RegimeBoard/internal/dataset"
	"RegimeBoard/internal/metrics"
)

// Scheduler runs periodic dataset refreshes.
type Scheduler struct {
	Cron    *cron.Cron
	Holder  *dataset.Holder
	Metrics *metrics.Registry
	Ctx     context.Context
	log     zerolog.Logger
}

// NewScheduler creates a new Scheduler. Metrics may be nil.
func NewScheduler(ctx context.Context, holder *dataset.Holder, m *metrics.Registry, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Holder:  holder,
		Metrics: m,
		Ctx:     ctx,
		log:     log.With().Str("component", "scheduler").Logger(),
	}
}

// Register schedules the refresh job. An empty expression disables periodic refresh.
func (s *Scheduler) Register(refreshCron string) error {
	if refreshCron == "" {
		s.log.Info().Msg("periodic refresh disabled")
		return nil
	}
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	s.log.Info().Str("cron", refreshCron).Msg("refresh task registered")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RefreshNow runs the refresh task immediately (startup load / manual trigger).
func (s *Scheduler) RefreshNow() error {
	return s.refresh()
}

func (s *Scheduler) refreshTask() {
	if err := s.refresh(); err != nil {
		s.log.Error().Err(err).Msg("scheduled refresh failed")
	}
}

func (s *Scheduler) refresh() error {
	snap, err := s.Holder.Refresh(s.Ctx)
	if s.Metrics != nil {
		if err != nil {
			s.Metrics.ObserveRefresh(0, nil, 0, err)
		} else {
			s.Metrics.ObserveRefresh(len(snap.Prices), snap.ChangePoints, len(snap.Events), nil)
		}
	}
	return err
}
