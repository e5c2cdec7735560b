package api

import (
	"context"
	"time"
)

const (
	reconcileInterval = time.Minute
	reconcileAfter    = 10 * time.Minute
)

// startBackgroundTasks registers the reconciliation sweep that finishes or
// releases transfers stranded mid-settlement by a crash.
func (s *Server) startBackgroundTasks() {
	transferService := newTransferService(s)

	_, err := s.scheduler.AddTask(
		"reconcile-transfers",
		"Reconcile stale transfers",
		func(ctx context.Context) error {
			return transferService.ReconcilePending(ctx, reconcileAfter)
		},
		reconcileInterval,
	)
	if err != nil {
		s.logger.Error(err)
		return
	}

	s.scheduler.Start()
}
