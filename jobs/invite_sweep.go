package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
)

// SweepStore counts invitations that expired unaccepted inside a window.
type SweepStore interface {
	CountExpiredInvitations(ctx context.Context, from, to time.Time) (int64, error)
}

// InviteSweepJob periodically reports invitations that lapsed without being
// accepted. Expiry is derived state, so nothing is mutated; the sweep only
// feeds monitoring.
type InviteSweepJob struct {
	store   SweepStore
	logger  *slog.Logger
	expired prometheus.Counter
	clock   func() time.Time
}

// NewInviteSweepJob initialises the sweep handler.
func NewInviteSweepJob(store SweepStore, logger *slog.Logger, expired prometheus.Counter) *InviteSweepJob {
	return &InviteSweepJob{
		store:   store,
		logger:  logger,
		expired: expired,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the expiry scan.
func (j *InviteSweepJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.store == nil {
		return errors.New("invite sweep: handler not configured")
	}
	var payload InviteSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.WindowHours <= 0 {
		payload.WindowHours = 24
	}

	now := j.clock()
	from := now.Add(-time.Duration(payload.WindowHours) * time.Hour)
	count, err := j.store.CountExpiredInvitations(ctx, from, now)
	if err != nil {
		j.logger.Error("invite sweep failed", slog.Any("error", err))
		return err
	}
	if j.expired != nil && count > 0 {
		j.expired.Add(float64(count))
	}
	j.logger.Info("invite sweep finished",
		slog.Int64("expired", count),
		slog.Int("window_hours", payload.WindowHours))
	return nil
}
