package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSessionSweepSpec runs the sweep every five minutes.
const DefaultSessionSweepSpec = "0 */5 * * * *"

// SessionExpirer removes sessions idle since cutoff.
type SessionExpirer interface {
	ExpireIdle(ctx context.Context, cutoff time.Time) (int64, error)
}

// ExpiryCounter receives the number of sessions removed by each run.
type ExpiryCounter interface {
	SessionsExpired(n int64)
}

// SessionExpiryJob deletes chat sessions whose last update is older than
// the idle TTL.
type SessionExpiryJob struct {
	sessions SessionExpirer
	counter  ExpiryCounter
	idleTTL  time.Duration
	spec     string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
	now      func() time.Time
}

// NewSessionExpiryJob creates the job. spec is a six-field cron expression
// (seconds first); an empty spec uses DefaultSessionSweepSpec.
func NewSessionExpiryJob(
	sessions SessionExpirer,
	counter ExpiryCounter,
	idleTTL time.Duration,
	spec string,
	logger *zap.Logger,
) *SessionExpiryJob {
	if spec == "" {
		spec = DefaultSessionSweepSpec
	}
	return &SessionExpiryJob{
		sessions: sessions,
		counter:  counter,
		idleTTL:  idleTTL,
		spec:     spec,
		timeout:  30 * time.Second,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "session_expiry_job")),
		now:      time.Now,
	}
}

// Start schedules the sweep.
func (j *SessionExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Session expiry job started",
		zap.String("spec", j.spec),
		zap.Duration("idle_ttl", j.idleTTL),
	)
	return nil
}

// Run performs one sweep.
func (j *SessionExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	cutoff := j.now().Add(-j.idleTTL)
	removed, err := j.sessions.ExpireIdle(ctx, cutoff)
	if err != nil {
		j.logger.Error("Session expiry job failed", zap.Error(err))
		return
	}
	if j.counter != nil {
		j.counter.SessionsExpired(removed)
	}
	if removed > 0 {
		j.logger.Info("Expired idle sessions",
			zap.Int64("removed", removed),
			zap.Time("cutoff", cutoff),
		)
	}
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *SessionExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Session expiry job stopped")
}
