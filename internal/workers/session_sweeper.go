package workers

import (
	"context"
	"time"

	"github.com/handsoff/console/pkg/logger"
)

// StaleSessionDeleter removes signed-out sessions and sessions idle since
// before cutoff.
type StaleSessionDeleter interface {
	DeleteStale(cutoff time.Time) (int64, error)
}

// SessionSweeper periodically deletes cleared and idle sessions so the
// session table does not grow with every anonymous visit.
type SessionSweeper struct {
	*BaseWorker
	sessions StaleSessionDeleter
	idleTTL  time.Duration
	interval time.Duration
	now      func() time.Time
}

func NewSessionSweeper(workerID string, sessions StaleSessionDeleter, idleTTL, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		BaseWorker: NewBaseWorker(workerID),
		sessions:   sessions,
		idleTTL:    idleTTL,
		interval:   interval,
		now:        time.Now,
	}
}

// Start sweeps once right away, then on every interval.
func (w *SessionSweeper) Start(ctx context.Context) error {
	w.setRunning(true)
	defer w.setRunning(false)
	logger.WithField("worker", w.WorkerID).Info("session sweeper started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Sweep()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.StopChan:
			return nil
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep runs one deletion pass and returns the number of removed sessions.
func (w *SessionSweeper) Sweep() int64 {
	cutoff := w.now().Add(-w.idleTTL)
	n, err := w.sessions.DeleteStale(cutoff)
	if err != nil {
		logger.WithError(err).WithField("worker", w.WorkerID).Error("failed to delete stale sessions")
		return 0
	}
	if n > 0 {
		logger.WithField("worker", w.WorkerID).WithField("deleted", n).Info("deleted stale sessions")
	}
	return n
}
