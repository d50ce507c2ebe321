package worker

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/authcode"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/ledger"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/notification"
)

const readNotificationRetention = 30 * 24 * time.Hour

// Worker runs the periodic maintenance jobs: purging dead
// authorization codes, flagging stale pending entries for the
// settlement queue, and trimming read notifications.
type Worker struct {
	sched             gocron.Scheduler
	codes             *authcode.Repository
	ledger            *ledger.Repository
	notifications     *notification.Repository
	codeRetention     time.Duration
	pendingStaleAfter time.Duration
}

func New(
	codes *authcode.Repository,
	ledgerRepo *ledger.Repository,
	notifications *notification.Repository,
	codeRetention time.Duration,
	pendingStaleAfter time.Duration,
) (*Worker, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Worker{
		sched:             sched,
		codes:             codes,
		ledger:            ledgerRepo,
		notifications:     notifications,
		codeRetention:     codeRetention,
		pendingStaleAfter: pendingStaleAfter,
	}, nil
}

func (w *Worker) Start() error {
	if _, err := w.sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(w.purgeCodes),
	); err != nil {
		return err
	}

	if _, err := w.sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(w.flagStalePending),
	); err != nil {
		return err
	}

	if _, err := w.sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(w.trimNotifications),
	); err != nil {
		return err
	}

	w.sched.Start()
	log.Info().Msg("maintenance worker started")
	return nil
}

func (w *Worker) Stop() {
	if err := w.sched.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("scheduler shutdown failed")
	}
}

// purgeCodes removes used and expired codes past the retention window.
// Used codes stay long enough for the audit trail to be cross-checked.
func (w *Worker) purgeCodes() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-w.codeRetention)
	n, err := w.codes.PurgeBefore(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("code purge failed")
		return
	}
	if n > 0 {
		log.Info().Int64("purged", n).Msg("authorization codes purged")
	}
}

// flagStalePending warns when entries linger in the settlement queue.
// Nothing is auto-settled; the money already moved (or not) per path
// and only an admin decides the outcome.
func (w *Worker) flagStalePending() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-w.pendingStaleAfter)
	n, err := w.ledger.CountPendingBefore(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("stale pending check failed")
		return
	}
	if n > 0 {
		log.Warn().Int("count", n).Dur("older_than", w.pendingStaleAfter).Msg("stale pending transactions awaiting settlement")
	}
}

func (w *Worker) trimNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := w.notifications.DeleteReadBefore(ctx, time.Now().Add(-readNotificationRetention))
	if err != nil {
		log.Error().Err(err).Msg("notification trim failed")
		return
	}
	if n > 0 {
		log.Info().Int64("deleted", n).Msg("read notifications trimmed")
	}
}
