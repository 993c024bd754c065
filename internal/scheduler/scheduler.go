// Package scheduler drives the poll cycle: fetch, normalize, aggregate,
// decide, broadcast — at a fixed cadence with at most one cycle in flight.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Jainesh-shah/CourtTracker/internal/feed"
	"github.com/Jainesh-shah/CourtTracker/internal/watch"
)

// --------------------------------------------------------------------------
// Collaborator boundaries
// --------------------------------------------------------------------------

// Fetcher produces one normalized snapshot per call. A fetch failure aborts
// only the current cycle.
type Fetcher interface {
	Fetch(ctx context.Context) (*feed.Snapshot, error)
}

// SubscriptionSource reads active subscriptions and commits progress
// updates. Implemented by watch.Store.
type SubscriptionSource interface {
	ActiveSubscriptions(ctx context.Context) ([]watch.Subscription, error)
	UpdateProgress(ctx context.Context, id string, progress watch.Progress, at time.Time) error
}

// Recorder folds a snapshot into history and statistics. Implemented by
// history.Aggregator.
type Recorder interface {
	Record(ctx context.Context, snap *feed.Snapshot) error
}

// Dispatcher delivers one decided alert, fire-and-forget.
type Dispatcher interface {
	Dispatch(ctx context.Context, sub watch.Subscription, alert watch.Alert)
}

// Broadcaster hands each successful cycle's snapshot to the live-update
// channel.
type Broadcaster interface {
	Publish(snap *feed.Snapshot)
}

// Ticker abstracts the recurring trigger so tests can tick by hand.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type intervalTicker struct{ t *time.Ticker }

func (it intervalTicker) C() <-chan time.Time { return it.t.C }
func (it intervalTicker) Stop()               { it.t.Stop() }

// NewTicker returns a Ticker backed by time.Ticker.
func NewTicker(d time.Duration) Ticker {
	return intervalTicker{t: time.NewTicker(d)}
}

// --------------------------------------------------------------------------
// Scheduler
// --------------------------------------------------------------------------

// Config controls the polling cadence and decision fan-out.
type Config struct {
	Interval              time.Duration
	EarlyWarningThreshold int
	Workers               int
}

// Status is a read-only snapshot of scheduler state for health reporting.
type Status struct {
	IsRunning         bool          `json:"is_running"`
	CycleInFlight     bool          `json:"cycle_in_flight"`
	LastCycleTime     time.Time     `json:"last_cycle_time"`
	LastCycleDuration time.Duration `json:"last_cycle_duration_ns"`
	CycleCount        int64         `json:"cycle_count"`
	SkippedTicks      int64         `json:"skipped_ticks"`
	IntervalMS        int64         `json:"interval_ms"`
	LastError         string        `json:"last_error,omitempty"`
}

// Scheduler owns all mutable polling state behind its own lock; nothing here
// is ambient or global. The cycle lock enforces single-flight: a tick that
// fires while a cycle is executing is skipped outright, never queued.
type Scheduler struct {
	cfg         Config
	fetcher     Fetcher
	subs        SubscriptionSource
	recorder    Recorder
	dispatcher  Dispatcher
	broadcaster Broadcaster
	logger      *slog.Logger
	now         func() time.Time

	cycleMu sync.Mutex

	mu     sync.Mutex
	status Status
	latest *feed.Snapshot
}

// New creates a scheduler. Any nil collaborator except fetcher is treated
// as absent and its step skipped.
func New(cfg Config, fetcher Fetcher, subs SubscriptionSource, recorder Recorder,
	dispatcher Dispatcher, broadcaster Broadcaster, logger *slog.Logger) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EarlyWarningThreshold < 1 {
		cfg.EarlyWarningThreshold = watch.DefaultEarlyWarningThreshold
	}
	if cfg.Workers < 1 {
		cfg.Workers = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		cfg:         cfg,
		fetcher:     fetcher,
		subs:        subs,
		recorder:    recorder,
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
		logger:      logger,
		now:         time.Now,
	}
	s.status.IntervalMS = cfg.Interval.Milliseconds()
	return s
}

// Run drives cycles from the ticker until ctx is cancelled. Blocks; intended
// to be called with `go`. Each cycle runs in its own goroutine so a slow
// cycle never delays tick observation — it only causes skips.
func (s *Scheduler) Run(ctx context.Context, ticker Ticker) {
	s.setRunning(true)
	defer s.setRunning(false)
	defer ticker.Stop()

	s.logger.Info("Poll scheduler started", "interval", s.cfg.Interval)

	var wg sync.WaitGroup
	for {
		select {
		case <-ticker.C():
			if !s.cycleMu.TryLock() {
				s.recordSkip()
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer s.cycleMu.Unlock()
				s.runCycle(ctx)
			}()
		case <-ctx.Done():
			wg.Wait()
			s.logger.Info("Poll scheduler stopped")
			return
		}
	}
}

// RunCycle executes one cycle synchronously, waiting for any in-flight cycle
// first. Used by the one-shot poll command.
func (s *Scheduler) RunCycle(ctx context.Context) error {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()
	return s.runCycle(ctx)
}

// Status returns a copy of the current scheduler state.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Latest returns the most recent successful snapshot, or nil before the
// first completed cycle.
func (s *Scheduler) Latest() *feed.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// --------------------------------------------------------------------------
// Cycle
// --------------------------------------------------------------------------

func (s *Scheduler) runCycle(ctx context.Context) error {
	start := s.now()
	s.setInFlight(true)
	defer s.setInFlight(false)

	snap, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.logger.Error("cycle aborted: fetch failed", "error", err)
		s.recordFailure(start, err)
		return err
	}

	// History/statistics are fire-and-forget relative to notifications.
	if s.recorder != nil {
		if err := s.recorder.Record(ctx, snap); err != nil {
			s.logger.Warn("history aggregation failed", "error", err)
		}
	}

	s.decideAll(ctx, snap)

	if s.broadcaster != nil {
		s.broadcaster.Publish(snap)
	}

	s.recordSuccess(start, snap)
	s.logger.Info("cycle complete",
		"courts", len(snap.Courts),
		"active", snap.ActiveCourts(),
		"duration", s.now().Sub(start).Round(time.Millisecond))
	return nil
}

// decideAll runs the state machine over every active subscription. Decisions
// are independent and evaluated in parallel; each subscription's own
// read-modify-write stays confined to one goroutine. A failure on one
// subscription never blocks the rest.
func (s *Scheduler) decideAll(ctx context.Context, snap *feed.Snapshot) {
	if s.subs == nil {
		return
	}
	subs, err := s.subs.ActiveSubscriptions(ctx)
	if err != nil {
		s.logger.Warn("load active subscriptions failed", "error", err)
		return
	}

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Workers)
	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			s.process(ctx, sub, snap)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Scheduler) process(ctx context.Context, sub watch.Subscription, snap *feed.Snapshot) {
	decision := watch.Decide(sub, snap, s.now().UTC(), s.cfg.EarlyWarningThreshold)
	if !decision.Changed {
		return
	}

	// Commit before dispatch: the decision is at-most-once, delivery is
	// best-effort. If the commit fails the alert is withheld so a restart
	// cannot double-send.
	if err := s.subs.UpdateProgress(ctx, sub.ID, decision.Progress, decision.At); err != nil {
		s.logger.Warn("progress update failed", "subscription", sub.ID, "error", err)
		return
	}

	if decision.Alert != nil && s.dispatcher != nil {
		sub.LastSent = decision.Progress
		sub.LastSentAt = &decision.At
		s.dispatcher.Dispatch(ctx, sub, *decision.Alert)
	}
}

// --------------------------------------------------------------------------
// Status bookkeeping
// --------------------------------------------------------------------------

func (s *Scheduler) setRunning(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.IsRunning = v
}

func (s *Scheduler) setInFlight(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.CycleInFlight = v
}

func (s *Scheduler) recordSkip() {
	s.mu.Lock()
	s.status.SkippedTicks++
	n := s.status.SkippedTicks
	s.mu.Unlock()
	s.logger.Warn("tick skipped: cycle still in flight", "skipped_total", n)
}

func (s *Scheduler) recordSuccess(start time.Time, snap *feed.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.CycleCount++
	s.status.LastCycleTime = start
	s.status.LastCycleDuration = s.now().Sub(start)
	s.status.LastError = ""
	s.latest = snap
}

func (s *Scheduler) recordFailure(start time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.LastCycleTime = start
	s.status.LastCycleDuration = s.now().Sub(start)
	s.status.LastError = err.Error()
}
