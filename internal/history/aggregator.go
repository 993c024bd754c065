package history

import (
	"context"
	"log/slog"

	"github.com/Jainesh-shah/CourtTracker/internal/feed"
)

// Store is the persistence boundary for history and statistics. The
// aggregator only needs get/put semantics; AppendEntry must swallow
// duplicate natural keys.
type Store interface {
	AppendEntry(ctx context.Context, e Entry) error
	Statistics(ctx context.Context, caseNumber string) (*CaseStatistics, error)
	PutStatistics(ctx context.Context, stats CaseStatistics) error
	ActiveWatchers(ctx context.Context, caseNumber string) (int, error)
}

// Aggregator folds each snapshot into the observation log and the per-case
// statistics.
type Aggregator struct {
	store  Store
	logger *slog.Logger
}

// NewAggregator creates an aggregator over the given store.
func NewAggregator(store Store, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{store: store, logger: logger}
}

// Record processes every record in the snapshot that carries a case number.
// Failures are isolated per record: a bad write is logged and the rest of
// the batch continues. Record itself never fails the cycle.
func (a *Aggregator) Record(ctx context.Context, snap *feed.Snapshot) error {
	for i := range snap.Courts {
		rec := &snap.Courts[i]
		if rec.CaseNumber == "" {
			continue
		}

		if err := a.store.AppendEntry(ctx, EntryFromRecord(*rec)); err != nil {
			a.logger.Warn("append history entry failed",
				"case", rec.CaseNumber, "court", rec.CourtID, "error", err)
		}

		if err := a.updateStatistics(ctx, rec); err != nil {
			a.logger.Warn("update case statistics failed",
				"case", rec.CaseNumber, "error", err)
		}
	}
	return nil
}

// updateStatistics performs the read-modify-write upsert for one record.
func (a *Aggregator) updateStatistics(ctx context.Context, rec *feed.CourtRecord) error {
	stats, err := a.store.Statistics(ctx, rec.CaseNumber)
	if err != nil {
		return err
	}
	if stats == nil {
		stats = &CaseStatistics{CaseNumber: rec.CaseNumber}
	}

	stats.TotalAppearances++
	stats.CourtsSeen = addToSet(stats.CourtsSeen, rec.CourtID)
	if rec.JudgeName != "" {
		stats.JudgesSeen = addToSet(stats.JudgesSeen, rec.JudgeName)
	}

	stats.StatusHistory = append(stats.StatusHistory, StatusPoint{
		CourtID:    rec.CourtID,
		Status:     rec.Status,
		Position:   rec.QueuePosition,
		ObservedAt: rec.ScrapedAt,
	})
	if n := len(stats.StatusHistory); n > MaxStatusHistory {
		stats.StatusHistory = stats.StatusHistory[n-MaxStatusHistory:]
	}

	if watchers, err := a.store.ActiveWatchers(ctx, rec.CaseNumber); err == nil {
		stats.WatchCount = watchers
	} else {
		a.logger.Warn("count active watchers failed", "case", rec.CaseNumber, "error", err)
	}

	stats.UpdatedAt = rec.ScrapedAt
	return a.store.PutStatistics(ctx, *stats)
}

func addToSet(set []string, v string) []string {
	for _, s := range set {
		if s == v {
			return set
		}
	}
	return append(set, v)
}
