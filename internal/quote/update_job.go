package quote

import (
	"context"
	"fmt"

	"fxpulse/internal/adapters"
	"fxpulse/internal/domain"
	"fxpulse/internal/platform/metrics"

	"github.com/sirupsen/logrus"
)

type Deps struct {
	Fetcher      adapters.QuoteFetcher
	Store        adapters.SnapshotStore
	Notifier     adapters.Notifier
	Destinations []domain.Destination
	Labels       domain.Labels
	Metrics      *metrics.Metrics
}

type Result struct {
	Quotes   domain.Quotes
	Previous domain.Snapshot
	Message  string
	Report   domain.DeliveryReport
}

// RunUpdate fetches fresh quotes, notifies every destination and persists the new snapshot.
// The snapshot is untouched and nobody is notified when the fetch fails.
func RunUpdate(ctx context.Context, execID string, deps Deps) (Result, error) {
	// STEP 1: previous values, an absent file is a first run
	previous, err := deps.Store.Load(ctx)
	if err != nil {
		deps.Metrics.ObserveRun(metrics.OutcomeSnapshotError)
		return Result{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	// STEP 2: both prices or nothing
	logrus.Infof("Fetching market data from %s; execID: %s", deps.Fetcher.Name(), execID)
	quotes, err := deps.Fetcher.Fetch(ctx)
	if err != nil {
		deps.Metrics.ObserveRun(metrics.OutcomeFetchFailed)
		return Result{}, fmt.Errorf("could not fetch data, message not sent: %w", err)
	}
	deps.Metrics.ObserveQuotes(quotes)

	// STEP 3: message captures the previous values before the snapshot is replaced
	message := ComposeMessage(deps.Labels, quotes, previous)

	// STEP 4: every destination is attempted, failures are only logged
	logrus.Infof("Sending message to %d bot(s); execID: %s", len(deps.Destinations), execID)
	report := deps.Notifier.Notify(ctx, message, deps.Destinations)
	deps.Metrics.ObserveDelivery(report)
	if failed := report.Failed(); failed > 0 {
		logrus.Warnf("%d of %d deliveries failed; execID: %s", failed, len(report.Results), execID)
	}

	// STEP 5: replace the snapshot wholesale
	if err = deps.Store.Save(ctx, domain.FromQuotes(quotes)); err != nil {
		deps.Metrics.ObserveRun(metrics.OutcomeSnapshotError)
		return Result{}, fmt.Errorf("failed to save snapshot: %w", err)
	}
	deps.Metrics.ObserveRun(metrics.OutcomeSuccess)

	logrus.Infof("Market update delivered to %d of %d bot(s); execID: %s", report.Delivered(), len(report.Results), execID)
	return Result{Quotes: quotes, Previous: previous, Message: message, Report: report}, nil
}
