package adapters

import (
	"context"
	"fxpulse/internal/domain"
)

type QuoteFetcher interface {
	Name() string
	Fetch(ctx context.Context) (domain.Quotes, error)
}

type SnapshotStore interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
}

type Notifier interface {
	Notify(ctx context.Context, message string, destinations []domain.Destination) domain.DeliveryReport
}
