package background

import (
	"context"
	"log/slog"
	"time"

	disputeusecase "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dispute"
	orderusecase "github.com/PrecisionBh/melo-escrow-service/internal/usecase/order"
)

// Tasks owns the periodic sweeps: expired returns release to the seller,
// expired disputes resolve for the opener, and open reconciliation gaps get
// retried. Each sweep errors independently; one bad cycle never stops the
// ticker.
type Tasks struct {
	OrderUC   orderusecase.OrderUsecase
	DisputeUC disputeusecase.DisputeUsecase
	Interval  time.Duration
}

func NewTasks(orderUC orderusecase.OrderUsecase, disputeUC disputeusecase.DisputeUsecase, interval time.Duration) *Tasks {
	return &Tasks{OrderUC: orderUC, DisputeUC: disputeUC, Interval: interval}
}

func (t *Tasks) StartAll(ctx context.Context) {
	go t.run(ctx, "expired_returns", t.OrderUC.ReleaseExpiredReturns)
	go t.run(ctx, "expired_disputes", t.DisputeUC.ResolveExpiredDisputes)
	go t.run(ctx, "reconciliation_retry", t.OrderUC.RetryReconciliation)
}

func (t *Tasks) run(ctx context.Context, name string, sweep func(context.Context) error) {
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("background sweep stopped", "sweep", name)
			return
		case <-ticker.C:
			if err := sweep(ctx); err != nil {
				slog.Error("background sweep failed", "sweep", name, "error", err.Error())
			}
		}
	}
}
