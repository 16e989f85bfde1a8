package dispatch

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// deliveryLimit bounds the concurrent deliveries of one batch. Staff
// notifications fan out to every account user.
const deliveryLimit = 4

// Publish delivers fx in the background and returns immediately. Effects are
// delivered concurrently, at most deliveryLimit at a time; one failure does not
// stop the others. Wait blocks until every published batch is done.
func (s *Service) Publish(ctx context.Context, fx domain.SideEffects) {
	total := len(fx.Notifications) + len(fx.Emails)
	if fx.Audit != nil {
		total++
	}
	if total == 0 {
		return
	}

	ctx = context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		var (
			g      errgroup.Group
			failed atomic.Int32
		)
		g.SetLimit(deliveryLimit)
		run := func(deliver func() error) {
			g.Go(func() error {
				if err := deliver(); err != nil {
					failed.Add(1)
					return err
				}
				return nil
			})
		}

		if fx.Audit != nil {
			rec := *fx.Audit
			run(func() error { return s.Audit(ctx, rec) })
		}
		for _, n := range fx.Notifications {
			run(func() error { return s.Notify(ctx, n) })
		}
		for _, e := range fx.Emails {
			run(func() error { return s.Email(ctx, e) })
		}

		if err := g.Wait(); err != nil {
			s.log.WarnContext(ctx, "side effects incomplete",
				slog.Int("failed", int(failed.Load())),
				slog.Int("total", total),
				slog.String("first_error", err.Error()),
			)
		}
	}()
}

// Wait blocks until all published side effects have been delivered or have
// failed.
func (s *Service) Wait() {
	s.wg.Wait()
}
