package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/hrwallet-backend/internal/adapter/gcs"
	"github.com/heartmarshall/hrwallet-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/hrwallet-backend/internal/adapter/postgres/audit"
	creditrepo "github.com/heartmarshall/hrwallet-backend/internal/adapter/postgres/creditrequest"
	"github.com/heartmarshall/hrwallet-backend/internal/adapter/postgres/directory"
	"github.com/heartmarshall/hrwallet-backend/internal/adapter/postgres/notification"
	"github.com/heartmarshall/hrwallet-backend/internal/adapter/postgres/policy"
	redemptionrepo "github.com/heartmarshall/hrwallet-backend/internal/adapter/postgres/redemption"
	walletrepo "github.com/heartmarshall/hrwallet-backend/internal/adapter/postgres/wallet"
	"github.com/heartmarshall/hrwallet-backend/internal/adapter/proof"
	"github.com/heartmarshall/hrwallet-backend/internal/adapter/pubsub"
	"github.com/heartmarshall/hrwallet-backend/internal/adapter/redislock"
	"github.com/heartmarshall/hrwallet-backend/internal/adapter/xlsx"
	"github.com/heartmarshall/hrwallet-backend/internal/config"
	"github.com/heartmarshall/hrwallet-backend/internal/service/creditrequest"
	"github.com/heartmarshall/hrwallet-backend/internal/service/currency"
	"github.com/heartmarshall/hrwallet-backend/internal/service/dispatch"
	"github.com/heartmarshall/hrwallet-backend/internal/service/ledger"
	"github.com/heartmarshall/hrwallet-backend/internal/service/redemption"
)

// proofIssuer is printed in the header of every proof document.
const proofIssuer = "HR Wallet"

// Services is the wired workflow graph shared by the server and walletctl.
type Services struct {
	Pool           *pgxpool.Pool
	Users          *directory.Repo
	CreditRequests *creditrequest.Service
	Ledger         *ledger.Service
	Currency       *currency.Service
	Redemptions    *redemption.Service
	Dispatch       *dispatch.Service
	Notifications  *notification.Repo
	Audit          *auditrepo.Repo

	// Checks are the configured optional backends, for health reporting.
	Checks []BackendCheck

	log     *slog.Logger
	closers []func() error
}

// BackendCheck is a health probe for one backend. Required backends sit on
// the posting path; the others only carry best-effort side effects.
type BackendCheck struct {
	Name     string
	Ping     func(ctx context.Context) error
	Required bool
}

// Wire connects to PostgreSQL and every configured optional backend and
// builds the services. Redis, Pub/Sub and Cloud Storage are skipped when
// their configuration is empty. Call Close when done.
func Wire(ctx context.Context, cfg *config.Config, log *slog.Logger) (_ *Services, err error) {
	s := &Services{log: log}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	s.Pool = pool
	s.closers = append(s.closers, func() error { pool.Close(); return nil })

	tx := postgres.NewTxManager(pool)
	users := directory.New(pool)
	s.Users = users
	wallets := walletrepo.New(pool)
	requests := creditrepo.New(pool)
	redemptions := redemptionrepo.New(pool)
	audit := auditrepo.New(pool)
	s.Audit = audit
	s.Notifications = notification.New(pool)

	s.Dispatch = dispatch.NewService(log, audit, s.Notifications, cfg.Wallet.SideEffectTimeout)
	s.Currency = currency.NewService(log, users, wallets, requests, redemptions, audit, tx, cfg.Wallet.ReconcileWorkers)
	s.Ledger = ledger.NewService(log, wallets, s.Currency, tx)
	s.CreditRequests = creditrequest.NewService(log, requests, users, policy.New(pool), s.Ledger, s.Dispatch, cfg.Wallet.MaxAmount)
	s.Redemptions = redemption.NewService(log, redemptions, s.Ledger, s.Currency, users, s.Dispatch, xlsx.NewExporter())

	if cfg.Redis.Enabled() {
		rdb, err := redislock.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		s.closers = append(s.closers, rdb.Close)
		s.Checks = append(s.Checks, BackendCheck{
			Name:     "redis",
			Ping:     func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			Required: true,
		})
		s.Ledger.SetLocker(redislock.New(log, rdb, cfg.Wallet.LockTTL, cfg.Wallet.LockWait))
		log.InfoContext(ctx, "wallet locks via redis", slog.String("addr", cfg.Redis.Addr))
	}

	if cfg.PubSub.Enabled() {
		pub, err := pubsub.New(ctx, cfg.PubSub)
		if err != nil {
			return nil, fmt.Errorf("connect pubsub: %w", err)
		}
		s.closers = append(s.closers, pub.Close)
		s.Checks = append(s.Checks, BackendCheck{Name: "pubsub", Ping: pub.Ping})
		s.Dispatch.SetEmailSender(pub)
		log.InfoContext(ctx, "workflow emails via pubsub", slog.String("topic", cfg.PubSub.EmailTopic))
	}

	if cfg.Storage.Enabled() {
		store, err := gcs.New(ctx, cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("connect storage: %w", err)
		}
		s.closers = append(s.closers, store.Close)
		s.Checks = append(s.Checks, BackendCheck{Name: "storage", Ping: store.Ping})
		s.Redemptions.EnableProofs(proof.NewRenderer(proofIssuer), store, cfg.Wallet.ProofTimeout)
		log.InfoContext(ctx, "redemption proofs enabled", slog.String("bucket", cfg.Storage.Bucket))
	}

	return s, nil
}

// Close drains background side effects and proof generation, then releases
// every backend in reverse order of acquisition.
func (s *Services) Close() {
	if s.Redemptions != nil {
		s.Redemptions.Wait()
	}
	if s.Dispatch != nil {
		s.Dispatch.Wait()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.log.Warn("close backend", slog.String("error", err.Error()))
		}
	}
	s.closers = nil
}
