package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/hrwallet-backend/internal/transport/middleware"
)

// Routes bundles everything NewRouter mounts. Metrics is optional.
type Routes struct {
	Health         *HealthHandler
	CreditRequests *CreditRequestHandler
	Wallet         *WalletHandler
	Redemptions    *RedemptionHandler
	Notifications  *NotificationHandler
	Admin          *AdminHandler
	Metrics        http.Handler
}

// NewRouter mounts probes at the root and the workflow API under /api/v1.
// outer wraps every route; api wraps only /api/v1.
func NewRouter(rt Routes, outer, api middleware.Middleware) http.Handler {
	r := chi.NewRouter()
	r.Use(outer)

	r.Get("/live", rt.Health.Live)
	r.Get("/ready", rt.Health.Ready)
	r.Get("/health", rt.Health.Health)
	if rt.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(api)

		r.Route("/credit-requests", func(r chi.Router) {
			r.Post("/", rt.CreditRequests.Create)
			r.Get("/", rt.CreditRequests.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.CreditRequests.Get)
				r.Post("/sign", rt.CreditRequests.Sign)
				r.Post("/approve", rt.CreditRequests.Approve)
				r.Post("/reject", rt.CreditRequests.Reject)
				r.Post("/employee-approve", rt.CreditRequests.ApproveByEmployee)
				r.Post("/employee-reject", rt.CreditRequests.RejectByEmployee)
			})
		})

		r.Get("/wallet", rt.Wallet.Get)
		r.Get("/wallet/transactions", rt.Wallet.Transactions)

		r.Route("/redemptions", func(r chi.Router) {
			r.Post("/", rt.Redemptions.Create)
			r.Get("/", rt.Redemptions.List)
			r.Get("/export", rt.Redemptions.Export)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.Redemptions.Get)
				r.Post("/processing", rt.Redemptions.MarkProcessing)
				r.Post("/process", rt.Redemptions.Process)
				r.Post("/reject", rt.Redemptions.Reject)
				r.Post("/proof", rt.Redemptions.RegenerateProof)
			})
		})

		r.Get("/notifications", rt.Notifications.ListUnread)
		r.Post("/notifications/{id}/read", rt.Notifications.MarkRead)

		r.Post("/admin/users/{id}/reconcile-currency", rt.Admin.ReconcileCurrency)
		r.Get("/admin/users/{id}/balance-check", rt.Admin.VerifyBalance)
		r.Get("/admin/audit/{entityType}/{id}", rt.Admin.AuditTrail)
	})

	return r
}
