package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/affiliate-ledger/docs"
	adminhandlers "github.com/GlebRadaev/affiliate-ledger/internal/handlers/admin"
	affiliatehandlers "github.com/GlebRadaev/affiliate-ledger/internal/handlers/affiliates"
	attributionhandlers "github.com/GlebRadaev/affiliate-ledger/internal/handlers/attribution"
	"github.com/GlebRadaev/affiliate-ledger/internal/service"
	"github.com/GlebRadaev/affiliate-ledger/pkg/auth"
	"github.com/GlebRadaev/affiliate-ledger/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers
type AttributionHandler interface {
	Attribute(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
}

type AffiliateHandler interface {
	Enroll(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	Progress(w http.ResponseWriter, r *http.Request)
	Commissions(w http.ResponseWriter, r *http.Request)
	CreateWithdrawal(w http.ResponseWriter, r *http.Request)
	Withdrawals(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	GetAffiliate(w http.ResponseWriter, r *http.Request)
	GetProgress(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
	AssignCoupon(w http.ResponseWriter, r *http.Request)
	Withdrawals(w http.ResponseWriter, r *http.Request)
	Ledger(w http.ResponseWriter, r *http.Request)
	ApproveWithdrawal(w http.ResponseWriter, r *http.Request)
	RejectWithdrawal(w http.ResponseWriter, r *http.Request)
	CompleteWithdrawal(w http.ResponseWriter, r *http.Request)
	ApproveCommission(w http.ResponseWriter, r *http.Request)
	CancelCommission(w http.ResponseWriter, r *http.Request)
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AttributionHandler AttributionHandler
	AffiliateHandler   AffiliateHandler
	AdminHandler       AdminHandler
	JWTService         auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		AttributionHandler: attributionhandlers.New(s.AttributionService),
		AffiliateHandler:   affiliatehandlers.New(s.AffiliateService, s.LedgerService, s.WithdrawalService),
		AdminHandler: adminhandlers.New(
			s.AffiliateService,
			s.CouponService,
			s.LedgerService,
			s.WithdrawalService,
			s.SettingsService,
		),
		JWTService: jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.Middleware,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/attribution", func(r chi.Router) {
			r.Post("/", h.AttributionHandler.Attribute)
			r.Post("/validate", h.AttributionHandler.Validate)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(h.JWTService))

			r.Route("/affiliates", func(r chi.Router) {
				r.Post("/", h.AffiliateHandler.Enroll)
				r.Route("/me", func(r chi.Router) {
					r.Get("/", h.AffiliateHandler.Me)
					r.Get("/progress", h.AffiliateHandler.Progress)
					r.Get("/commissions", h.AffiliateHandler.Commissions)
					r.Post("/withdrawals", h.AffiliateHandler.CreateWithdrawal)
					r.Get("/withdrawals", h.AffiliateHandler.Withdrawals)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.AdminOnly)
				r.Route("/affiliates/{id}", func(r chi.Router) {
					r.Get("/", h.AdminHandler.GetAffiliate)
					r.Get("/progress", h.AdminHandler.GetProgress)
					r.Put("/status", h.AdminHandler.SetStatus)
					r.Put("/coupon", h.AdminHandler.AssignCoupon)
					r.Get("/withdrawals", h.AdminHandler.Withdrawals)
					r.Get("/ledger", h.AdminHandler.Ledger)
				})
				r.Route("/withdrawals/{id}", func(r chi.Router) {
					r.Post("/approve", h.AdminHandler.ApproveWithdrawal)
					r.Post("/reject", h.AdminHandler.RejectWithdrawal)
					r.Post("/complete", h.AdminHandler.CompleteWithdrawal)
				})
				r.Route("/commissions/{id}", func(r chi.Router) {
					r.Post("/approve", h.AdminHandler.ApproveCommission)
					r.Post("/cancel", h.AdminHandler.CancelCommission)
				})
				r.Get("/settings", h.AdminHandler.GetSettings)
				r.Put("/settings", h.AdminHandler.UpdateSettings)
			})
		})
	})

	return r
}
