package httpapi

import (
	"net/http"

	disputeusecase "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dispute"
	orderusecase "github.com/PrecisionBh/melo-escrow-service/internal/usecase/order"
	payoutusecase "github.com/PrecisionBh/melo-escrow-service/internal/usecase/payout"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	orderUC   orderusecase.OrderUsecase
	disputeUC disputeusecase.DisputeUsecase
	payoutUC  payoutusecase.PayoutUsecase

	jwtSecret     string
	webhookSecret string

	mux *http.ServeMux
}

func NewServer(
	orderUC orderusecase.OrderUsecase,
	disputeUC disputeusecase.DisputeUsecase,
	payoutUC payoutusecase.PayoutUsecase,
	jwtSecret, webhookSecret string) *Server {

	s := &Server{
		orderUC:       orderUC,
		disputeUC:     disputeUC,
		payoutUC:      payoutUC,
		jwtSecret:     jwtSecret,
		webhookSecret: webhookSecret,
		mux:           http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	// Provider callbacks authenticate by signature, not bearer token.
	s.mux.HandleFunc("POST /webhooks/payment", s.handleProviderWebhook)

	s.mux.HandleFunc("POST /api/orders", s.requireAuth(s.handleCreateOrder))
	s.mux.HandleFunc("GET /api/orders", s.requireAuth(s.handleListOrders))
	s.mux.HandleFunc("GET /api/orders/{id}", s.requireAuth(s.handleGetOrder))
	s.mux.HandleFunc("GET /api/orders/number/{number}", s.requireAuth(s.handleGetOrderByNumber))
	s.mux.HandleFunc("POST /api/orders/{id}/cancel", s.requireAuth(s.handleCancelOrder))
	s.mux.HandleFunc("POST /api/orders/{id}/ship", s.requireAuth(s.handleMarkShipped))
	s.mux.HandleFunc("POST /api/orders/{id}/confirm-delivery", s.requireAuth(s.handleConfirmDelivery))
	s.mux.HandleFunc("POST /api/orders/{id}/return", s.requireAuth(s.handleStartReturn))
	s.mux.HandleFunc("POST /api/orders/{id}/return/tracking", s.requireAuth(s.handleSubmitReturnTracking))
	s.mux.HandleFunc("POST /api/orders/{id}/return/confirm", s.requireAuth(s.handleConfirmReturnReceipt))
	s.mux.HandleFunc("POST /api/orders/{id}/dispute", s.requireAuth(s.handleOpenDispute))

	s.mux.HandleFunc("GET /api/disputes/{id}", s.requireAuth(s.handleGetDispute))
	s.mux.HandleFunc("POST /api/disputes/{id}/respond", s.requireAuth(s.handleRespondDispute))
	s.mux.HandleFunc("POST /api/disputes/{id}/resolve", s.requireAdmin(s.handleResolveDispute))

	s.mux.HandleFunc("GET /api/wallet", s.requireAuth(s.handleGetWallet))
	s.mux.HandleFunc("POST /api/payouts/preview", s.requireAuth(s.handlePreviewPayout))
	s.mux.HandleFunc("POST /api/payouts", s.requireAuth(s.handleRequestPayout))
	s.mux.HandleFunc("GET /api/payouts", s.requireAuth(s.handleListPayouts))

	s.mux.HandleFunc("GET /admin/reconciliation", s.requireAdmin(s.handleListReconciliation))

	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.mux.Handle("GET /metrics", promhttp.Handler())
}
