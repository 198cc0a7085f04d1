package httpapi

import (
	"net/http"
	"strconv"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	orderdto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/order"
)

type createOrderRequest struct {
	SellerID          string `json:"seller_id"`
	ListingID         string `json:"listing_id"`
	Quantity          int32  `json:"quantity"`
	ItemPrice         int64  `json:"item_price"`
	ShippingAmount    int64  `json:"shipping_amount"`
	TaxAmount         int64  `json:"tax_amount"`
	BuyerFee          int64  `json:"buyer_fee"`
	Currency          string `json:"currency"`
	ProviderSessionID string `json:"provider_session_id"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}

	output, err := s.orderUC.CreateOrder(r.Context(), &orderdto.CreateOrderInput{
		BuyerID:           userIDFrom(r.Context()),
		SellerID:          req.SellerID,
		ListingID:         req.ListingID,
		Quantity:          req.Quantity,
		ItemPrice:         req.ItemPrice,
		ShippingAmount:    req.ShippingAmount,
		TaxAmount:         req.TaxAmount,
		BuyerFee:          req.BuyerFee,
		Currency:          req.Currency,
		ProviderSessionID: req.ProviderSessionID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, output)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	output, err := s.orderUC.GetOrderByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	caller := userIDFrom(r.Context())
	if caller != output.BuyerID && caller != output.SellerID {
		writeError(w, domain.ErrNotOrderParty)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleGetOrderByNumber(w http.ResponseWriter, r *http.Request) {
	output, err := s.orderUC.GetOrderByDisplayNumber(r.Context(), r.PathValue("number"))
	if err != nil {
		writeError(w, err)
		return
	}
	caller := userIDFrom(r.Context())
	if caller != output.BuyerID && caller != output.SellerID {
		writeError(w, domain.ErrNotOrderParty)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	caller := userIDFrom(r.Context())
	filters := domain.OrderFilters{}
	// The caller only ever lists their own side of the marketplace.
	if r.URL.Query().Get("role") == "seller" {
		filters.SellerID = caller
	} else {
		filters.BuyerID = caller
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		filters.Statuses = []domain.OrderStatus{domain.OrderStatus(raw)}
	}
	page, limit := pagination(r)

	outputs, total, err := s.orderUC.ListOrders(r.Context(), filters, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": outputs,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	output, err := s.orderUC.CancelOrder(r.Context(), r.PathValue("id"), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleMarkShipped(w http.ResponseWriter, r *http.Request) {
	if err := s.orderUC.MarkShipped(r.Context(), r.PathValue("id"), userIDFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "shipped"})
}

func (s *Server) handleConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	if err := s.orderUC.ConfirmDelivery(r.Context(), r.PathValue("id"), userIDFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

type startReturnRequest struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

func (s *Server) handleStartReturn(w http.ResponseWriter, r *http.Request) {
	var req startReturnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	err := s.orderUC.StartReturn(r.Context(), &orderdto.StartReturnInput{
		OrderID: r.PathValue("id"),
		ActorID: userIDFrom(r.Context()),
		Reason:  req.Reason,
		Notes:   req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "return_started"})
}

type returnTrackingRequest struct {
	Tracking string `json:"tracking"`
}

func (s *Server) handleSubmitReturnTracking(w http.ResponseWriter, r *http.Request) {
	var req returnTrackingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	if req.Tracking == "" {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "tracking is required")
		return
	}
	if err := s.orderUC.SubmitReturnTracking(r.Context(), r.PathValue("id"), userIDFrom(r.Context()), req.Tracking); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "return_processing"})
}

func (s *Server) handleConfirmReturnReceipt(w http.ResponseWriter, r *http.Request) {
	if err := s.orderUC.ConfirmReturnReceipt(r.Context(), r.PathValue("id"), userIDFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refunded"})
}

func (s *Server) handleListReconciliation(w http.ResponseWriter, r *http.Request) {
	entries, err := s.orderUC.ListReconciliationGaps(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func pagination(r *http.Request) (page, limit int64) {
	page, _ = strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
