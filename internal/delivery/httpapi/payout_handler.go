package httpapi

import (
	"net/http"

	payoutdto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/payout"
)

type payoutRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
}

func (s *Server) handlePreviewPayout(w http.ResponseWriter, r *http.Request) {
	var req payoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	output, err := s.payoutUC.PreviewPayout(r.Context(), &payoutdto.PreviewPayoutInput{
		UserID: userIDFrom(r.Context()),
		Amount: req.Amount,
		Method: req.Method,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleRequestPayout(w http.ResponseWriter, r *http.Request) {
	var req payoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	output, err := s.payoutUC.RequestPayout(r.Context(), &payoutdto.RequestPayoutInput{
		UserID: userIDFrom(r.Context()),
		Amount: req.Amount,
		Method: req.Method,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, output)
}

func (s *Server) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	output, err := s.payoutUC.GetWallet(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleListPayouts(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	outputs, total, err := s.payoutUC.ListPayouts(r.Context(), userIDFrom(r.Context()), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payouts": outputs,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}
