package httpapi

import (
	"net/http"

	disputedto "github.com/PrecisionBh/melo-escrow-service/internal/usecase/dto/dispute"
)

type openDisputeRequest struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
	Evidence    string `json:"evidence"`
}

func (s *Server) handleOpenDispute(w http.ResponseWriter, r *http.Request) {
	var req openDisputeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	output, err := s.disputeUC.OpenDispute(r.Context(), &disputedto.OpenDisputeInput{
		OrderID:     r.PathValue("id"),
		ActorID:     userIDFrom(r.Context()),
		Reason:      req.Reason,
		Description: req.Description,
		Evidence:    req.Evidence,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, output)
}

func (s *Server) handleGetDispute(w http.ResponseWriter, r *http.Request) {
	output, err := s.disputeUC.GetDisputeByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

type respondDisputeRequest struct {
	Evidence string `json:"evidence"`
}

func (s *Server) handleRespondDispute(w http.ResponseWriter, r *http.Request) {
	var req respondDisputeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	err := s.disputeUC.RespondDispute(r.Context(), &disputedto.RespondDisputeInput{
		DisputeID: r.PathValue("id"),
		ActorID:   userIDFrom(r.Context()),
		Evidence:  req.Evidence,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "responded"})
}

type resolveDisputeRequest struct {
	Outcome string `json:"outcome"`
}

func (s *Server) handleResolveDispute(w http.ResponseWriter, r *http.Request) {
	var req resolveDisputeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	err := s.disputeUC.ResolveDispute(r.Context(), &disputedto.ResolveDisputeInput{
		DisputeID:  r.PathValue("id"),
		Outcome:    req.Outcome,
		ResolvedBy: userIDFrom(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "resolved"})
}
