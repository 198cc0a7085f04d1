package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err.Error())
	}
}

func writeErrorCode(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// writeError maps domain and validation errors onto HTTP statuses with the
// stable error envelope clients parse.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrWalletNotFound),
		errors.Is(err, domain.ErrDisputeNotFound),
		errors.Is(err, domain.ErrPayoutNotFound):
		writeErrorCode(w, http.StatusNotFound, "not_found", err.Error())

	case errors.Is(err, domain.ErrNotOrderParty):
		writeErrorCode(w, http.StatusForbidden, "forbidden", err.Error())

	case errors.Is(err, domain.ErrIllegalTransition),
		errors.Is(err, domain.ErrNoChargeReference),
		errors.Is(err, domain.ErrTrackingAlreadySubmitted),
		errors.Is(err, domain.ErrDisputeAlreadyOpen),
		errors.Is(err, domain.ErrDisputeAlreadyResolved):
		writeErrorCode(w, http.StatusConflict, "conflict", err.Error())

	case errors.Is(err, domain.ErrOrderStateChanged):
		writeErrorCode(w, http.StatusConflict, "state_changed", err.Error())

	case errors.Is(err, domain.ErrInsufficientFunds):
		writeErrorCode(w, http.StatusUnprocessableEntity, "insufficient_funds", err.Error())

	case errors.Is(err, domain.ErrAmountMismatch):
		writeErrorCode(w, http.StatusBadRequest, "amount_mismatch", err.Error())

	case errors.Is(err, domain.ErrInvalidSignature):
		writeErrorCode(w, http.StatusUnauthorized, "invalid_signature", err.Error())

	case errors.Is(err, domain.ErrProviderCallFailed):
		writeErrorCode(w, http.StatusBadGateway, "provider_unavailable", err.Error())

	default:
		if st, ok := status.FromError(err); ok && st.Code() == codes.InvalidArgument {
			writeErrorCode(w, http.StatusBadRequest, "invalid_argument", st.Message())
			return
		}
		slog.Error("unhandled handler error", "error", err.Error())
		writeErrorCode(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
