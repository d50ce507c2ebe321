package deposit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/authcode"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/paymentmethod"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/wallet"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/response"
)

func TestWriteErrorMapping(t *testing.T) {
	h := NewHandler(nil, "USD")

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"code not found", authcode.ErrCodeNotFound, http.StatusNotFound, "authorization code not found"},
		{"code expired", authcode.ErrCodeExpired, http.StatusUnprocessableEntity, "authorization code has expired"},
		{"code already used", authcode.ErrCodeAlreadyUsed, http.StatusConflict, "authorization code already used"},
		{"code type mismatch", authcode.ErrCodeTypeMismatch, http.StatusUnprocessableEntity, "code cannot authorize this operation"},
		{"code amount mismatch", authcode.ErrCodeAmountMismatch, http.StatusUnprocessableEntity, "amount does not match the code"},
		{"invalid amount", wallet.ErrInvalidAmount, http.StatusBadRequest, "amount must be positive"},
		{"wallet not active", wallet.ErrNotActive, http.StatusForbidden, "wallet is not active"},
		{"method not found", paymentmethod.ErrNotFound, http.StatusNotFound, "payment method not found"},
		{"method disabled", paymentmethod.ErrDisabled, http.StatusUnprocessableEntity, "payment method is disabled"},
		{"below minimum", paymentmethod.ErrBelowMinimum, http.StatusUnprocessableEntity, "amount is below the method minimum"},
		{"above maximum", paymentmethod.ErrAboveMaximum, http.StatusUnprocessableEntity, "amount is above the method maximum"},
		{"reference required", paymentmethod.ErrReferenceRequired, http.StatusBadRequest, "payment reference is required for this method"},
		{"wrapped sentinel", fmt.Errorf("validate method: %w", paymentmethod.ErrDisabled), http.StatusUnprocessableEntity, "payment method is disabled"},
		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.writeError(rec, tt.err)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			var resp response.Response
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if resp.Error == nil || resp.Error.Message != tt.message {
				t.Fatalf("error = %+v, want message %q", resp.Error, tt.message)
			}
		})
	}
}
