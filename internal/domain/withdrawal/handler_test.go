package withdrawal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/paymentmethod"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/wallet"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/response"
)

func TestWriteErrorMapping(t *testing.T) {
	h := NewHandler(nil)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"method not found", paymentmethod.ErrNotFound, http.StatusNotFound, "payment method not found"},
		{"method disabled", paymentmethod.ErrDisabled, http.StatusUnprocessableEntity, "payment method is disabled"},
		{"below minimum", paymentmethod.ErrBelowMinimum, http.StatusUnprocessableEntity, "amount is below the method minimum"},
		{"above maximum", paymentmethod.ErrAboveMaximum, http.StatusUnprocessableEntity, "amount is above the method maximum"},
		{"wallet not found", wallet.ErrNotFound, http.StatusNotFound, "wallet not found"},
		{"wallet not active", wallet.ErrNotActive, http.StatusForbidden, "wallet is not active"},
		{"insufficient funds", wallet.ErrInsufficientFunds, http.StatusUnprocessableEntity, "insufficient funds"},
		{"wrapped sentinel", fmt.Errorf("debit wallet: %w", wallet.ErrInsufficientFunds), http.StatusUnprocessableEntity, "insufficient funds"},
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
