package settlement

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/ledger"
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
		{"not found", ledger.ErrNotFound, http.StatusNotFound, "transaction not found"},
		{"not pending", ledger.ErrNotPending, http.StatusConflict, "transaction is not pending"},
		{"not completed", ledger.ErrNotCompleted, http.StatusConflict, "transaction is not completed"},
		{"already reversed", ledger.ErrAlreadyReversed, http.StatusConflict, "transaction has already been reversed"},
		{"insufficient funds", wallet.ErrInsufficientFunds, http.StatusUnprocessableEntity, "wallet balance cannot cover the reversal"},
		{"wallet not found", wallet.ErrNotFound, http.StatusNotFound, "wallet not found"},
		{"wrapped sentinel", fmt.Errorf("lock transaction: %w", ledger.ErrNotPending), http.StatusConflict, "transaction is not pending"},
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
