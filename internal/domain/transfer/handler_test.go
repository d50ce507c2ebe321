package transfer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/authcode"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/user"
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
		{"locked account", user.ErrLocked, http.StatusForbidden, "account is locked"},
		{"pin not set", user.ErrPinNotSet, http.StatusUnprocessableEntity, "transaction PIN is not set"},
		{"pin mismatch", user.ErrPinMismatch, http.StatusForbidden, "incorrect PIN"},
		{"code not found", authcode.ErrCodeNotFound, http.StatusNotFound, "authorization code not found"},
		{"code expired", authcode.ErrCodeExpired, http.StatusUnprocessableEntity, "authorization code has expired"},
		{"code already used", authcode.ErrCodeAlreadyUsed, http.StatusConflict, "authorization code already used"},
		{"code type mismatch", authcode.ErrCodeTypeMismatch, http.StatusUnprocessableEntity, "code cannot authorize this operation"},
		{"code amount mismatch", authcode.ErrCodeAmountMismatch, http.StatusUnprocessableEntity, "amount does not match the code"},
		{"recipient not found", ErrRecipientNotFound, http.StatusNotFound, "recipient account not found"},
		{"self transfer", ErrSelfTransfer, http.StatusBadRequest, "cannot transfer to your own account"},
		{"insufficient funds", wallet.ErrInsufficientFunds, http.StatusUnprocessableEntity, "insufficient funds"},
		{"wrapped sentinel", fmt.Errorf("resolve code: %w", authcode.ErrCodeExpired), http.StatusUnprocessableEntity, "authorization code has expired"},
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
			if resp.Success {
				t.Fatal("expected success=false")
			}
			if resp.Error == nil || resp.Error.Message != tt.message {
				t.Fatalf("error = %+v, want message %q", resp.Error, tt.message)
			}
		})
	}
}
