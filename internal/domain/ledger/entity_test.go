package ledger

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusFailed, false},
		{StatusFailed, StatusCompleted, false},
		{StatusCancelled, StatusCompleted, false},
	}
	for _, tc := range cases {
		if got := ValidTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("ValidTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestNewReference(t *testing.T) {
	ref := NewReference(PrefixDeposit)
	if !strings.HasPrefix(ref, "DEP-") {
		t.Fatalf("expected DEP- prefix, got %q", ref)
	}
	suffix := strings.TrimPrefix(ref, "DEP-")
	if len(suffix) != 10 {
		t.Fatalf("expected 10-char suffix, got %q", suffix)
	}
	for _, c := range suffix {
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			t.Fatalf("reference %q contains invalid char %q", ref, c)
		}
	}

	if NewReference(PrefixDeposit) == ref {
		t.Fatal("two references should not collide")
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	admin := uuid.New()
	tx := &Transaction{}
	tx.SetMetadata(&Metadata{
		Wire: &WireMetadata{
			BeneficiaryName: "Jane Roe",
			BeneficiaryBank: "First National",
			AccountNumber:   "12345678",
			SwiftCode:       "FNBKUS33",
		},
	})

	m := tx.GetMetadata()
	if m.Wire == nil || m.Wire.BeneficiaryBank != "First National" {
		t.Fatalf("wire metadata lost: %+v", m)
	}
	if m.Settlement != nil {
		t.Fatal("settlement branch should be empty")
	}

	// settlement outcome is layered on without clobbering the wire branch
	m.Settlement = &SettlementMetadata{SettledBy: admin, Outcome: "approved"}
	tx.SetMetadata(m)

	m = tx.GetMetadata()
	if m.Wire == nil || m.Settlement == nil {
		t.Fatalf("expected both branches after settlement, got %+v", m)
	}
	if m.Settlement.SettledBy != admin {
		t.Fatalf("settled_by mismatch: %s", m.Settlement.SettledBy)
	}
}

func TestIsReversed(t *testing.T) {
	tx := &Transaction{}
	if tx.IsReversed() {
		t.Fatal("fresh transaction must not be reversed")
	}
	tx.ReversedTransactionID = uuid.NullUUID{UUID: uuid.New(), Valid: true}
	if !tx.IsReversed() {
		t.Fatal("linked transaction must report reversed")
	}
}
