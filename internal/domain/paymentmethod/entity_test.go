package paymentmethod

import "testing"

func TestFee(t *testing.T) {
	cases := []struct {
		name   string
		method Method
		amount int64
		want   int64
	}{
		{"no fee", Method{}, 10000, 0},
		{"fixed only", Method{FeeFixed: 250}, 10000, 250},
		{"percentage only", Method{FeePercentage: 1.5}, 10000, 150},
		{"fixed wins over percentage", Method{FeeFixed: 250, FeePercentage: 1.5}, 10000, 250},
		{"percentage truncates", Method{FeePercentage: 1.5}, 99, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.method.Fee(tc.amount); got != tc.want {
				t.Fatalf("Fee(%d) = %d, want %d", tc.amount, got, tc.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	svc := NewService(nil, nil)
	m := &Method{
		Enabled:           true,
		MinAmount:         1000,
		RequiresReference: true,
	}

	if err := svc.Validate(m, 5000, "TXN-1"); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if err := svc.Validate(m, 500, "TXN-1"); err != ErrBelowMinimum {
		t.Fatalf("expected ErrBelowMinimum, got %v", err)
	}
	if err := svc.Validate(m, 5000, ""); err != ErrReferenceRequired {
		t.Fatalf("expected ErrReferenceRequired, got %v", err)
	}

	m.Enabled = false
	if err := svc.Validate(m, 5000, "TXN-1"); err != ErrDisabled {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
