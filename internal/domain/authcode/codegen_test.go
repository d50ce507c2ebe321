package authcode

import (
	"strings"
	"testing"
)

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		code := generateCode()
		if len(code) != codeLength {
			t.Fatalf("expected %d chars, got %q", codeLength, code)
		}
		for _, c := range code {
			if !strings.ContainsRune(codeAlphabet, c) {
				t.Fatalf("code %q contains %q outside the alphabet", code, c)
			}
		}
		if seen[code] {
			t.Fatalf("duplicate code generated: %q", code)
		}
		seen[code] = true
	}
}

func TestGenerateCodeOmitsAmbiguousChars(t *testing.T) {
	for _, forbidden := range "0O1I" {
		if strings.ContainsRune(codeAlphabet, forbidden) {
			t.Fatalf("alphabet must not contain %q", forbidden)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"abcd-efgh-jklm", "ABCDEFGHJKLM"},
		{"  ABCD EFGH JKLM  ", "ABCDEFGHJKLM"},
		{"AbCdEfGhJkLm", "ABCDEFGHJKLM"},
		{"ABCDEFGHJKLM", "ABCDEFGHJKLM"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
