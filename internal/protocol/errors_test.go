package protocol

import (
	"strings"
	"testing"
)

func TestIsKnownCode(t *testing.T) {
	for code := range knownCodes {
		if !strings.HasPrefix(code, "E_") {
			t.Fatalf("code %q lacks the E_ prefix", code)
		}
		if !IsKnownCode(code) {
			t.Fatalf("expected known code: %q", code)
		}
	}
	if !IsKnownCode("") {
		t.Fatalf("empty code means success and must be accepted")
	}
	for _, c := range []string{"E_NOT_DEFINED", "e_bad_request", "BAD_REQUEST"} {
		if IsKnownCode(c) {
			t.Fatalf("expected unknown code rejected: %q", c)
		}
	}
}
