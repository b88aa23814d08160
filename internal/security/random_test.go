package security

import (
	"strings"
	"testing"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		length   int
		alphabet string
		wantErr  bool
	}{
		{name: "negative length", length: -1, alphabet: "abc", wantErr: true},
		{name: "empty alphabet", length: 1, alphabet: "", wantErr: true},
		{name: "zero length", length: 0, alphabet: "abc"},
		{name: "single character alphabet", length: 8, alphabet: "X"},
		{name: "mixed alphabet", length: 64, alphabet: "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := RandomString(test.length, test.alphabet)
			if test.wantErr {
				if err == nil {
					t.Fatalf("RandomString(%d, %q) expected error, got nil", test.length, test.alphabet)
				}
				return
			}
			if err != nil {
				t.Fatalf("RandomString(%d, %q) returned error: %v", test.length, test.alphabet, err)
			}
			if len(got) != test.length {
				t.Fatalf("RandomString(%d, %q) len = %d, want %d", test.length, test.alphabet, len(got), test.length)
			}
			for _, char := range got {
				if !strings.ContainsRune(test.alphabet, char) {
					t.Fatalf("RandomString produced %q outside alphabet %q", char, test.alphabet)
				}
			}
		})
	}
}

func TestTemporaryPasswordRaisesShortLengths(t *testing.T) {
	t.Parallel()

	password, err := TemporaryPassword(3)
	if err != nil {
		t.Fatalf("TemporaryPassword returned error: %v", err)
	}
	if len(password) != minTemporaryPasswordLength {
		t.Fatalf("expected length %d, got %d", minTemporaryPasswordLength, len(password))
	}
	if strings.ContainsAny(password, "0O1lI") {
		t.Fatalf("expected no look-alike characters, got %q", password)
	}
}
