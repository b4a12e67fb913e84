package mfa

import "testing"

func TestGenerateBackupCodes(t *testing.T) {
	t.Parallel()

	plain, hashed, err := GenerateBackupCodes(5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(plain) != 5 || len(hashed) != 5 {
		t.Fatalf("got %d plain / %d hashed, want 5 each", len(plain), len(hashed))
	}
	for i, code := range plain {
		if len(code) != backupCodeLength {
			t.Fatalf("code %q length = %d, want %d", code, len(code), backupCodeLength)
		}
		if HashCode(code) != hashed[i] {
			t.Fatalf("hash mismatch for code %q", code)
		}
	}
}

func TestConsumeBackupCodeRemovesMatch(t *testing.T) {
	t.Parallel()

	plain, hashed, err := GenerateBackupCodes(3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	remaining, ok := ConsumeBackupCode(plain[1], hashed)
	if !ok {
		t.Fatal("expected code to match")
	}
	if len(remaining) != 2 {
		t.Fatalf("remaining = %d, want 2", len(remaining))
	}

	// The consumed hash is gone; the others survive.
	for _, h := range remaining {
		if h == HashCode(plain[1]) {
			t.Fatal("consumed hash should have been removed")
		}
	}

	// Replay fails against the reduced set.
	if _, ok := ConsumeBackupCode(plain[1], remaining); ok {
		t.Fatal("expected replayed code to miss")
	}
}

func TestConsumeBackupCodeUnknownCode(t *testing.T) {
	t.Parallel()

	_, hashed, err := GenerateBackupCodes(2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	remaining, ok := ConsumeBackupCode("zzzzzzzzzz", hashed)
	if ok {
		t.Fatal("unknown code should not match")
	}
	if len(remaining) != len(hashed) {
		t.Fatal("stored hashes should be untouched on a miss")
	}
}
