package mfa

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

const backupCodeLength = 10

const backupCodeChars = "abcdefghjkmnpqrstuvwxyz23456789"

// GenerateBackupCodes returns n plaintext recovery codes along with their
// sha256 hashes. Plaintext is shown once at enrollment; only hashes are stored.
func GenerateBackupCodes(n int) (plain []string, hashed []string, err error) {
	plain = make([]string, 0, n)
	hashed = make([]string, 0, n)
	for i := 0; i < n; i++ {
		code, err := randomBackupCode()
		if err != nil {
			return nil, nil, err
		}
		plain = append(plain, code)
		hashed = append(hashed, HashCode(code))
	}
	return plain, hashed, nil
}

// HashCode returns the hex sha256 digest of a code.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// ConsumeBackupCode returns the stored hashes with the matching entry
// removed, and whether the code matched at all.
func ConsumeBackupCode(code string, storedHashes []string) ([]string, bool) {
	target := HashCode(code)
	for i, h := range storedHashes {
		if h == target {
			remaining := make([]string, 0, len(storedHashes)-1)
			remaining = append(remaining, storedHashes[:i]...)
			remaining = append(remaining, storedHashes[i+1:]...)
			return remaining, true
		}
	}
	return storedHashes, false
}

func randomBackupCode() (string, error) {
	buf := make([]byte, backupCodeLength)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(backupCodeChars))))
		if err != nil {
			return "", fmt.Errorf("random backup code: %w", err)
		}
		buf[i] = backupCodeChars[idx.Int64()]
	}
	return string(buf), nil
}
