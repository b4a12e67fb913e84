package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// TempPasswordLength is the fixed length of generated temporary passwords.
const TempPasswordLength = 16

const (
	lowerChars  = "abcdefghijkmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars  = "23456789"
	symbolChars = "!@#$%&*"
)

// GenerateTempPassword builds a 16-character password with at least one
// character from each class, then shuffles the result. The plaintext is
// shown once; only the bcrypt hash is stored.
func GenerateTempPassword() (string, error) {
	classes := []string{lowerChars, upperChars, digitChars, symbolChars}
	all := lowerChars + upperChars + digitChars + symbolChars

	buf := make([]byte, 0, TempPasswordLength)
	for _, class := range classes {
		ch, err := randomChar(class)
		if err != nil {
			return "", err
		}
		buf = append(buf, ch)
	}
	for len(buf) < TempPasswordLength {
		ch, err := randomChar(all)
		if err != nil {
			return "", err
		}
		buf = append(buf, ch)
	}

	// Fisher-Yates with crypto/rand so class characters are not positional.
	for i := len(buf) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

func randomChar(set string) (byte, error) {
	idx, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[idx], nil
}

func randomInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, fmt.Errorf("random int: %w", err)
	}
	return int(n.Int64()), nil
}
