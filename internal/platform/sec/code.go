// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeAlphabet is the character set for one-time verification codes.
// Mixed-case alphanumerics keep short codes hard to brute-force while
// remaining easy to type from an email.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

// GenerateCode produces a random alphanumeric one-time code of the given
// fixed length using a cryptographically secure source.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("sec: code length must be positive, got %d", length)
	}

	code := make([]byte, length)
	alphabetSize := big.NewInt(int64(len(codeAlphabet)))

	for i := range code {
		index, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("sec: failed to generate code: %w", err)
		}
		code[i] = codeAlphabet[index.Int64()]
	}

	return string(code), nil
}
