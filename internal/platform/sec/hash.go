// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashSecret hashes a plain-text secret using the bcrypt algorithm.
//
// It is used for both account passwords and one-time verification codes, so
// that neither is ever stored in recoverable form.
func HashSecret(plainText string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainText), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash secret: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckSecret compares a plain-text secret with its hashed version.
func CheckSecret(plainText, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainText))
	return err == nil
}
