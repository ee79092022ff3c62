// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvban/vidora/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService(testSecret, "vidora.test")
	require.NoError(t, err)
	return service
}

func TestTokenService_RejectsShortSecret(t *testing.T) {
	_, err := sec.NewTokenService("too-short", "vidora.test")
	require.Error(t, err)
}

func TestTokenService_SessionRoundTrip(t *testing.T) {
	service := newTokenService(t)

	// 1. Mint a session token with identity claims.
	token, err := service.GenerateSessionToken("user-1", "minh", "member", time.Hour)
	require.NoError(t, err)

	// 2. Verification recovers the full claim set.
	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "minh", claims.Nick)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, sec.PurposeSession, claims.Purpose)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	service := newTokenService(t)

	token, err := service.GenerateSessionToken("user-1", "minh", "member", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	require.Error(t, err)
}

func TestTokenService_RejectsTamperedToken(t *testing.T) {
	service := newTokenService(t)

	token, err := service.GenerateSessionToken("user-1", "minh", "member", time.Hour)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	tampered := token[:len(token)-2] + "xx"
	_, err = service.VerifyToken(tampered)
	require.Error(t, err)
}

func TestTokenService_RejectsForeignSecret(t *testing.T) {
	service := newTokenService(t)
	foreign, err := sec.NewTokenService("ffffffffffffffffffffffffffffffff", "vidora.test")
	require.NoError(t, err)

	token, err := foreign.GenerateSessionToken("user-1", "minh", "member", time.Hour)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	require.Error(t, err)
}

func TestTokenService_FlowTokenCarriesPurpose(t *testing.T) {
	service := newTokenService(t)

	token, err := service.GenerateFlowToken("someone@example.com", sec.PurposeSignUp, 10*time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "someone@example.com", claims.Subject)
	assert.Equal(t, sec.PurposeSignUp, claims.Purpose)
	assert.NotEqual(t, sec.PurposeSession, claims.Purpose)
}

func TestTokenService_ExtractSubject(t *testing.T) {
	service := newTokenService(t)

	// 1. The subject survives expiry.
	expired, err := service.GenerateFlowToken("someone@example.com", sec.PurposeReset, -time.Minute)
	require.NoError(t, err)

	subject, ok := service.ExtractSubject(expired)
	assert.True(t, ok)
	assert.Equal(t, "someone@example.com", subject)

	// 2. Garbage is reported as such.
	_, ok = service.ExtractSubject("not.a.token")
	assert.False(t, ok)

	// 3. Tampered payloads are rejected, not partially decoded.
	token, err := service.GenerateFlowToken("someone@example.com", sec.PurposeReset, time.Hour)
	require.NoError(t, err)
	_, ok = service.ExtractSubject(token[:len(token)-2] + "xx")
	assert.False(t, ok)
}
