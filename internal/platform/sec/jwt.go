// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces declared at the point of use.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Token Purposes

// Token purposes distinguish the three token classes issued by the platform.
// A token minted for one step of a flow can never be replayed in another.
const (
	// PurposeSession marks a long-lived bearer token for an authenticated user.
	PurposeSession = "session"

	// PurposeSignUp marks a short-lived token proving a sign-up code was verified.
	PurposeSignUp = "signup"

	// PurposeReset marks a short-lived token proving a reset code was verified.
	PurposeReset = "reset"
)

// AuthClaims represents the payload embedded inside a Vidora JWT.
//
// # Why custom claims?
//
// By embedding the UserID, Nick, and Role directly inside the JWT, the
// authentication middleware can reconstruct the active user context WITHOUT
// querying the database on every single API request.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID  string `json:"uid,omitempty"`
	Nick    string `json:"nck,omitempty"`
	Role    string `json:"rol,omitempty"`
	Purpose string `json:"pps"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// The shared secret comes from configuration; the same secret signs session
// tokens and the short-lived flow tokens used between verification steps.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService signing with the given secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("sec: token secret must be at least 32 bytes, got %d", len(secret))
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// GenerateSessionToken creates a signed session JWT for an authenticated user.
func (service *TokenService) GenerateSessionToken(userID, nick, role string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:  userID,
		Nick:    nick,
		Role:    role,
		Purpose: PurposeSession,
	}

	return service.sign(claims)
}

// GenerateFlowToken creates a short-lived token proving that a verification
// step was completed for the given subject (a username or user ID).
//
// The purpose claim pins the token to a single flow (signup or reset), so a
// verified-sign-up token cannot be replayed to confirm a password reset.
func (service *TokenService) GenerateFlowToken(subject, purpose string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Purpose: purpose,
	}

	return service.sign(claims)
}

// VerifyToken checks the signature and expiry of a JWT string.
//
// It fails closed: any malformed, tampered, or expired token yields an error.
// Blacklist membership is NOT checked here — callers that accept revocable
// tokens must consult the token blacklist separately.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, service.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}

// ExtractSubject returns the subject encoded in a structurally valid token,
// ignoring expiration.
//
// The boolean is false for malformed or tampered tokens. Callers that need
// liveness guarantees must still run [TokenService.VerifyToken] and the
// blacklist check; this accessor only identifies who the token was minted for.
func (service *TokenService) ExtractSubject(tokenString string) (string, bool) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	token, err := parser.ParseWithClaims(tokenString, &AuthClaims{}, service.keyFunc)
	if err != nil {
		return "", false
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}

// ExtractClaims is the purpose-aware variant of [TokenService.ExtractSubject].
func (service *TokenService) ExtractClaims(tokenString string) (*AuthClaims, bool) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	token, err := parser.ParseWithClaims(tokenString, &AuthClaims{}, service.keyFunc)
	if err != nil {
		return nil, false
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok {
		return nil, false
	}

	return claims, true
}

// sign serializes and signs a claim set with the shared HMAC secret.
func (service *TokenService) sign(claims AuthClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}
	return signedToken, nil
}

// keyFunc rejects any signing algorithm other than HMAC before releasing the secret.
func (service *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
	}
	return service.secret, nil
}
