// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

/*
Package auth implements the user identity and credential lifecycle layer.

It defines the core domain entities (User, Credential, VerificationCode) and
the state machine that moves an anonymous visitor through code verification
into an authenticated session.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/minhvban/vidora/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Vidora platform.
//
// A User never carries secret material; secrets live on [Credential] rows so
// one account can hold several sign-in methods.
type User struct {
	ID        string       `json:"id"`
	Nick      string       `json:"nick"`
	Name      string       `json:"name,omitempty"`
	Bio       string       `json:"bio,omitempty"`
	Tel       string       `json:"tel,omitempty"`
	Email     string       `json:"email"`
	Role      sec.UserRole `json:"role"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Method identifies how a credential authenticates its owner.
type Method string

const (
	MethodPassword Method = "PASSWORD"
	MethodEmail    Method = "EMAIL"
	MethodTel      Method = "TEL"
	MethodGoogle   Method = "GOOGLE"
	MethodVK       Method = "VK"
)

// Credential binds a sign-in identity (username + method) to a user account.
//
// Uniqueness holds on (username, method): the same email can exist once as an
// EMAIL credential, and independently as a GOOGLE credential.
type Credential struct {
	UserID     string    `json:"user_id"`
	Method     Method    `json:"method"`
	Username   string    `json:"username"`
	SecretHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Purpose identifies which flow a verification code belongs to.
type Purpose string

const (
	PurposeSignUp Purpose = "SIGNUP"
	PurposeReset  Purpose = "RESET"
	PurposeMFA    Purpose = "MFA"
)

// VerificationCode is a single-use, hashed one-time code delivered out of band.
//
// One row exists per (username, purpose); re-requesting a code overwrites the
// previous row, so only the most recent code is ever accepted.
type VerificationCode struct {
	Username string    `json:"username"`
	Purpose  Purpose   `json:"purpose"`
	CodeHash string    `json:"-"` // Hashed value of the code. Omitted for security.
	IssuedAt time.Time `json:"issued_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername     = "username"
	FieldCode         = "code"
	FieldToken        = "token"
	FieldPassword     = "password"
	FieldNewPassword  = "new_password"
	FieldNick         = "nick"
	FieldName         = "name"
	FieldBio          = "bio"
	FieldTel          = "tel"
	FieldSessionToken = "session_token"
	FieldUser         = "user"
	FieldMessage      = "message"
)
