// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// SessionTokenTTL is the duration a session JWT remains valid.
	// Long-lived (10 days) to provide a good user experience; revocation
	// happens through the token blacklist, not through short expiry.
	SessionTokenTTL = 10 * 24 * time.Hour

	// FlowTokenTTL is the duration a signup/reset flow token remains valid.
	// Short-lived (10m) because it only bridges two steps of the same flow.
	FlowTokenTTL = 10 * time.Minute

	// VerificationCodeTTL is the duration a one-time code remains valid.
	// A code issued at T is accepted up to and including T+10m.
	VerificationCodeTTL = 10 * time.Minute

	// CodeLength is the fixed character length of one-time codes.
	CodeLength = 6

	// MaxUsernameLength bounds the accepted username (RFC 5321 email limit).
	MaxUsernameLength = 320

	// MinNickLength and MaxNickLength bound the public nick.
	MinNickLength = 3
	MaxNickLength = 30
)

// # Reason Codes

// Enumerated reason codes attached to errors via apperr.WithCode. Clients
// switch on these to drive flow-specific UI.
const (
	CodeUsernameEmpty     = "USERNAME_EMPTY"
	CodeUsernameMalformed = "USERNAME_MALFORMED"
	CodeLengthNotCorrect  = "CODE_LENGTH_NOT_CORRECT"
	CodeNotCorrect        = "CODE_NOT_CORRECT"
	CodeNotValid          = "CODE_NOT_VALID"
	CodePasswordIncorrect = "PASSWORD_INCORRECT"
	CodePasswordTooWeak   = "PASSWORD_TOO_WEAK"
	CodeNickTaken         = "NICK_TAKEN"
)
