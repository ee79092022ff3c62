// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

/*
Package auth implements the core identity and access management (IAM) system.

It drives the three-step credential flows (request code, verify code, confirm)
for sign-up and password reset, plus sign-in, sign-out and session token
verification against the Redis-backed revocation blacklist.

Architecture:

  - Service: Orchestrates business logic (sign-up, sign-in, reset).
  - Repository: Abstracted interfaces for Postgres (accounts, credentials,
    codes) and Redis (token blacklist).
  - Security: Bcrypt for passwords AND one-time codes, HMAC-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/minhvban/vidora/internal/platform/apperr"
	"github.com/minhvban/vidora/internal/platform/ctxutil"
	"github.com/minhvban/vidora/internal/platform/mailer"
	"github.com/minhvban/vidora/internal/platform/sec"
	"github.com/minhvban/vidora/internal/platform/validate"
	"github.com/minhvban/vidora/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and inspecting security tokens.
type TokenProvider interface {
	// GenerateSessionToken creates a signed session JWT for an authenticated user.
	GenerateSessionToken(userID, nick, role string, timeToLive time.Duration) (string, error)

	// GenerateFlowToken creates a short-lived token binding a subject to a flow purpose.
	GenerateFlowToken(subject, purpose string, timeToLive time.Duration) (string, error)

	// VerifyToken checks signature and expiry. Revocation is NOT checked here.
	VerifyToken(tokenString string) (*sec.AuthClaims, error)

	// ExtractClaims returns the claims of a structurally valid token, ignoring expiry.
	ExtractClaims(tokenString string) (*sec.AuthClaims, bool)

	// ExtractSubject returns the subject of a structurally valid token, ignoring expiry.
	ExtractSubject(tokenString string) (string, bool)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, code
// verification, or token logic must be reviewed by the security team.
type Service struct {
	userRepository       UserRepository
	credentialRepository CredentialRepository
	codeRepository       VerificationCodeRepository
	blacklist            TokenBlacklist
	tokenProvider        TokenProvider
	sender               mailer.Sender
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	credentialRepo CredentialRepository,
	codeRepo VerificationCodeRepository,
	blacklist TokenBlacklist,
	tokenProv TokenProvider,
	sender mailer.Sender,
) *Service {
	return &Service{
		userRepository:       userRepo,
		credentialRepository: credentialRepo,
		codeRepository:       codeRepo,
		blacklist:            blacklist,
		tokenProvider:        tokenProv,
		sender:               sender,
	}
}

// Session represents a successfully established authenticated session.
type Session struct {
	Token string
	User  *User
}

// # Username Resolution

/*
checkUsername validates the raw username and resolves its credential method.

Description: The username's shape decides the method: email addresses map to
EMAIL, E.164 numbers map to TEL. Anything else is malformed.

Parameters:
  - username: string

Returns:
  - Method: Resolved credential method
  - error: VALIDATION_ERROR with USERNAME_EMPTY or USERNAME_MALFORMED
*/
func checkUsername(username string) (Method, error) {
	if strings.TrimSpace(username) == "" {
		return "", apperr.ValidationError("Username is required").WithCode(CodeUsernameEmpty)
	}

	if len(username) > MaxUsernameLength {
		return "", apperr.ValidationError("Username is malformed").WithCode(CodeUsernameMalformed)
	}

	if validate.IsEmail(username) {
		return MethodEmail, nil
	}

	if validate.IsPhone(username) {
		return MethodTel, nil
	}

	return "", apperr.ValidationError("Username is malformed").WithCode(CodeUsernameMalformed)
}

// checkPassword enforces the password strength policy.
func checkPassword(field, password string) error {
	validator := &validate.Validator{}
	validator.Password(field, password)

	if err := validator.Err(); err != nil {
		return apperr.As(err).WithCode(CodePasswordTooWeak)
	}
	return nil
}

// # Sign-Up Flow

/*
RequestSignUp starts enrollment by issuing a one-time code to an email address.

Description: Validates the address, rejects already-registered emails, then
generates a fixed-length code, stores only its bcrypt hash, and delivers the
plain code out of band. Re-requesting replaces the previous code.

Parameters:
  - context: context.Context
  - username: string (email address)

Returns:
  - error: Validation, Conflict, or storage failures
*/
func (service *Service) RequestSignUp(context context.Context, username string) error {
	method, err := checkUsername(username)
	if err != nil {
		return err
	}

	// Sign-up is email-only; a phone-shaped username cannot receive a mail code.
	if method != MethodEmail {
		return apperr.ValidationError("Username is malformed").WithCode(CodeUsernameMalformed)
	}

	// Reject already-registered emails with a client-safe Conflict.
	if _, err := service.credentialRepository.Find(context, username, MethodEmail); err == nil {
		return apperr.Conflict("Email is already registered")
	}

	return service.issueCode(context, username, PurposeSignUp)
}

/*
VerifySignUp checks a sign-up code and exchanges it for a flow token.

Description: The code is single-use: a successful verification deletes the
stored row, so replaying the same code yields NOT_FOUND. The returned flow
token (subject = username, purpose = signup) authorizes exactly one
ConfirmSignUp within its TTL.

Parameters:
  - context: context.Context
  - username: string
  - code: string

Returns:
  - string: Signed flow token
  - error: NOT_FOUND, CODE_LENGTH_NOT_CORRECT, CODE_NOT_CORRECT, CODE_NOT_VALID
*/
func (service *Service) VerifySignUp(context context.Context, username, code string) (string, error) {
	return service.verifyCode(context, username, code, PurposeSignUp, sec.PurposeSignUp)
}

// ConfirmSignUpInput holds the data required to finalize enrollment.
type ConfirmSignUpInput struct {
	Token    string
	Password string
	Nick     string
	Name     string
	Bio      string
	Tel      string
}

/*
ConfirmSignUp finalizes enrollment using a verified flow token.

Description: Validates the flow token (signature, purpose, revocation),
enforces the password and nick policies, then creates the account and its
EMAIL credential in one transaction. The consumed flow token is blacklisted
so the same token can never create a second account.

Parameters:
  - context: context.Context
  - input: ConfirmSignUpInput

Returns:
  - *Session: Session token and created user
  - err: Validation, Unauthorized, Conflict, or storage failures
*/
func (service *Service) ConfirmSignUp(context context.Context, input ConfirmSignUpInput) (*Session, error) {
	claims, err := service.checkFlowToken(context, input.Token, sec.PurposeSignUp)
	if err != nil {
		return nil, err
	}
	username := claims.Subject

	// The registration check runs again: another confirm may have won the race
	// between VerifySignUp and now.
	if _, err := service.credentialRepository.Find(context, username, MethodEmail); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	if err := checkPassword(FieldPassword, input.Password); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldNick, input.Nick).
		MinLen(FieldNick, input.Nick, MinNickLength).
		MaxLen(FieldNick, input.Nick, MaxNickLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.userRepository.FindByNick(context, input.Nick); err == nil {
		return nil, apperr.Conflict("Nick is already taken").WithCode(CodeNickTaken)
	}

	hashedPassword, err := sec.HashSecret(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:    uuid.New(),
		Nick:  input.Nick,
		Name:  input.Name,
		Bio:   input.Bio,
		Tel:   input.Tel,
		Email: username,
		Role:  sec.RoleMember,
	}

	credential := &Credential{
		UserID:     user.ID,
		Method:     MethodEmail,
		Username:   username,
		SecretHash: hashedPassword,
	}

	if err := service.userRepository.CreateWithCredential(context, user, credential); err != nil {
		return nil, fmt.Errorf("auth_service_confirm_signup_failed: %w", err)
	}

	// Consume the flow token: a second confirm with the same token must fail.
	service.revokeToken(context, input.Token, claims)

	return service.openSession(context, user)
}

// # Sign-In Flow

/*
SignIn validates credentials and issues a session token.

Description: The credential method is resolved from the username's shape.
A missing credential and a wrong password produce the same PASSWORD_INCORRECT
error so the API never reveals whether an identity is registered.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *Session: Transport-ready session token and user profile
  - err: Unauthorized or internal failures
*/
func (service *Service) SignIn(context context.Context, username, password string) (*Session, error) {
	method, err := checkUsername(username)
	if err != nil {
		return nil, err
	}

	credential, err := service.credentialRepository.Find(context, username, method)
	if err != nil {
		return nil, passwordIncorrect()
	}

	// Constant-time comparison inside bcrypt prevents timing attacks.
	if !sec.CheckSecret(password, credential.SecretHash) {
		return nil, passwordIncorrect()
	}

	user, err := service.userRepository.FindByID(context, credential.UserID)
	if err != nil {
		return nil, passwordIncorrect()
	}

	return service.openSession(context, user)
}

// passwordIncorrect is the single anti-enumeration error for all sign-in failures.
func passwordIncorrect() *apperr.AppError {
	return apperr.Unauthorized("Password is incorrect").WithCode(CodePasswordIncorrect)
}

/*
SignOut revokes a session token.

Description: Idempotent by design: a malformed or already-expired token needs
no revocation, so the operation reports success without touching storage.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Blacklist storage failures
*/
func (service *Service) SignOut(context context.Context, token string) error {
	claims, ok := service.tokenProvider.ExtractClaims(token)
	if !ok || claims.ExpiresAt == nil {
		return nil
	}

	timeToLive := time.Until(claims.ExpiresAt.Time)
	if timeToLive <= 0 {
		return nil
	}

	if err := service.blacklist.Add(context, token, timeToLive); err != nil {
		return fmt.Errorf("auth_service_signout_failed: %w", err)
	}

	return nil
}

/*
VerifyAccessToken validates a session token for request authentication.

Description: Fails closed — signature, expiry, purpose, and blacklist
membership must all pass. A blacklist lookup failure rejects the token rather
than risking acceptance of a revoked session.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *sec.AuthClaims: Verified claims
  - error: apperr.Unauthorized for any failure
*/
func (service *Service) VerifyAccessToken(context context.Context, token string) (*sec.AuthClaims, error) {
	claims, err := service.tokenProvider.VerifyToken(token)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	if claims.Purpose != sec.PurposeSession {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	revoked, err := service.blacklist.Contains(context, token)
	if err != nil {
		return nil, apperr.Unauthorized("Token could not be verified")
	}
	if revoked {
		return nil, apperr.Unauthorized("Token has been revoked")
	}

	return claims, nil
}

// # Password Recovery

/*
RequestReset starts the forgot-password flow by issuing a one-time code.

Description: If the username is not registered, the operation silently
succeeds to prevent user enumeration. Otherwise a fresh code replaces any
pending reset code.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: Validation or storage failures
*/
func (service *Service) RequestReset(context context.Context, username string) error {
	method, err := checkUsername(username)
	if err != nil {
		return err
	}

	// NOTE: We don't return NOT_FOUND if the identity doesn't exist to prevent user enumeration.
	if _, err := service.credentialRepository.Find(context, username, method); err != nil {
		return nil
	}

	return service.issueCode(context, username, PurposeReset)
}

/*
VerifyReset checks a reset code and exchanges it for a flow token.

Parameters:
  - context: context.Context
  - username: string
  - code: string

Returns:
  - string: Signed flow token (purpose = reset)
  - error: NOT_FOUND, CODE_LENGTH_NOT_CORRECT, CODE_NOT_CORRECT, CODE_NOT_VALID
*/
func (service *Service) VerifyReset(context context.Context, username, code string) (string, error) {
	return service.verifyCode(context, username, code, PurposeReset, sec.PurposeReset)
}

/*
ConfirmReset completes the forgot-password flow.

Description: Validates the reset flow token, enforces password strength, and
overwrites the credential's secret hash. The consumed token is blacklisted so
one verified code rotates the password exactly once.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - err: Validation, Unauthorized, NotFound, or update failures
*/
func (service *Service) ConfirmReset(context context.Context, token, newPassword string) error {
	claims, err := service.checkFlowToken(context, token, sec.PurposeReset)
	if err != nil {
		return err
	}
	username := claims.Subject

	if err := checkPassword(FieldNewPassword, newPassword); err != nil {
		return err
	}

	method, err := checkUsername(username)
	if err != nil {
		return err
	}

	if _, err := service.credentialRepository.Find(context, username, method); err != nil {
		return apperr.NotFound("Account")
	}

	hashedPassword, err := sec.HashSecret(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_hash_failed: %w", err)
	}

	if err := service.credentialRepository.UpdateSecret(context, username, method, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_update_failed: %w", err)
	}

	// Consume the flow token so the reset cannot be replayed.
	service.revokeToken(context, token, claims)

	return nil
}

// # Shared Flow Steps

/*
issueCode generates, hashes, stores, and delivers a one-time code.

Description: Only the bcrypt hash is persisted. Delivery is best-effort: a
mail failure is logged but does not fail the request, since the user can
always re-request.
*/
func (service *Service) issueCode(context context.Context, username string, purpose Purpose) error {
	code, err := sec.GenerateCode(CodeLength)
	if err != nil {
		return fmt.Errorf("auth_service_generate_code_failed: %w", err)
	}

	codeHash, err := sec.HashSecret(code)
	if err != nil {
		return fmt.Errorf("auth_service_hash_code_failed: %w", err)
	}

	record := &VerificationCode{
		Username: username,
		Purpose:  purpose,
		CodeHash: codeHash,
		IssuedAt: time.Now(),
	}

	if err := service.codeRepository.Upsert(context, record); err != nil {
		return fmt.Errorf("auth_service_store_code_failed: %w", err)
	}

	// Best-effort out-of-band delivery.
	if err := service.sender.Send(username, "Your Vidora verification code", mailer.VerificationBody(code)); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "verification_mail_failed",
			slog.String("username", username),
			slog.String("purpose", string(purpose)),
			slog.Any("error", err),
		)
	}

	return nil
}

/*
verifyCode checks a submitted code against the stored hash and issues a flow token.

Description: Failure checks run in a fixed order so clients get the most
actionable reason first: missing row, wrong length, wrong code, expired code.
A code issued at T is accepted up to and including T+10m.
*/
func (service *Service) verifyCode(context context.Context, username, code string, purpose Purpose, tokenPurpose string) (string, error) {
	if _, err := checkUsername(username); err != nil {
		return "", err
	}

	record, err := service.codeRepository.Find(context, username, purpose)
	if err != nil {
		return "", apperr.NotFound("Verification code")
	}

	if len(code) != CodeLength {
		return "", apperr.ValidationError("Verification code has the wrong length").WithCode(CodeLengthNotCorrect)
	}

	if !sec.CheckSecret(code, record.CodeHash) {
		return "", apperr.Unauthorized("Verification code is not correct").WithCode(CodeNotCorrect)
	}

	if time.Now().After(record.IssuedAt.Add(VerificationCodeTTL)) {
		return "", apperr.Unauthorized("Verification code has expired").WithCode(CodeNotValid)
	}

	// Single use: delete before handing out the flow token.
	if err := service.codeRepository.Delete(context, username, purpose); err != nil {
		return "", fmt.Errorf("auth_service_consume_code_failed: %w", err)
	}

	token, err := service.tokenProvider.GenerateFlowToken(username, tokenPurpose, FlowTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_flow_token_failed: %w", err)
	}

	return token, nil
}

/*
checkFlowToken validates a flow token for a confirm step.

Description: The subject must be present (USERNAME_EMPTY otherwise), the
signature and expiry must verify, the purpose must match the flow, and the
token must not have been consumed already.
*/
func (service *Service) checkFlowToken(context context.Context, token, expectedPurpose string) (*sec.AuthClaims, error) {
	if _, ok := service.tokenProvider.ExtractSubject(token); !ok {
		return nil, apperr.ValidationError("Username is required").WithCode(CodeUsernameEmpty)
	}

	claims, err := service.tokenProvider.VerifyToken(token)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	if claims.Purpose != expectedPurpose {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	revoked, err := service.blacklist.Contains(context, token)
	if err != nil {
		return nil, apperr.Unauthorized("Token could not be verified")
	}
	if revoked {
		return nil, apperr.Unauthorized("Token has already been used")
	}

	return claims, nil
}

// revokeToken blacklists a consumed token for its remaining lifetime.
func (service *Service) revokeToken(context context.Context, token string, claims *sec.AuthClaims) {
	if claims.ExpiresAt == nil {
		return
	}

	timeToLive := time.Until(claims.ExpiresAt.Time)
	if timeToLive <= 0 {
		return
	}

	if err := service.blacklist.Add(context, token, timeToLive); err != nil {
		ctxutil.GetLogger(context).ErrorContext(context, "token_revocation_failed",
			slog.Any("error", err),
		)
	}
}

// openSession issues a session token for an authenticated user.
func (service *Service) openSession(context context.Context, user *User) (*Session, error) {
	token, err := service.tokenProvider.GenerateSessionToken(user.ID, user.Nick, string(user.Role), SessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_session_token_failed: %w", err)
	}

	return &Session{Token: token, User: user}, nil
}
