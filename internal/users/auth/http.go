// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

/*
HTTP delivery layer for the credential lifecycle.

It implements the gateway for the authentication flows — from code request
through verification to confirmed enrollment, plus sign-in and sign-out.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Bearer-token orchestration only; no cookies.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/minhvban/vidora/internal/platform/request"
	"github.com/minhvban/vidora/internal/platform/respond"
	"github.com/minhvban/vidora/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (sign-up flow, sign-in, password reset flow, sign-out).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup/request : Issues a one-time code to an email.
//   - POST /signup/verify  : Exchanges the code for a flow token.
//   - POST /signup/confirm : Creates the account, returns a session token.
//   - POST /signin         : Authenticates and returns a session token.
//   - POST /reset/request  : Issues a password-reset code.
//   - POST /reset/verify   : Exchanges the reset code for a flow token.
//   - POST /reset/confirm  : Rotates the password.
//   - POST /signout        : Revokes the presented session token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup/request", handler.requestSignUp)
	router.Post("/signup/verify", handler.verifySignUp)
	router.Post("/signup/confirm", handler.confirmSignUp)
	router.Post("/signin", handler.signIn)
	router.Post("/reset/request", handler.requestReset)
	router.Post("/reset/verify", handler.verifyReset)
	router.Post("/reset/confirm", handler.confirmReset)
	router.Post("/signout", handler.signOut)

	return router
}

// # Request Payloads

type usernameRequest struct {
	Username string `json:"username"`
}

type verifyCodeRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

type confirmSignUpRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
	Nick     string `json:"nick"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Tel      string `json:"tel"`
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type confirmResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

/*
RequestSignUp issues a one-time sign-up code.

POST /api/v1/auth/signup/request

Description: Validates the email address and delivers a verification code
out of band. Re-requesting replaces the pending code.

Request:
  - Body: usernameRequest (Username)

Response:
  - 200: Success: Code issued
  - 400: ErrInvalidJSON: Malformed or empty username
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) requestSignUp(writer http.ResponseWriter, request *http.Request) {
	var input usernameRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.authService.RequestSignUp(request.Context(), input.Username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Verification code sent",
	})
}

/*
VerifySignUp exchanges a sign-up code for a flow token.

POST /api/v1/auth/signup/verify

Request:
  - Body: verifyCodeRequest (Username, Code)

Response:
  - 200: Token: Flow token authorizing one confirm
  - 400: ErrInvalidJSON: Wrong code length or malformed username
  - 401: ErrUnauthorized: Wrong or expired code
  - 404: ErrNotFound: No pending code for this username
*/
func (handler *Handler) verifySignUp(writer http.ResponseWriter, request *http.Request) {
	var input verifyCodeRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	token, err := handler.authService.VerifySignUp(request.Context(), input.Username, input.Code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldToken: token,
	})
}

/*
ConfirmSignUp finalizes enrollment and opens a session.

POST /api/v1/auth/signup/confirm

Description: Requires a valid, unconsumed flow token from the verify step.
Creates the account with its EMAIL credential and returns a session token.

Request:
  - Body: confirmSignUpRequest (Token, Password, Nick, Name, Bio, Tel)

Response:
  - 201: Session: Session token and created user profile
  - 400: ErrInvalidJSON: Weak password or invalid nick
  - 401: ErrUnauthorized: Invalid, expired, or consumed token
  - 409: ErrConflict: Email registered or nick taken
*/
func (handler *Handler) confirmSignUp(writer http.ResponseWriter, request *http.Request) {
	var input confirmSignUpRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	session, err := handler.authService.ConfirmSignUp(request.Context(), ConfirmSignUpInput{
		Token:    input.Token,
		Password: input.Password,
		Nick:     input.Nick,
		Name:     input.Name,
		Bio:      input.Bio,
		Tel:      input.Tel,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		FieldSessionToken: session.Token,
		FieldUser:         session.User,
	})
}

/*
SignIn authenticates a user and establishes a session.

POST /api/v1/auth/signin

Request:
  - Body: signInRequest (Username, Password)

Response:
  - 200: Session: Session token and user profile
  - 401: ErrUnauthorized: PASSWORD_INCORRECT for any credential failure
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var input signInRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.SignIn(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldSessionToken: session.Token,
		FieldUser:         session.User,
	})
}

/*
RequestReset initiates the password recovery flow.

POST /api/v1/auth/reset/request

Description: Always responds with a generic message to prevent enumeration.

Request:
  - Body: usernameRequest (Username)

Response:
  - 200: Success: Code sent (or generic security message)
  - 400: ErrInvalidJSON: Malformed username
*/
func (handler *Handler) requestReset(writer http.ResponseWriter, request *http.Request) {
	var input usernameRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.authService.RequestReset(request.Context(), input.Username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "If this account exists, a verification code has been sent.",
	})
}

/*
VerifyReset exchanges a reset code for a flow token.

POST /api/v1/auth/reset/verify

Request:
  - Body: verifyCodeRequest (Username, Code)

Response:
  - 200: Token: Flow token authorizing one password rotation
  - 401: ErrUnauthorized: Wrong or expired code
  - 404: ErrNotFound: No pending code
*/
func (handler *Handler) verifyReset(writer http.ResponseWriter, request *http.Request) {
	var input verifyCodeRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	token, err := handler.authService.VerifyReset(request.Context(), input.Username, input.Code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldToken: token,
	})
}

/*
ConfirmReset completes the password recovery flow.

POST /api/v1/auth/reset/confirm

Request:
  - Body: confirmResetRequest (Token, NewPassword)

Response:
  - 200: Success: Password updated
  - 400: ErrInvalidJSON: Weak password
  - 401: ErrUnauthorized: Invalid, expired, or consumed token
*/
func (handler *Handler) confirmReset(writer http.ResponseWriter, request *http.Request) {
	var input confirmResetRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.authService.ConfirmReset(request.Context(), input.Token, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password updated successfully",
	})
}

/*
SignOut revokes the presented session token.

POST /api/v1/auth/signout

Description: Reads the bearer token from the Authorization header and
blacklists it. Idempotent: responds 204 even if the token was already
invalid or revoked.

Response:
  - 204: No Content: Token revoked
*/
func (handler *Handler) signOut(writer http.ResponseWriter, request *http.Request) {
	token := requestutil.BearerToken(request)

	if token != "" {
		if err := handler.authService.SignOut(request.Context(), token); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	respond.NoContent(writer)
}
