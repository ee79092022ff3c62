// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minhvban/vidora/internal/platform/middleware"
	requestutil "github.com/minhvban/vidora/internal/platform/request"
	"github.com/minhvban/vidora/internal/platform/respond"
	"github.com/minhvban/vidora/internal/platform/validate"
)

// Handler implements profile-related HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with profile routes.
//
// # Endpoints
//   - GET   /me : Fetch own profile (auth).
//   - PATCH /me : Update own profile (auth).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.getProfile)
		r.Patch("/me", handler.updateProfile)
	})

	return router
}

type updateProfileRequest struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	Tel       string `json:"tel"`
	AvatarURL string `json:"avatar_url"`
}

/*
GetProfile fetches the authenticated user's own profile.

GET /api/v1/users/me

Response:
  - 200: Profile: Hydrated entity
  - 404: ErrNotFound: Account has been removed
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
UpdateProfile applies a partial update to the caller's own profile.

PATCH /api/v1/users/me

Request:
  - Body: updateProfileRequest (empty fields keep stored values)

Response:
  - 200: Success
  - 400: ErrInvalidJSON: Validation failure
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	profile := &Profile{
		Name:      input.Name,
		Bio:       input.Bio,
		Tel:       input.Tel,
		AvatarURL: input.AvatarURL,
	}

	if err := handler.accountService.UpdateProfile(request.Context(), userID, profile); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Profile updated",
	})
}
