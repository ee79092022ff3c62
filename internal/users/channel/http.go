// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package channel

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minhvban/vidora/internal/platform/middleware"
	requestutil "github.com/minhvban/vidora/internal/platform/request"
	"github.com/minhvban/vidora/internal/platform/respond"
	"github.com/minhvban/vidora/internal/platform/validate"
)

// Handler implements channel-related HTTP endpoints.
type Handler struct {
	channelService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{channelService: service}
}

// Routes returns a [chi.Router] configured with channel-specific routes.
//
// # Endpoints
//   - GET    /{identifier}        : Fetch by UUID or handle.
//   - POST   /                    : Open the caller's channel (auth).
//   - PATCH  /me                  : Update own channel (auth).
//   - PUT    /{id}/subscription   : Subscribe (auth).
//   - DELETE /{id}/subscription   : Unsubscribe (auth).
//   - GET    /{id}/subscription   : Own subscription status (auth).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{identifier}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Patch("/me", handler.update)
		r.Put("/{id}/subscription", handler.subscribe)
		r.Delete("/{id}/subscription", handler.unsubscribe)
		r.Get("/{id}/subscription", handler.subscriptionStatus)
	})

	return router
}

type channelRequest struct {
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Description string `json:"description"`
	AvatarURL   string `json:"avatar_url"`
	CoverURL    string `json:"cover_url"`
}

/*
Get fetches a channel by UUID or handle.

GET /api/v1/channels/{identifier}

Response:
  - 200: Channel: Hydrated entity
  - 404: ErrNotFound: Unknown channel
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	channel, err := handler.channelService.GetChannel(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, channel)
}

/*
Create opens the authenticated user's channel.

POST /api/v1/channels

Request:
  - Body: channelRequest (Title required; Handle derived when omitted)

Response:
  - 201: Channel: Created entity
  - 409: Conflict: User already owns a channel or the handle is taken
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input channelRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	channel := &Channel{
		Title:       input.Title,
		Handle:      input.Handle,
		Description: input.Description,
		AvatarURL:   input.AvatarURL,
		CoverURL:    input.CoverURL,
	}

	if err := handler.channelService.CreateChannel(request.Context(), userID, channel); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, channel)
}

/*
Update applies a partial update to the caller's own channel.

PATCH /api/v1/channels/me

Request:
  - Body: channelRequest (empty fields keep stored values; Handle immutable)

Response:
  - 200: Success
  - 404: ErrNotFound: Caller owns no channel
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input channelRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	channel := &Channel{
		Title:       input.Title,
		Description: input.Description,
		AvatarURL:   input.AvatarURL,
		CoverURL:    input.CoverURL,
	}

	if err := handler.channelService.UpdateChannel(request.Context(), userID, channel); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Channel updated",
	})
}

/*
Subscribe adds the caller to a channel's audience.

PUT /api/v1/channels/{id}/subscription

Response:
  - 200: Subscriber count after the operation
  - 404: ErrNotFound: Unknown channel
  - 409: Conflict: Own channel
*/
func (handler *Handler) subscribe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	channelID := requestutil.Param(request, "id")
	count, err := handler.channelService.Subscribe(request.Context(), userID, channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int64{
		"subscribers": count,
	})
}

/*
Unsubscribe removes the caller from a channel's audience.

DELETE /api/v1/channels/{id}/subscription

Response:
  - 200: Subscriber count after the operation
  - 404: ErrNotFound: Unknown channel
*/
func (handler *Handler) unsubscribe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	channelID := requestutil.Param(request, "id")
	count, err := handler.channelService.Unsubscribe(request.Context(), userID, channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int64{
		"subscribers": count,
	})
}

/*
SubscriptionStatus reports whether the caller follows a channel.

GET /api/v1/channels/{id}/subscription

Response:
  - 200: subscribed: true or false
*/
func (handler *Handler) subscriptionStatus(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	channelID := requestutil.Param(request, "id")
	subscribed, err := handler.channelService.IsSubscribed(request.Context(), userID, channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{
		FieldSubscribed: subscribed,
	})
}
