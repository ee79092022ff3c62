// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

/*
HTTP delivery layer for the video catalogue.

# Architecture

The handler mediates between the web and the [Service]:
  - Protocol: Standard RESTful JSON interface.
  - Discovery: Public search and channel listings with pagination.
  - Reactions: Authenticated rating endpoint returning reconciled counters.
*/
package video

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/minhvban/vidora/internal/platform/middleware"
	requestutil "github.com/minhvban/vidora/internal/platform/request"
	"github.com/minhvban/vidora/internal/platform/respond"
	"github.com/minhvban/vidora/internal/platform/validate"
	"github.com/minhvban/vidora/pkg/pagination"
	"github.com/minhvban/vidora/pkg/pointer"
)

// # Definitions & Constructors

// Handler implements video-related HTTP endpoints.
type Handler struct {
	videoService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{videoService: service}
}

// Routes returns a [chi.Router] configured with video-specific routes.
//
// # Endpoints
//   - GET    /                    : Title search (?q=).
//   - GET    /{identifier}        : Fetch by UUID or slug (counts a view).
//   - GET    /channel/{channelID} : Channel listing, newest first.
//   - POST   /                    : Create a video (auth).
//   - PATCH  /{id}                : Partial metadata update (auth).
//   - DELETE /{id}                : Soft delete (auth).
//   - PUT    /{id}/rating         : Apply a reaction (auth).
//   - GET    /{id}/rating         : Read own reaction (auth).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.search)
	router.Get("/channel/{channelID}", handler.listByChannel)
	router.Get("/{identifier}", handler.get)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Patch("/{id}", handler.update)
		r.Delete("/{id}", handler.remove)
		r.Put("/{id}/rating", handler.rate)
		r.Get("/{id}/rating", handler.getRating)
	})

	return router
}

// # Request Payloads

type createVideoRequest struct {
	ChannelID   string `json:"channel_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	CoverURL    string `json:"cover_url"`
	Duration    int    `json:"duration"`
	Visibility  string `json:"visibility"`
}

type updateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url"`
	Visibility  string `json:"visibility"`
}

type rateRequest struct {
	State string `json:"state"`
}

/*
Search returns public videos matching a title query.

GET /api/v1/videos?q=...

Response:
  - 200: Paginated list of matches (empty for a blank query)
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query().Get(FieldQuery)

	videos, total, err := handler.videoService.Search(request.Context(), query, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Get fetches a single video by UUID or slug and registers a view.

GET /api/v1/videos/{identifier}

Response:
  - 200: Video: Hydrated entity with post-view counters
  - 404: ErrNotFound: Unknown or deleted video
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	video, err := handler.videoService.GetVideo(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

/*
ListByChannel returns a channel's videos, newest first.

GET /api/v1/videos/channel/{channelID}

Response:
  - 200: Paginated list of the channel's videos
*/
func (handler *Handler) listByChannel(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	channelID := requestutil.Param(request, "channelID")

	videos, total, err := handler.videoService.ListByChannel(request.Context(), channelID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Create registers a new video.

POST /api/v1/videos

Request:
  - Body: createVideoRequest

Response:
  - 201: Video: Created entity
  - 400: ErrInvalidJSON: Validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createVideoRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	video := &Video{
		ChannelID:   input.ChannelID,
		Title:       input.Title,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		CoverURL:    input.CoverURL,
		Duration:    input.Duration,
		Visibility:  Visibility(input.Visibility),
		PublishedAt: pointer.To(time.Now()),
	}

	if err := handler.videoService.CreateVideo(request.Context(), video); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, video)
}

/*
Update applies a partial metadata update.

PATCH /api/v1/videos/{id}

Request:
  - Body: updateVideoRequest (empty fields keep stored values)

Response:
  - 200: Success
  - 404: ErrNotFound: Unknown or deleted video
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateVideoRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	video := &Video{
		ID:          requestutil.Param(request, "id"),
		Title:       input.Title,
		Description: input.Description,
		CoverURL:    input.CoverURL,
		Visibility:  Visibility(input.Visibility),
	}

	if err := handler.videoService.UpdateVideo(request.Context(), video); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Video updated",
	})
}

/*
Remove soft-deletes a video.

DELETE /api/v1/videos/{id}

Response:
  - 204: No Content
  - 404: ErrNotFound: Unknown or already deleted video
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if err := handler.videoService.DeleteVideo(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Rate applies the caller's reaction and returns reconciled counters.

PUT /api/v1/videos/{id}/rating

Request:
  - Body: rateRequest (State: LIKED, DISLIKED, or NONE)

Response:
  - 200: Rating: New state plus authoritative counters
  - 400: ErrInvalidJSON: Unknown state value
  - 404: ErrNotFound: Unknown video
*/
func (handler *Handler) rate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input rateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	videoID := requestutil.Param(request, "id")
	rating, err := handler.videoService.Rate(request.Context(), videoID, userID, LikingState(input.State))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, rating)
}

/*
GetRating reads the caller's current reaction to a video.

GET /api/v1/videos/{id}/rating

Response:
  - 200: State: LIKED, DISLIKED, or NONE
*/
func (handler *Handler) getRating(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "id")
	state, err := handler.videoService.GetRating(request.Context(), videoID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldState: string(state),
	})
}
