// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minhvban/vidora/internal/platform/middleware"
	requestutil "github.com/minhvban/vidora/internal/platform/request"
	"github.com/minhvban/vidora/internal/platform/respond"
	"github.com/minhvban/vidora/internal/platform/sec"
	"github.com/minhvban/vidora/internal/platform/validate"
	"github.com/minhvban/vidora/pkg/pagination"
)

// Handler implements comment-related HTTP endpoints.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns a [chi.Router] configured with comment-specific routes.
//
// # Endpoints
//   - GET    /video/{videoID}   : List a video's comments.
//   - POST   /video/{videoID}   : Post a comment (auth).
//   - DELETE /{id}              : Delete own comment (auth).
//   - DELETE /moderation/{id}   : Take down any comment (moderator).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/video/{videoID}", handler.listByVideo)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/video/{videoID}", handler.create)
		r.Delete("/{id}", handler.remove)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleModerator))
		r.Delete("/moderation/{id}", handler.takeDown)
	})

	return router
}

type createCommentRequest struct {
	Body string `json:"body"`
}

/*
ListByVideo returns a video's comments, newest first.

GET /api/v1/comments/video/{videoID}

Response:
  - 200: Paginated list of comments
*/
func (handler *Handler) listByVideo(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	videoID := requestutil.Param(request, "videoID")

	comments, total, err := handler.commentService.ListByVideo(request.Context(), videoID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Create posts a comment on a video as the authenticated user.

POST /api/v1/comments/video/{videoID}

Request:
  - Body: createCommentRequest

Response:
  - 201: Comment: The persisted comment
  - 400: ErrInvalidJSON: Validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	videoID := requestutil.Param(request, "videoID")
	comment, err := handler.commentService.Create(request.Context(), videoID, userID, input.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
Remove deletes the caller's own comment.

DELETE /api/v1/comments/{id}

Response:
  - 204: No Content
  - 403: Forbidden: Comment belongs to another user
  - 404: ErrNotFound: Unknown or already deleted comment
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID := requestutil.Param(request, "id")
	if err := handler.commentService.Delete(request.Context(), commentID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
TakeDown removes any comment as a moderator.

DELETE /api/v1/comments/moderation/{id}

Response:
  - 204: No Content
  - 403: Forbidden: Caller lacks the moderator role
  - 404: ErrNotFound: Unknown or already deleted comment
*/
func (handler *Handler) takeDown(writer http.ResponseWriter, request *http.Request) {
	moderatorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID := requestutil.Param(request, "id")
	if err := handler.commentService.TakeDown(request.Context(), commentID, moderatorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
