package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/avalosmendoza/wedding-backend/api/responses"
	"github.com/avalosmendoza/wedding-backend/api/validators"
	"github.com/avalosmendoza/wedding-backend/pkg/db/models"
	"github.com/avalosmendoza/wedding-backend/pkg/logger"
)

type commentsService interface {
	Create(ctx context.Context, guestName, message string) (*models.Comment, error)
	ListRecent(ctx context.Context) ([]models.Comment, error)
}

type createCommentRequest struct {
	GuestName string `json:"guest_name" validate:"required,max=120"`
	Message   string `json:"message" validate:"required,max=2000"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	GuestName string    `json:"guest_name"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func toCommentResponse(comment models.Comment) commentResponse {
	return commentResponse{
		ID:        comment.ID.String(),
		GuestName: comment.GuestName,
		Message:   comment.Message,
		Timestamp: comment.Timestamp,
	}
}

// ListComments returns the newest guestbook comments as a bare array.
func ListComments(svc commentsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comments, err := svc.ListRecent(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		out := make([]commentResponse, 0, len(comments))
		for _, comment := range comments {
			out = append(out, toCommentResponse(comment))
		}
		responses.WriteJSON(r.Context(), w, logg, http.StatusOK, out)
	}
}

// CreateComment stores a guestbook comment and echoes it back.
func CreateComment(svc commentsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCommentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		comment, err := svc.Create(r.Context(), req.GuestName, req.Message)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteJSON(r.Context(), w, logg, http.StatusOK, toCommentResponse(*comment))
	}
}
