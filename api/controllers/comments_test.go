package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avalosmendoza/wedding-backend/pkg/db/models"
	pkgerrors "github.com/avalosmendoza/wedding-backend/pkg/errors"
)

type fakeCommentsService struct {
	comments []models.Comment
	created  *models.Comment
	err      error
}

func (s *fakeCommentsService) Create(ctx context.Context, guestName, message string) (*models.Comment, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &models.Comment{
		ID:        uuid.New(),
		GuestName: guestName,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	return s.created, nil
}

func (s *fakeCommentsService) ListRecent(ctx context.Context) ([]models.Comment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.comments, nil
}

func TestListCommentsEmpty(t *testing.T) {
	svc := &fakeCommentsService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/comments", nil)

	ListComments(svc, testLogger())(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// Empty list serializes as [], never null.
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestListComments(t *testing.T) {
	svc := &fakeCommentsService{
		comments: []models.Comment{
			{ID: uuid.New(), GuestName: "Ada", Message: "Congrats!", Timestamp: time.Now().UTC()},
			{ID: uuid.New(), GuestName: "Bob", Message: "Cheers", Timestamp: time.Now().UTC()},
		},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/comments", nil)

	ListComments(svc, testLogger())(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body []commentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "Ada", body[0].GuestName)
}

func TestCreateComment(t *testing.T) {
	svc := &fakeCommentsService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/comments",
		strings.NewReader(`{"guest_name":"Ada","message":"Congrats!"}`))

	CreateComment(svc, testLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body commentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Ada", body.GuestName)
	assert.Equal(t, "Congrats!", body.Message)
	assert.NotEmpty(t, body.ID)
	require.NotNil(t, svc.created)
}

func TestCreateCommentMissingFields(t *testing.T) {
	svc := &fakeCommentsService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/comments",
		strings.NewReader(`{"guest_name":"Ada"}`))

	CreateComment(svc, testLogger())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "message is required")
	assert.Nil(t, svc.created)
}

func TestCreateCommentMalformedBody(t *testing.T) {
	svc := &fakeCommentsService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/comments", strings.NewReader(`{`))

	CreateComment(svc, testLogger())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCommentsDependencyFailure(t *testing.T) {
	svc := &fakeCommentsService{
		err: pkgerrors.Wrap(pkgerrors.CodeDependency, assert.AnError, "list comments"),
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/comments", nil)

	ListComments(svc, testLogger())(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "list comments")
}
