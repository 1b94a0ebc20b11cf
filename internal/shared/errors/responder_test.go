package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errWidget = stderrors.New("widget missing")

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/widgets", handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/widgets", nil))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestResponder_FillsInstanceAndMessage(t *testing.T) {
	rec, problem := serve(t, func(c *gin.Context) {
		Respond(c, ErrValidation.WithDetail("name is required"))
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, "/widgets", problem.Instance)
	assert.Equal(t, "name is required", problem.Message)
}

func TestChainedResponder_UsesMapperBeforeFallback(t *testing.T) {
	responder := NewChainedResponder("", func(err error) (ProblemDetail, bool) {
		if stderrors.Is(err, errWidget) {
			return ErrNotFound.WithDetail("Widget not found"), true
		}
		return ProblemDetail{}, false
	})

	rec, problem := serve(t, func(c *gin.Context) {
		responder.RespondError(c, fmt.Errorf("load: %w", errWidget))
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Widget not found", problem.Message)

	rec, problem = serve(t, func(c *gin.Context) {
		responder.RespondError(c, stderrors.New("connection refused"))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "unexpected server error", problem.Message)
}

func TestRootMessage(t *testing.T) {
	kind := stderrors.New("invalid input")
	cause := stderrors.New("name is required")

	assert.Equal(t, "name is required", RootMessage(fmt.Errorf("%w: %w", kind, cause)))
	assert.Equal(t, "name is required", RootMessage(fmt.Errorf("outer: %w", fmt.Errorf("%w: %w", kind, cause))))
	assert.Equal(t, "plain", RootMessage(stderrors.New("plain")))
	assert.Empty(t, RootMessage(nil))
}

func TestForStatus(t *testing.T) {
	assert.Equal(t, ErrBadRequest, ForStatus(http.StatusBadRequest))
	assert.Equal(t, ErrForbidden, ForStatus(http.StatusForbidden))
	assert.Equal(t, ErrInternal, ForStatus(http.StatusTeapot))
	assert.Equal(t, "Resource Not Found", ForStatus(http.StatusNotFound).Text())
}
