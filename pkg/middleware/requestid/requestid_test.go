package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(seen, fromCtx *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/", func(c *gin.Context) {
		*seen = Value(c)
		*fromCtx = FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func TestMiddlewareMintsID(t *testing.T) {
	var seen, fromCtx string
	r := newRouter(&seen, &fromCtx)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, fromCtx)
	assert.Equal(t, seen, w.Header().Get(HeaderKey))
}

func TestMiddlewareReusesInboundID(t *testing.T) {
	var seen, fromCtx string
	r := newRouter(&seen, &fromCtx)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderKey, "edit-desk-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "edit-desk-42", seen)
	assert.Equal(t, "edit-desk-42", fromCtx)
}

func TestMiddlewareReplacesMalformedID(t *testing.T) {
	for _, bad := range []string{"has space", strings.Repeat("x", maxLength+1), "tab\tinside"} {
		var seen, fromCtx string
		r := newRouter(&seen, &fromCtx)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderKey, bad)
		r.ServeHTTP(httptest.NewRecorder(), req)

		_, err := uuid.Parse(seen)
		assert.NoError(t, err, bad)
	}
}

func TestFromContextWithoutID(t *testing.T) {
	assert.Equal(t, "", FromContext(context.Background()))
	assert.Equal(t, "abc", FromContext(WithValue(context.Background(), "abc")))
}
