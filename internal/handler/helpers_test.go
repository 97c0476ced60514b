package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Burkhanovich/article-site/internal/middleware"
	"github.com/Burkhanovich/article-site/internal/models"
)

type responseEnvelope struct {
	Data       json.RawMessage        `json:"data"`
	Meta       map[string]interface{} `json:"meta"`
	Pagination *models.Pagination     `json:"pagination"`
	Error      *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testRequest struct {
	method string
	target string
	body   interface{}
	params gin.Params
	userID string
}

func newTestContext(t *testing.T, req testRequest) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var payload []byte
	switch b := req.body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		payload = raw
	}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(req.method, req.target, bytes.NewReader(payload))
	if payload != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	c.Params = req.params
	if req.userID != "" {
		c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: req.userID})
	}
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	envelope := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func idParam(id string) gin.Params {
	return gin.Params{{Key: "id", Value: id}}
}
