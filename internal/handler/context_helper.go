package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Burkhanovich/article-site/internal/middleware"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
	"github.com/Burkhanovich/article-site/pkg/response"
)

var validate = validator.New()

// currentUserID returns the authenticated user id, or "" for anonymous requests.
func currentUserID(c *gin.Context) string {
	if claims, ok := middleware.Claims(c); ok {
		return claims.UserID
	}
	return ""
}

// requireUserID writes a 401 and reports false when the request carries no identity.
func requireUserID(c *gin.Context) (string, bool) {
	id := currentUserID(c)
	if id == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", false
	}
	return id, true
}

func bindJSON(c *gin.Context, dest interface{}, message string) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
	}
	return validateStruct(dest, message)
}

// bindOptionalJSON accepts an empty body as the zero payload.
func bindOptionalJSON(c *gin.Context, dest interface{}, message string) error {
	if c.Request.ContentLength == 0 {
		return validateStruct(dest, message)
	}
	return bindJSON(c, dest, message)
}

func bindQuery(c *gin.Context, dest interface{}, message string) error {
	if err := c.ShouldBindQuery(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
	}
	return validateStruct(dest, message)
}

func validateStruct(dest interface{}, message string) error {
	if err := validate.Struct(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
	}
	return nil
}
