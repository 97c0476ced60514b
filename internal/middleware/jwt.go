package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Burkhanovich/article-site/internal/models"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
	"github.com/Burkhanovich/article-site/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// TokenValidator resolves a bearer token into claims. *service.AuthService satisfies it.
type TokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// JWT rejects requests without a valid bearer token.
func JWT(auth TokenValidator) gin.HandlerFunc {
	return authenticate(auth, true)
}

// OptionalJWT attaches claims when a valid token is present and never blocks. Public article
// reads use it so authors can preview their own unpublished work.
func OptionalJWT(auth TokenValidator) gin.HandlerFunc {
	return authenticate(auth, false)
}

func authenticate(auth TokenValidator, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := bearerToken(header)
		if !ok {
			if required {
				err := appErrors.ErrUnauthorized
				if header != "" {
					err = appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header")
				}
				abort(c, err)
				return
			}
			c.Next()
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			if required {
				abort(c, err)
				return
			}
			c.Next()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// Claims returns the claims attached by JWT or OptionalJWT.
func Claims(c *gin.Context) (*models.JWTClaims, bool) {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok && claims != nil
}

// RequireRoles lets through callers whose token carries one of roles. Superusers always pass.
// The token role is a coarse gate; services re-check the stored user before mutating.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			abort(c, appErrors.ErrUnauthorized)
			return
		}
		if _, permitted := allowed[claims.Role]; !permitted && !claims.IsSuperuser {
			abort(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
