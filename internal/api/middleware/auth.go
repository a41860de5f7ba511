package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ehtishamsajjad/tm/internal/model"
	"github.com/ehtishamsajjad/tm/pkg/apierrors"
)

const userKey = "user"

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// AuthMiddleware resolves the bearer token to a known user and rejects the
// request with 401 otherwise.
func AuthMiddleware(verifier TokenVerifier, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)
		unauthorized := func() {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
		}

		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			unauthorized()
			return
		}

		userID, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			unauthorized()
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				unauthorized()
				return
			}
			zap.L().Error("failed to load user", zap.String("user_id", userID), zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgInternalError, lang),
			)
			return
		}

		SetCurrentUser(c, *user)
		c.Next()
	}
}

func SetCurrentUser(c *gin.Context, user model.User) {
	c.Set(userKey, user)
}

// CurrentUser returns the user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (model.User, bool) {
	if value, exists := c.Get(userKey); exists {
		if user, ok := value.(model.User); ok {
			return user, true
		}
	}
	return model.User{}, false
}

func UserID(c *gin.Context) string {
	user, _ := CurrentUser(c)
	return user.ID
}
