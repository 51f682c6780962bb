package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/internal/dto"
	"github.com/avetkin/scooter-rental/internal/service"
)

const (
	contextUserID = "user_id"
	contextClaims = "claims"
)

// AuthMiddleware validates the session cookie and adds user info to context
func AuthMiddleware(authService service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Session cookie is required",
			})
			c.Abort()
			return
		}

		claims, err := authService.ValidateSession(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid or expired session",
			})
			c.Abort()
			return
		}

		c.Set(contextUserID, claims.UserID)
		c.Set(contextClaims, claims)

		c.Next()
	}
}

// currentUserID reads the authenticated user's id set by AuthMiddleware
func currentUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(contextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// currentClaims reads the session claims set by AuthMiddleware
func currentClaims(c *gin.Context) (*domain.SessionClaims, bool) {
	v, exists := c.Get(contextClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*domain.SessionClaims)
	return claims, ok
}

func respondUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error:   "Unauthorized",
		Message: "User ID not found in context",
	})
}
