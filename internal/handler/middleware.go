package handler

import (
	"net/http"
	"strings"

	"github.com/blues/sps/internal/logger"
	"github.com/blues/sps/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

// Authenticate parses an optional bearer token into the request's actor.
// Requests without a valid token proceed as the anonymous actor; write
// endpoints gate on RequireAuth.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			logger.Warn("invalid bearer token: %v", err)
			c.Next()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.Next()
			return
		}

		actor := model.Actor{}
		if id, ok := claims["user_id"].(float64); ok {
			actor.ID = int64(id)
		}
		if name, ok := claims["name"].(string); ok {
			actor.Name = name
		}
		if email, ok := claims["email"].(string); ok {
			actor.Email = email
		}
		if staff, ok := claims["staff"].(bool); ok {
			actor.Staff = staff
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentActor(c).Anonymous() {
			ErrorResponse(c, http.StatusUnauthorized, "please log in for access")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentActor returns the request's actor, anonymous when unauthenticated.
func CurrentActor(c *gin.Context) model.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(model.Actor); ok {
			return actor
		}
	}
	return model.Actor{}
}
