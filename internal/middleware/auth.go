package middleware

import (
	"errors"
	"fmt"
	"strings"

	userRepo "anoa.com/magangportal/internal/modules/user/repository"
	"anoa.com/magangportal/pkg/apperror"
	"anoa.com/magangportal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	secret   string
}

func NewAuthMiddleware(userRepo userRepo.UserRepository, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		secret:   secret,
	}
}

func unauthorized(message string) error {
	return apperror.New(apperror.ErrUnauthorized, message, nil)
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			response.Error(c, unauthorized("authorization required"))
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})

		if err != nil || !token.Valid {
			response.Error(c, unauthorized("invalid or expired token"))
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || claims.Subject == "" {
			response.Error(c, unauthorized("invalid token claims"))
			return
		}

		c.Set("user_id", claims.Subject)
		c.Next()
	}
}

// RequireRole lets the request through only when the authenticated user
// holds one of roles. It must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			response.Error(c, unauthorized("user not authenticated"))
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), userID.(string))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, unauthorized("user not found"))
				return
			}
			response.Error(c, err)
			return
		}

		for _, role := range roles {
			if user.Role.Name == role {
				c.Set("user", user)
				c.Next()
				return
			}
		}

		response.Error(c, apperror.New(apperror.ErrForbidden, "staff access required", nil))
	}
}
