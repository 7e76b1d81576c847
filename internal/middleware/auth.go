package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/balaio-dev/balaio/db"
	"github.com/balaio-dev/balaio/internal/auth"
	"github.com/balaio-dev/balaio/internal/models"
	"github.com/balaio-dev/balaio/internal/types"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

// AuthMiddleware resolves the caller exactly once and stores a single
// AuthenticatedUser in the context. The token is read from the session
// cookie, with Authorization: Bearer accepted for non-browser clients.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := ExtractToken(ctx)

		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"erro": "Autenticação necessária"})
			return
		}

		token, err := auth.VerifyJWT(tokenString)

		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"erro": "Sessão inválida ou expirada"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"erro": "Sessão inválida ou expirada"})
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"erro": "Sessão inválida ou expirada"})
			return
		}

		userID := uint(userIDFloat)

		var user models.User

		if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"erro": "Usuário não encontrado"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
		ctx.Next()
	}
}

// ExtractToken reads the session token from the cookie or, failing
// that, an Authorization Bearer header.
func ExtractToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(auth.CookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := ctx.GetHeader("Authorization")

	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
