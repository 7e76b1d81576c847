package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/balaio-dev/balaio/internal/auth"
	"github.com/balaio-dev/balaio/internal/middleware"
	"github.com/balaio-dev/balaio/internal/services"
	"github.com/balaio-dev/balaio/internal/types"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"senha" binding:"required"`
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": "Requisição inválida"})
		return
	}

	user, err := services.AuthenticateUser(req.Email, req.Password)

	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro interno do servidor"})
		return
	}

	auth.SetSessionCookie(ctx, token)

	ctx.JSON(http.StatusOK, gin.H{
		"mensagem": "Login realizado com sucesso",
		"usuario":  types.NewUserResponse(user),
	})
}

func Logout(ctx *gin.Context) {
	auth.ClearSessionCookie(ctx)

	ctx.JSON(http.StatusOK, gin.H{"mensagem": "Logout realizado com sucesso"})
}

// VerifySession reports whether the request carries a live session.
// Unauthenticated callers get 401 with autenticado=false, not an error.
func VerifySession(ctx *gin.Context) {
	tokenString := middleware.ExtractToken(ctx)

	if tokenString == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"autenticado": false})
		return
	}

	token, err := auth.VerifyJWT(tokenString)

	if err != nil || !token.Valid {
		ctx.JSON(http.StatusUnauthorized, gin.H{"autenticado": false})
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"autenticado": false})
		return
	}

	userIDFloat, ok := claims["user_id"].(float64)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"autenticado": false})
		return
	}

	user, err := services.GetUser(uint(userIDFloat))

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"autenticado": false})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"autenticado": true,
		"usuario":     types.NewUserResponse(user),
	})
}
