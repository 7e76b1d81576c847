package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balaio-dev/balaio/internal/auth"
	"github.com/balaio-dev/balaio/internal/services"
	"github.com/balaio-dev/balaio/internal/types"
	"github.com/balaio-dev/balaio/internal/utils"
)

type RegisterRequest struct {
	FullName        string `json:"nomeCompleto" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"senha" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmarSenha" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"nome" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword    string `json:"senhaAtual" binding:"required"`
	NewPassword        string `json:"novaSenha" binding:"required,min=6"`
	ConfirmNewPassword string `json:"confirmarNovaSenha" binding:"required"`
}

type DeleteAccountRequest struct {
	Password string `json:"senha" binding:"required"`
}

func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": "Requisição inválida"})
		return
	}

	user, err := services.RegisterUser(req.FullName, req.Email, req.Password, req.ConfirmPassword)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"mensagem": "Usuário cadastrado com sucesso",
		"usuario":  types.NewUserResponse(user),
	})
}

func GetProfile(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	user, err := services.GetUser(userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"nome":        user.Name,
		"email":       user.Email,
		"dataCriacao": user.CreatedAt,
	})
}

func UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	var req UpdateProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": "Requisição inválida"})
		return
	}

	user, err := services.UpdateProfile(userID, req.Name, req.Email)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"mensagem": "Perfil atualizado com sucesso",
		"usuario":  types.NewUserResponse(user),
	})
}

func ChangePassword(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	var req ChangePasswordRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": "Requisição inválida"})
		return
	}

	err := services.ChangePassword(userID, req.CurrentPassword, req.NewPassword, req.ConfirmNewPassword)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"mensagem": "Senha alterada com sucesso"})
}

// SearchUser resolves a user by email, used by the share dialog.
func SearchUser(ctx *gin.Context) {
	email := ctx.Query("email")

	if email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": "E-mail é obrigatório"})
		return
	}

	user, err := services.FindUserByEmail(email)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}

func ListUsers(ctx *gin.Context) {
	users, err := services.ListUsers()

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, types.NewUserResponse(user))
	}

	ctx.JSON(http.StatusOK, response)
}

func DeleteAccount(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"erro": "Autenticação necessária"})
		return
	}

	var req DeleteAccountRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": "Senha é obrigatória para excluir a conta"})
		return
	}

	// Re-check the password before anything destructive.
	if _, err := services.AuthenticateUser(currentUser.Email, req.Password); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": "Senha incorreta"})
		return
	}

	if err := services.DeleteUser(currentUser.ID); err != nil {
		respondError(ctx, err)
		return
	}

	auth.ClearSessionCookie(ctx)

	ctx.JSON(http.StatusOK, gin.H{"mensagem": "Conta excluída com sucesso"})
}
