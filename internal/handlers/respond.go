package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balaio-dev/balaio/internal/apperrors"
	"github.com/balaio-dev/balaio/internal/utils"
)

// respondError writes the uniform {"erro": message} body with the status
// the error's kind maps to. Internal errors are logged and masked.
func respondError(ctx *gin.Context, err error) {
	status := apperrors.StatusCode(err)

	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		ctx.JSON(status, gin.H{"erro": "Erro interno do servidor"})
		return
	}

	ctx.JSON(status, gin.H{"erro": err.Error()})
}

func currentUserOrAbort(ctx *gin.Context) (uint, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"erro": "Autenticação necessária"})
		return 0, false
	}

	return userID, true
}
