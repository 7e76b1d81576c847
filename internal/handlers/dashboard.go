package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balaio-dev/balaio/internal/services"
)

func GetDashboard(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	summary, err := services.DashboardSummary(userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
