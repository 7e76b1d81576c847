package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balaio-dev/balaio/internal/models"
	"github.com/balaio-dev/balaio/internal/services"
	"github.com/balaio-dev/balaio/internal/types"
	"github.com/balaio-dev/balaio/internal/utils"
)

type ListRequest struct {
	Title       string `json:"titulo" binding:"required"`
	Description string `json:"descricao"`
}

type ShareListRequest struct {
	CollaboratorEmail string `json:"emailColaborador" binding:"required"`
}

func CreateList(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	var req ListRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": "Requisição inválida"})
		return
	}

	list, err := services.CreateList(req.Title, req.Description, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"mensagem": "Lista criada com sucesso",
		"lista":    types.NewListResponse(list),
	})
}

func ListLists(ctx *gin.Context) {
	respondLists(ctx, services.AccessibleLists)
}

func ListOwnedLists(ctx *gin.Context) {
	respondLists(ctx, services.OwnedLists)
}

func ListSharedLists(ctx *gin.Context) {
	respondLists(ctx, services.SharedLists)
}

func respondLists(ctx *gin.Context, fetch func(uint) ([]models.List, error)) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	lists, err := fetch(userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.ListResponse, 0, len(lists))

	for _, list := range lists {
		response = append(response, types.NewListResponse(list))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetList(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	listID, err := utils.GetListID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	list, err := services.GetList(listID, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewListResponse(list))
}

func UpdateList(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	listID, err := utils.GetListID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	var req ListRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": "Requisição inválida"})
		return
	}

	list, err := services.UpdateList(listID, req.Title, req.Description, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastListRefresh(list.ID)

	ctx.JSON(http.StatusOK, gin.H{
		"mensagem": "Lista atualizada com sucesso",
		"lista":    types.NewListResponse(list),
	})
}

func DeleteList(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	listID, err := utils.GetListID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	if err := services.DeleteList(listID, userID); err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastListRefresh(listID)

	ctx.JSON(http.StatusOK, gin.H{"mensagem": "Lista excluída com sucesso"})
}

func ShareList(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	listID, err := utils.GetListID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	var req ShareListRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": "Requisição inválida"})
		return
	}

	list, err := services.ShareList(listID, req.CollaboratorEmail, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastListRefresh(list.ID)

	ctx.JSON(http.StatusOK, gin.H{
		"mensagem": "Lista compartilhada com sucesso",
		"lista":    types.NewListResponse(list),
	})
}

func RemoveCollaborator(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	listID, err := utils.GetListID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	collaboratorID, err := utils.GetCollaboratorID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	list, err := services.RemoveCollaborator(listID, collaboratorID, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastListRefresh(list.ID)

	ctx.JSON(http.StatusOK, gin.H{
		"mensagem": "Colaborador removido com sucesso",
		"lista":    types.NewListResponse(list),
	})
}

// RemoveCollaboratorByEmail handles the unshare form, which knows the
// collaborator's email rather than their ID.
func RemoveCollaboratorByEmail(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	listID, err := utils.GetListID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	var req ShareListRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": "Requisição inválida"})
		return
	}

	list, err := services.RemoveCollaboratorByEmail(listID, req.CollaboratorEmail, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastListRefresh(list.ID)

	ctx.JSON(http.StatusOK, gin.H{
		"mensagem": "Colaborador removido com sucesso",
		"lista":    types.NewListResponse(list),
	})
}
