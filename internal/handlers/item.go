package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/balaio-dev/balaio/internal/models"
	"github.com/balaio-dev/balaio/internal/services"
	"github.com/balaio-dev/balaio/internal/types"
	"github.com/balaio-dev/balaio/internal/utils"
)

type ItemRequest struct {
	ProductName string           `json:"nomeProduto" binding:"required"`
	Quantity    int              `json:"quantidade" binding:"required,min=1"`
	UnitPrice   *decimal.Decimal `json:"valor"`
	Unit        string           `json:"unidade"`
}

func CreateItem(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	listID, err := utils.GetListID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	var req ItemRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": "Requisição inválida"})
		return
	}

	item, err := services.CreateItem(listID, req.ProductName, req.Quantity, req.UnitPrice, req.Unit, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastListRefresh(listID)

	ctx.JSON(http.StatusCreated, gin.H{
		"mensagem": "Item criado com sucesso",
		"item":     types.NewItemResponse(item),
	})
}

func ListItems(ctx *gin.Context) {
	respondItems(ctx, "")
}

func ListPendingItems(ctx *gin.Context) {
	respondItems(ctx, models.ItemStatusPending)
}

func ListPurchasedItems(ctx *gin.Context) {
	respondItems(ctx, models.ItemStatusPurchased)
}

func respondItems(ctx *gin.Context, status string) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	listID, err := utils.GetListID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	var items []models.Item

	if status == "" {
		items, err = services.ListItems(listID, userID)
	} else {
		items, err = services.ListItemsByStatus(listID, status, userID)
	}

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.ItemResponse, 0, len(items))

	for _, item := range items {
		response = append(response, types.NewItemResponse(item))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetItem(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	listID, itemID, err := utils.GetListItemID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	item, err := services.GetItem(itemID, listID, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewItemResponse(item))
}

func UpdateItem(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	_, itemID, err := utils.GetListItemID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	var req ItemRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": "Requisição inválida"})
		return
	}

	item, err := services.UpdateItem(itemID, req.ProductName, req.Quantity, req.UnitPrice, req.Unit, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	// Refresh the list the item actually belongs to, not the path value.
	BroadcastListRefresh(item.ListID)

	ctx.JSON(http.StatusOK, gin.H{
		"mensagem": "Item atualizado com sucesso",
		"item":     types.NewItemResponse(item),
	})
}

func MarkItemPurchased(ctx *gin.Context) {
	respondStatusChange(ctx, services.MarkItemPurchased, "Item marcado como comprado")
}

func MarkItemPending(ctx *gin.Context) {
	respondStatusChange(ctx, services.MarkItemPending, "Item marcado como pendente")
}

func respondStatusChange(ctx *gin.Context, change func(uint, uint) (models.Item, error), message string) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	_, itemID, err := utils.GetListItemID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	item, err := change(itemID, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastListRefresh(item.ListID)

	ctx.JSON(http.StatusOK, gin.H{
		"mensagem": message,
		"item":     types.NewItemResponse(item),
	})
}

func DeleteItem(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	_, itemID, err := utils.GetListItemID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	item, err := services.DeleteItem(itemID, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastListRefresh(item.ListID)

	ctx.JSON(http.StatusOK, gin.H{"mensagem": "Item excluído com sucesso"})
}

func GetItemStats(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)

	if !ok {
		return
	}

	listID, err := utils.GetListID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	stats, err := services.GetItemStats(listID, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.ItemStatsResponse{
		Total:           stats.Total,
		Pending:         stats.Pending,
		Purchased:       stats.Purchased,
		PercentComplete: stats.PercentComplete,
	})
}
