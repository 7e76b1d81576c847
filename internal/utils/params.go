package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetListID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "lista_id", "Lista")
}

func GetItemID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "item_id", "Item")
}

func GetCollaboratorID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "colaborador_id", "Colaborador")
}

func GetListItemID(ctx *gin.Context) (uint, uint, error) {
	var err error

	listID, err := GetListID(ctx)

	if err != nil {
		return 0, 0, err
	}

	itemID, err := GetItemID(ctx)

	if err != nil {
		return 0, 0, err
	}

	return listID, itemID, nil
}

func parseIDParam(ctx *gin.Context, name string, label string) (uint, error) {
	idStr := ctx.Param(name)

	if idStr == "" {
		return 0, errors.New("ID de " + label + " ausente")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("ID de " + label + " inválido")
	}

	return uint(id), nil
}
