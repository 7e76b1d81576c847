package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/balaio-dev/balaio/db"
	"github.com/balaio-dev/balaio/internal/apperrors"
	"github.com/balaio-dev/balaio/internal/models"
)

func validateItemFields(productName string, quantity int, unitPrice *decimal.Decimal) error {
	productName = strings.TrimSpace(productName)

	if productName == "" {
		return apperrors.InvalidInput("Nome do produto é obrigatório")
	}

	if utf8.RuneCountInString(productName) > 100 {
		return apperrors.InvalidInput("Nome deve ter entre 1 e 100 caracteres")
	}

	if quantity < 1 {
		return apperrors.InvalidInput("Quantidade deve ser maior que zero")
	}

	if unitPrice != nil && !unitPrice.IsPositive() {
		return apperrors.InvalidInput("Valor deve ser maior que zero")
	}

	return nil
}

// requireListAccess is the gate every item operation goes through.
func requireListAccess(listID uint, userID uint) error {
	hasAccess, err := HasListAccess(listID, userID)

	if err != nil {
		return err
	}

	if !hasAccess {
		return apperrors.Forbidden("Usuário não tem acesso a esta lista")
	}

	return nil
}

func findItem(itemID uint) (models.Item, error) {
	var item models.Item

	if err := db.DB.Preload("List").First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, apperrors.NotFound("Item não encontrado")
		}
		return item, apperrors.Internal("Erro ao buscar item", err)
	}

	return item, nil
}

func CreateItem(listID uint, productName string, quantity int, unitPrice *decimal.Decimal, unit string, userID uint) (models.Item, error) {
	var item models.Item

	if err := requireListAccess(listID, userID); err != nil {
		return item, err
	}

	if err := validateItemFields(productName, quantity, unitPrice); err != nil {
		return item, err
	}

	item = models.Item{
		ProductName: strings.TrimSpace(productName),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Unit:        strings.TrimSpace(unit),
		Status:      models.ItemStatusPending,
		ListID:      listID,
	}

	if err := db.DB.Create(&item).Error; err != nil {
		return item, apperrors.Internal("Erro ao criar item", err)
	}

	return findItem(item.ID)
}

func ListItems(listID uint, userID uint) ([]models.Item, error) {
	if err := requireListAccess(listID, userID); err != nil {
		return nil, err
	}

	var items []models.Item

	err := db.DB.Preload("List").
		Where("list_id = ?", listID).
		Order("created_at DESC").
		Find(&items).Error

	if err != nil {
		return nil, apperrors.Internal("Erro ao buscar itens", err)
	}

	return items, nil
}

func ListItemsByStatus(listID uint, status string, userID uint) ([]models.Item, error) {
	if err := requireListAccess(listID, userID); err != nil {
		return nil, err
	}

	var items []models.Item

	err := db.DB.Preload("List").
		Where("list_id = ? AND status = ?", listID, status).
		Order("created_at DESC").
		Find(&items).Error

	if err != nil {
		return nil, apperrors.Internal("Erro ao buscar itens", err)
	}

	return items, nil
}

// GetItem returns the item after checking access and that it belongs to
// the given list.
func GetItem(itemID uint, listID uint, userID uint) (models.Item, error) {
	item, err := findItem(itemID)

	if err != nil {
		return item, err
	}

	if item.ListID != listID {
		return item, apperrors.InvalidInput("Item não pertence a esta lista")
	}

	if err := requireListAccess(item.ListID, userID); err != nil {
		return item, err
	}

	return item, nil
}

func UpdateItem(itemID uint, productName string, quantity int, unitPrice *decimal.Decimal, unit string, userID uint) (models.Item, error) {
	item, err := findItem(itemID)

	if err != nil {
		return item, err
	}

	if err := requireListAccess(item.ListID, userID); err != nil {
		return item, err
	}

	if err := validateItemFields(productName, quantity, unitPrice); err != nil {
		return item, err
	}

	item.ProductName = strings.TrimSpace(productName)
	item.Quantity = quantity
	item.UnitPrice = unitPrice
	item.Unit = strings.TrimSpace(unit)

	if err := db.DB.Save(&item).Error; err != nil {
		return item, apperrors.Internal("Erro ao atualizar item", err)
	}

	return item, nil
}

func MarkItemPurchased(itemID uint, userID uint) (models.Item, error) {
	return setItemStatus(itemID, models.ItemStatusPurchased, userID)
}

func MarkItemPending(itemID uint, userID uint) (models.Item, error) {
	return setItemStatus(itemID, models.ItemStatusPending, userID)
}

func setItemStatus(itemID uint, status string, userID uint) (models.Item, error) {
	item, err := findItem(itemID)

	if err != nil {
		return item, err
	}

	if err := requireListAccess(item.ListID, userID); err != nil {
		return item, err
	}

	item.Status = status

	if err := db.DB.Save(&item).Error; err != nil {
		return item, apperrors.Internal("Erro ao atualizar item", err)
	}

	return item, nil
}

// DeleteItem removes the item and returns it so callers still know
// which list it belonged to.
func DeleteItem(itemID uint, userID uint) (models.Item, error) {
	item, err := findItem(itemID)

	if err != nil {
		return item, err
	}

	if err := requireListAccess(item.ListID, userID); err != nil {
		return item, err
	}

	if err := db.DB.Delete(&item).Error; err != nil {
		return item, apperrors.Internal("Erro ao excluir item", err)
	}

	return item, nil
}

func CountItemsByStatus(listID uint, status string, userID uint) (int64, error) {
	if err := requireListAccess(listID, userID); err != nil {
		return 0, err
	}

	var count int64

	err := db.DB.Model(&models.Item{}).
		Where("list_id = ? AND status = ?", listID, status).
		Count(&count).Error

	if err != nil {
		return 0, apperrors.Internal("Erro ao contar itens", err)
	}

	return count, nil
}

type ItemStats struct {
	Total           int64
	Pending         int64
	Purchased       int64
	PercentComplete float64
}

func GetItemStats(listID uint, userID uint) (ItemStats, error) {
	var stats ItemStats

	pending, err := CountItemsByStatus(listID, models.ItemStatusPending, userID)

	if err != nil {
		return stats, err
	}

	purchased, err := CountItemsByStatus(listID, models.ItemStatusPurchased, userID)

	if err != nil {
		return stats, err
	}

	stats.Pending = pending
	stats.Purchased = purchased
	stats.Total = pending + purchased

	if stats.Total > 0 {
		stats.PercentComplete = float64(purchased) / float64(stats.Total) * 100
	}

	return stats, nil
}
