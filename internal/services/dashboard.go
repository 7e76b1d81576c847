package services

import (
	"github.com/shopspring/decimal"

	"github.com/balaio-dev/balaio/db"
	"github.com/balaio-dev/balaio/internal/apperrors"
	"github.com/balaio-dev/balaio/internal/models"
	"github.com/balaio-dev/balaio/internal/types"
)

// DashboardSummary aggregates every list the user can access. Recomputed
// from current data on each call, no caching. Total spent sums
// price × quantity over purchased items; items without a price
// contribute nothing.
func DashboardSummary(userID uint) (types.DashboardResponse, error) {
	summary := types.DashboardResponse{
		TotalSpent: decimal.Zero,
		Lists:      []types.ListSpendingSummary{},
	}

	lists, err := AccessibleLists(userID)

	if err != nil {
		return summary, err
	}

	summary.ListCount = len(lists)

	for _, list := range lists {
		var items []models.Item

		if err := db.DB.Where("list_id = ?", list.ID).Find(&items).Error; err != nil {
			return summary, apperrors.Internal("Erro ao buscar itens", err)
		}

		listSummary := types.ListSpendingSummary{
			ListID:      list.ID,
			Title:       list.Title,
			Description: list.Description,
			TotalSpent:  decimal.Zero,
			ItemCount:   len(items),
			IsOwner:     list.OwnerID == userID,
		}

		for _, item := range items {
			if item.Status != models.ItemStatusPurchased {
				continue
			}

			listSummary.PurchasedCount++

			if item.UnitPrice == nil {
				continue
			}

			spent := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			listSummary.TotalSpent = listSummary.TotalSpent.Add(spent)
		}

		summary.TotalItems += listSummary.ItemCount
		summary.TotalPurchased += listSummary.PurchasedCount
		summary.TotalSpent = summary.TotalSpent.Add(listSummary.TotalSpent)
		summary.Lists = append(summary.Lists, listSummary)
	}

	return summary, nil
}
