package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/balaio-dev/balaio/internal/models"
)

// Wire DTOs. The JSON vocabulary is the original Portuguese API contract
// and must not drift.

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

type ListResponse struct {
	ID            uint           `json:"id"`
	Title         string         `json:"titulo"`
	Description   string         `json:"descricao"`
	CreatedAt     time.Time      `json:"dataCriacao"`
	UpdatedAt     time.Time      `json:"dataAtualizacao"`
	Owner         UserResponse   `json:"proprietario"`
	Collaborators []UserResponse `json:"colaboradores"`
}

type ItemListRef struct {
	ID    uint   `json:"id"`
	Title string `json:"titulo"`
}

type ItemResponse struct {
	ID          uint             `json:"id"`
	ProductName string           `json:"nomeProduto"`
	Quantity    int              `json:"quantidade"`
	UnitPrice   *decimal.Decimal `json:"valor"`
	Unit        string           `json:"unidade,omitempty"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"dataCriacao"`
	UpdatedAt   time.Time        `json:"dataAtualizacao"`
	List        ItemListRef      `json:"lista"`
}

type ItemStatsResponse struct {
	Total           int64   `json:"total"`
	Pending         int64   `json:"pendentes"`
	Purchased       int64   `json:"comprados"`
	PercentComplete float64 `json:"percentualCompleto"`
}

type ListSpendingSummary struct {
	ListID         uint            `json:"listaId"`
	Title          string          `json:"titulo"`
	Description    string          `json:"descricao"`
	TotalSpent     decimal.Decimal `json:"totalGasto"`
	ItemCount      int             `json:"quantidadeItens"`
	PurchasedCount int             `json:"quantidadeItensComprados"`
	IsOwner        bool            `json:"proprietario"`
}

type DashboardResponse struct {
	ListCount      int                   `json:"quantidadeListas"`
	TotalSpent     decimal.Decimal       `json:"totalGastoGeral"`
	TotalItems     int                   `json:"totalItens"`
	TotalPurchased int                   `json:"totalItensComprados"`
	Lists          []ListSpendingSummary `json:"listasComGastos"`
}

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// NewListResponse expects Owner and Collaborators (with their User)
// preloaded.
func NewListResponse(list models.List) ListResponse {
	collaborators := make([]UserResponse, 0, len(list.Collaborators))

	for _, collab := range list.Collaborators {
		collaborators = append(collaborators, NewUserResponse(collab.User))
	}

	return ListResponse{
		ID:            list.ID,
		Title:         list.Title,
		Description:   list.Description,
		CreatedAt:     list.CreatedAt,
		UpdatedAt:     list.UpdatedAt,
		Owner:         NewUserResponse(list.Owner),
		Collaborators: collaborators,
	}
}

// NewItemResponse expects List preloaded.
func NewItemResponse(item models.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Unit:        item.Unit,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
		List: ItemListRef{
			ID:    item.List.ID,
			Title: item.List.Title,
		},
	}
}
