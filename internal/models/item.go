package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ItemStatusPending   = "PENDENTE"
	ItemStatusPurchased = "COMPRADO"
)

type Item struct {
	gorm.Model

	ProductName string           `gorm:"size:100;not null"`
	Quantity    int              `gorm:"not null"`
	UnitPrice   *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Unit        string           `gorm:"size:20"`
	Status      string           `gorm:"not null;default:PENDENTE"`
	ListID      uint             `gorm:"not null;index"`

	// Relationships
	List List `gorm:"foreignKey:ListID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
