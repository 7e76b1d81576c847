package models

import "gorm.io/gorm"

type List struct {
	gorm.Model

	Title       string `gorm:"size:100;not null"`
	Description string `gorm:"size:500"`
	OwnerID     uint   `gorm:"not null;index"`

	// Relationships
	Owner         User               `gorm:"foreignKey:OwnerID"`
	Collaborators []ListCollaborator `gorm:"foreignKey:ListID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Items         []Item             `gorm:"foreignKey:ListID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
