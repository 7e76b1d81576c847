package models

import "gorm.io/gorm"

// ListCollaborator is the explicit join row granting a user shared
// read/write access to a list. The owner never appears here.
type ListCollaborator struct {
	gorm.Model

	ListID uint `gorm:"not null;uniqueIndex:idx_list_user"`
	UserID uint `gorm:"not null;uniqueIndex:idx_list_user"`

	// Relationships
	List List `gorm:"foreignKey:ListID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
