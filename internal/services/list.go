package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/balaio-dev/balaio/db"
	"github.com/balaio-dev/balaio/internal/apperrors"
	"github.com/balaio-dev/balaio/internal/models"
)

// listPreloads loads everything the wire representation of a list needs.
func listPreloads(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Owner").Preload("Collaborators", func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("User")
	})
}

func findList(listID uint) (models.List, error) {
	var list models.List

	if err := listPreloads(db.DB).First(&list, listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return list, apperrors.NotFound("Lista não encontrada")
		}
		return list, apperrors.Internal("Erro ao buscar lista", err)
	}

	return list, nil
}

// Length bounds count characters, not bytes.
func validateListFields(title string, description string) error {
	title = strings.TrimSpace(title)

	if title == "" {
		return apperrors.InvalidInput("Título é obrigatório")
	}

	if utf8.RuneCountInString(title) > 100 {
		return apperrors.InvalidInput("Título deve ter entre 1 e 100 caracteres")
	}

	if utf8.RuneCountInString(description) > 500 {
		return apperrors.InvalidInput("Descrição deve ter no máximo 500 caracteres")
	}

	return nil
}

// HasListAccess reports whether the user is the list's owner or one of
// its collaborators. Unknown users are simply not collaborators.
func HasListAccess(listID uint, userID uint) (bool, error) {
	var list models.List

	if err := db.DB.First(&list, listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.NotFound("Lista não encontrada")
		}
		return false, apperrors.Internal("Erro ao buscar lista", err)
	}

	if list.OwnerID == userID {
		return true, nil
	}

	var count int64

	err := db.DB.Model(&models.ListCollaborator{}).
		Where("list_id = ? AND user_id = ?", listID, userID).
		Count(&count).Error

	if err != nil {
		return false, apperrors.Internal("Erro ao verificar acesso", err)
	}

	return count > 0, nil
}

func CreateList(title string, description string, ownerID uint) (models.List, error) {
	var list models.List

	if err := validateListFields(title, description); err != nil {
		return list, err
	}

	var owner models.User

	if err := db.DB.First(&owner, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return list, apperrors.NotFound("Usuário não encontrado")
		}
		return list, apperrors.Internal("Erro ao buscar usuário", err)
	}

	list = models.List{
		Title:       strings.TrimSpace(title),
		Description: description,
		OwnerID:     owner.ID,
	}

	if err := db.DB.Create(&list).Error; err != nil {
		return list, apperrors.Internal("Erro ao criar lista", err)
	}

	list.Owner = owner

	return list, nil
}

// AccessibleLists returns every list the user owns or collaborates on.
func AccessibleLists(userID uint) ([]models.List, error) {
	collaborations := db.DB.Model(&models.ListCollaborator{}).
		Select("list_id").
		Where("user_id = ?", userID)

	var lists []models.List

	err := listPreloads(db.DB).
		Where("owner_id = ? OR id IN (?)", userID, collaborations).
		Order("created_at DESC").
		Find(&lists).Error

	if err != nil {
		return nil, apperrors.Internal("Erro ao buscar listas", err)
	}

	return lists, nil
}

func OwnedLists(userID uint) ([]models.List, error) {
	var lists []models.List

	err := listPreloads(db.DB).
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error

	if err != nil {
		return nil, apperrors.Internal("Erro ao buscar listas", err)
	}

	return lists, nil
}

func SharedLists(userID uint) ([]models.List, error) {
	collaborations := db.DB.Model(&models.ListCollaborator{}).
		Select("list_id").
		Where("user_id = ?", userID)

	var lists []models.List

	err := listPreloads(db.DB).
		Where("id IN (?)", collaborations).
		Order("created_at DESC").
		Find(&lists).Error

	if err != nil {
		return nil, apperrors.Internal("Erro ao buscar listas", err)
	}

	return lists, nil
}

// GetList returns the list after an access check.
func GetList(listID uint, userID uint) (models.List, error) {
	hasAccess, err := HasListAccess(listID, userID)

	if err != nil {
		return models.List{}, err
	}

	if !hasAccess {
		return models.List{}, apperrors.Forbidden("Acesso negado a esta lista")
	}

	return findList(listID)
}

// UpdateList changes title and description. Owner or collaborator.
func UpdateList(listID uint, title string, description string, userID uint) (models.List, error) {
	list, err := findList(listID)

	if err != nil {
		return list, err
	}

	hasAccess, err := HasListAccess(listID, userID)

	if err != nil {
		return list, err
	}

	if !hasAccess {
		return list, apperrors.Forbidden("Usuário não tem permissão para editar esta lista")
	}

	if err := validateListFields(title, description); err != nil {
		return list, err
	}

	list.Title = strings.TrimSpace(title)
	list.Description = description

	if err := db.DB.Save(&list).Error; err != nil {
		return list, apperrors.Internal("Erro ao atualizar lista", err)
	}

	return list, nil
}

// DeleteList removes the list with all its items and collaborator rows.
// Owner only.
func DeleteList(listID uint, userID uint) error {
	list, err := findList(listID)

	if err != nil {
		return err
	}

	if list.OwnerID != userID {
		return apperrors.Forbidden("Apenas o proprietário pode excluir a lista")
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", list.ID).Delete(&models.Item{}).Error; err != nil {
			return err
		}

		if err := tx.Where("list_id = ?", list.ID).Delete(&models.ListCollaborator{}).Error; err != nil {
			return err
		}

		return tx.Delete(&list).Error
	})

	if err != nil {
		return apperrors.Internal("Erro ao excluir lista", err)
	}

	return nil
}

// ShareList grants a user access to the list by email. Owner only.
func ShareList(listID uint, collaboratorEmail string, requesterID uint) (models.List, error) {
	list, err := findList(listID)

	if err != nil {
		return list, err
	}

	if list.OwnerID != requesterID {
		return list, apperrors.Forbidden("Apenas o proprietário pode compartilhar a lista")
	}

	email := strings.ToLower(strings.TrimSpace(collaboratorEmail))

	if email == "" {
		return list, apperrors.InvalidInput("E-mail inválido")
	}

	if strings.EqualFold(list.Owner.Email, email) {
		return list, apperrors.InvalidInput("Não é possível compartilhar a lista com o proprietário")
	}

	var collaborator models.User

	if err := db.DB.Where("email = ?", email).First(&collaborator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return list, apperrors.NotFound("Usuário colaborador não encontrado")
		}
		return list, apperrors.Internal("Erro ao buscar usuário", err)
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var count int64

		err := tx.Model(&models.ListCollaborator{}).
			Where("list_id = ? AND user_id = ?", list.ID, collaborator.ID).
			Count(&count).Error

		if err != nil {
			return err
		}

		if count > 0 {
			return apperrors.Conflict("Lista já foi compartilhada para este e-mail")
		}

		membership := models.ListCollaborator{
			ListID: list.ID,
			UserID: collaborator.ID,
		}

		if err := tx.Create(&membership).Error; err != nil {
			return err
		}

		return tx.Model(&list).Update("updated_at", time.Now()).Error
	})

	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindInternal {
			return list, err
		}
		return list, apperrors.Internal("Erro ao compartilhar lista", err)
	}

	return findList(listID)
}

// RemoveCollaborator revokes a collaborator by user ID. Owner only.
func RemoveCollaborator(listID uint, collaboratorID uint, requesterID uint) (models.List, error) {
	list, err := findList(listID)

	if err != nil {
		return list, err
	}

	if list.OwnerID != requesterID {
		return list, apperrors.Forbidden("Apenas o proprietário pode remover colaboradores")
	}

	return revokeCollaborator(list, "user_id = ?", "Colaborador não encontrado", collaboratorID)
}

// RemoveCollaboratorByEmail revokes a collaborator resolved by email
// against the list's current collaborators. Owner only.
func RemoveCollaboratorByEmail(listID uint, collaboratorEmail string, requesterID uint) (models.List, error) {
	list, err := findList(listID)

	if err != nil {
		return list, err
	}

	if list.OwnerID != requesterID {
		return list, apperrors.Forbidden("Apenas o proprietário pode remover colaboradores")
	}

	email := strings.ToLower(strings.TrimSpace(collaboratorEmail))

	for _, collab := range list.Collaborators {
		if strings.EqualFold(collab.User.Email, email) {
			return revokeCollaborator(list, "user_id = ?", "Colaborador não encontrado nesta lista", collab.UserID)
		}
	}

	return list, apperrors.NotFound("Colaborador não encontrado nesta lista")
}

func revokeCollaborator(list models.List, condition string, notFoundMessage string, args ...interface{}) (models.List, error) {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("list_id = ?", list.ID).Where(condition, args...).Delete(&models.ListCollaborator{})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return apperrors.NotFound(notFoundMessage)
		}

		return tx.Model(&list).Update("updated_at", time.Now()).Error
	})

	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindInternal {
			return list, err
		}
		return list, apperrors.Internal("Erro ao remover colaborador", err)
	}

	return findList(list.ID)
}
