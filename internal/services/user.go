package services

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/balaio-dev/balaio/db"
	"github.com/balaio-dev/balaio/internal/apperrors"
	"github.com/balaio-dev/balaio/internal/models"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// RegisterUser creates an account. Nothing is persisted on any failure
// and the raw password never leaves this function.
func RegisterUser(fullName string, email string, password string, confirmPassword string) (models.User, error) {
	var user models.User

	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))

	if fullName == "" {
		return user, apperrors.InvalidInput("Nome é obrigatório")
	}

	if !emailPattern.MatchString(email) {
		return user, apperrors.InvalidInput("E-mail deve ter um formato válido")
	}

	var count int64

	if err := db.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return user, apperrors.Internal("Erro ao verificar e-mail", err)
	}

	if count > 0 {
		return user, apperrors.Conflict("E-mail já cadastrado")
	}

	if password != confirmPassword {
		return user, apperrors.InvalidInput("Senhas não coincidem")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return user, apperrors.Internal("Erro ao processar senha", err)
	}

	user = models.User{
		Name:         fullName,
		Email:        email,
		PasswordHash: string(passwordHash),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		return user, apperrors.Internal("Erro ao cadastrar usuário", err)
	}

	return user, nil
}

// AuthenticateUser checks credentials. Unknown email and wrong password
// fail with the same message so callers cannot enumerate accounts.
func AuthenticateUser(email string, password string) (models.User, error) {
	var user models.User

	email = strings.ToLower(strings.TrimSpace(email))

	err := db.DB.Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, apperrors.Unauthenticated("Email ou senha inválidos")
		}
		return user, apperrors.Internal("Erro ao buscar usuário", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return user, apperrors.Unauthenticated("Email ou senha inválidos")
	}

	return user, nil
}

func GetUser(userID uint) (models.User, error) {
	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, apperrors.NotFound("Usuário não encontrado")
		}
		return user, apperrors.Internal("Erro ao buscar usuário", err)
	}

	return user, nil
}

func FindUserByEmail(email string) (models.User, error) {
	var user models.User

	email = strings.ToLower(strings.TrimSpace(email))

	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, apperrors.NotFound("Usuário não encontrado")
		}
		return user, apperrors.Internal("Erro ao buscar usuário", err)
	}

	return user, nil
}

func ListUsers() ([]models.User, error) {
	var users []models.User

	if err := db.DB.Order("name").Find(&users).Error; err != nil {
		return nil, apperrors.Internal("Erro ao buscar usuários", err)
	}

	return users, nil
}

func UpdateProfile(userID uint, name string, email string) (models.User, error) {
	user, err := GetUser(userID)

	if err != nil {
		return user, err
	}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return user, apperrors.InvalidInput("Nome é obrigatório")
	}

	if count := utf8.RuneCountInString(name); count < 2 || count > 100 {
		return user, apperrors.InvalidInput("Nome deve ter entre 2 e 100 caracteres")
	}

	if email == "" {
		return user, apperrors.InvalidInput("E-mail é obrigatório")
	}

	if !emailPattern.MatchString(email) {
		return user, apperrors.InvalidInput("E-mail deve ter um formato válido")
	}

	var count int64

	err = db.DB.Model(&models.User{}).
		Where("email = ? AND id != ?", email, user.ID).
		Count(&count).Error

	if err != nil {
		return user, apperrors.Internal("Erro ao verificar e-mail", err)
	}

	if count > 0 {
		return user, apperrors.Conflict("E-mail já está em uso")
	}

	user.Name = name
	user.Email = email

	if err := db.DB.Save(&user).Error; err != nil {
		return user, apperrors.Internal("Erro ao atualizar usuário", err)
	}

	return user, nil
}

func ChangePassword(userID uint, currentPassword string, newPassword string, confirmPassword string) error {
	user, err := GetUser(userID)

	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.InvalidInput("Senha atual incorreta")
	}

	if newPassword != confirmPassword {
		return apperrors.InvalidInput("Senhas não coincidem")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)

	if err != nil {
		return apperrors.Internal("Erro ao processar senha", err)
	}

	err = db.DB.Model(&user).Update("password_hash", string(passwordHash)).Error

	if err != nil {
		return apperrors.Internal("Erro ao atualizar senha", err)
	}

	return nil
}

// DeleteUser removes an account. Rejected while the user still owns
// lists; collaborator rows are revoked so shared lists keep working.
func DeleteUser(userID uint) error {
	user, err := GetUser(userID)

	if err != nil {
		return err
	}

	var owned int64

	if err := db.DB.Model(&models.List{}).Where("owner_id = ?", user.ID).Count(&owned).Error; err != nil {
		return apperrors.Internal("Erro ao verificar listas", err)
	}

	if owned > 0 {
		return apperrors.InvalidInput("Usuário possui listas ativas")
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.ListCollaborator{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})

	if err != nil {
		return apperrors.Internal("Erro ao excluir usuário", err)
	}

	return nil
}
