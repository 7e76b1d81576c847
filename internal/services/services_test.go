package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/balaio-dev/balaio/db"
	"github.com/balaio-dev/balaio/internal/models"
)

var userSeq int

func setupTestDB(t *testing.T) {
	t.Helper()

	require.NoError(t, db.ConnectTestDatabase())
	require.NoError(t, db.MigrateDatabase())

	tables := []interface{}{
		&models.Item{},
		&models.ListCollaborator{},
		&models.List{},
		&models.User{},
	}

	for _, table := range tables {
		require.NoError(t, db.DB.Unscoped().Where("1 = 1").Delete(table).Error)
	}
}

func createTestUser(t *testing.T, name string) models.User {
	t.Helper()

	userSeq++

	hash, err := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s%d@example.com", name, userSeq),
		PasswordHash: string(hash),
	}

	require.NoError(t, db.DB.Create(&user).Error)

	return user
}

func createTestList(t *testing.T, owner models.User, title string) models.List {
	t.Helper()

	list, err := CreateList(title, "", owner.ID)
	require.NoError(t, err)

	return list
}

func price(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}
