package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummary(t *testing.T) {
	setupTestDB(t)

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")

	list := createTestList(t, alice, "Feira")

	_, err := ShareList(list.ID, bob.Email, alice.ID)
	require.NoError(t, err)

	// bob adds Rice qty 2 at 5.00 and marks it purchased
	rice, err := CreateItem(list.ID, "Arroz", 2, price("5.00"), "kg", bob.ID)
	require.NoError(t, err)
	_, err = MarkItemPurchased(rice.ID, bob.ID)
	require.NoError(t, err)

	// purchased without a price contributes nothing to the total
	beans, err := CreateItem(list.ID, "Feijão", 3, nil, "kg", alice.ID)
	require.NoError(t, err)
	_, err = MarkItemPurchased(beans.ID, alice.ID)
	require.NoError(t, err)

	// pending items never count as spending
	_, err = CreateItem(list.ID, "Café", 1, price("19.90"), "un", alice.ID)
	require.NoError(t, err)

	summary, err := DashboardSummary(alice.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ListCount)
	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, 2, summary.TotalPurchased)
	assert.True(t, summary.TotalSpent.Equal(decimal.RequireFromString("10.00")),
		"total spent = %s, want 10.00", summary.TotalSpent)

	require.Len(t, summary.Lists, 1)
	perList := summary.Lists[0]
	assert.Equal(t, list.ID, perList.ListID)
	assert.True(t, perList.IsOwner)
	assert.Equal(t, 3, perList.ItemCount)
	assert.Equal(t, 2, perList.PurchasedCount)
	assert.True(t, perList.TotalSpent.Equal(decimal.RequireFromString("10.00")))

	t.Run("collaborator sees the same list, not as owner", func(t *testing.T) {
		bobSummary, err := DashboardSummary(bob.ID)
		require.NoError(t, err)
		require.Len(t, bobSummary.Lists, 1)
		assert.False(t, bobSummary.Lists[0].IsOwner)
		assert.True(t, bobSummary.TotalSpent.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("revoking bob keeps his item on the list", func(t *testing.T) {
		_, err := RemoveCollaborator(list.ID, bob.ID, alice.ID)
		require.NoError(t, err)

		hasAccess, err := HasListAccess(list.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, hasAccess)

		bobSummary, err := DashboardSummary(bob.ID)
		require.NoError(t, err)
		assert.Zero(t, bobSummary.ListCount)

		items, err := ListItems(list.ID, alice.ID)
		require.NoError(t, err)
		assert.Len(t, items, 3)

		summary, err := DashboardSummary(alice.ID)
		require.NoError(t, err)
		assert.True(t, summary.TotalSpent.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("empty dashboard is all zeroes", func(t *testing.T) {
		carol := createTestUser(t, "carol")

		summary, err := DashboardSummary(carol.ID)
		require.NoError(t, err)
		assert.Zero(t, summary.ListCount)
		assert.Zero(t, summary.TotalItems)
		assert.True(t, summary.TotalSpent.IsZero())
		assert.Empty(t, summary.Lists)
	})
}
