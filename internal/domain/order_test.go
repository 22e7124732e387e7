package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func rawOrder(kind OrderType, platinum int) Order {
	return Order{
		Visible:      true,
		CreationDate: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Quantity:     1,
		User: User{
			Reputation: 12,
			Locale:     "en",
			IngameName: "Seller",
			ID:         "u1",
			Region:     "en",
			Status:     UserStatusOnline,
		},
		LastUpdate: time.Date(2024, 1, 3, 3, 4, 5, 0, time.UTC),
		Platinum:   platinum,
		OrderType:  kind,
		Platform:   "pc",
		ID:         "o1",
		Region:     "en",
	}
}

func TestOrder_WithItem_SetsItem(t *testing.T) {
	item := Item{ID: "i1", URLName: "new_loka_sigil", ItemName: "New Loka Sigil", Vaulted: boolPtr(true)}
	raw := rawOrder(OrderTypeSell, 10)

	enriched := raw.WithItem(item)

	require.True(t, enriched.IsEnriched())
	assert.Equal(t, item, *enriched.Item)
	assert.Equal(t, "new_loka_sigil", enriched.ItemURLName())

	// el resto de campos se copia sin cambios
	enriched.Item = nil
	assert.Equal(t, raw, enriched)
}

func TestOrder_WithItem_DoesNotMutate(t *testing.T) {
	item := Item{URLName: "forma_blueprint", Vaulted: boolPtr(false)}
	raw := rawOrder(OrderTypeSell, 3)

	enriched := raw.WithItem(item)

	assert.Nil(t, raw.Item, "la orden raw no debe recibir el item")
	assert.False(t, raw.IsEnriched())

	// modificar la copia enriquecida no toca el item original
	*enriched.Item.Vaulted = true
	enriched.Item.ItemName = "changed"
	assert.False(t, *item.Vaulted)
	assert.Empty(t, item.ItemName)
}

func TestOrder_WithItem_Idempotent(t *testing.T) {
	item := Item{URLName: "new_loka_sigil", Vaulted: boolPtr(true)}
	once := rawOrder(OrderTypeSell, 10).WithItem(item)
	twice := once.WithItem(item)

	assert.Equal(t, once, twice)
}

func TestOrder_OptionalFieldsStayAbsent(t *testing.T) {
	raw := rawOrder(OrderTypeBuy, 1)
	enriched := raw.WithItem(Item{URLName: "x"})

	assert.Nil(t, enriched.User.Avatar)
	assert.Nil(t, enriched.Item.Vaulted)
	assert.False(t, enriched.Item.IsVaulted())
}

func TestItem_DisplayName(t *testing.T) {
	assert.Equal(t, "Ash Prime Set", Item{URLName: "ash_prime_set", ItemName: "Ash Prime Set"}.DisplayName())
	assert.Equal(t, "ash_prime_set", Item{URLName: "ash_prime_set"}.DisplayName())
}

func TestUserStatus_IsAvailable(t *testing.T) {
	assert.True(t, UserStatusOnline.IsAvailable())
	assert.True(t, UserStatusInGame.IsAvailable())
	assert.False(t, UserStatusOffline.IsAvailable())
	assert.False(t, UserStatus("away").IsAvailable())
}

func TestFetchError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("scanner: %w", &FetchError{Op: "list_orders", Slug: "ash_prime_set", Err: cause})

	assert.True(t, IsFetchError(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "list_orders ash_prime_set")

	withStatus := &FetchError{Op: "list_items", StatusCode: 503, Err: cause}
	assert.Contains(t, withStatus.Error(), "status 503")
	assert.False(t, IsFetchError(cause))
}
