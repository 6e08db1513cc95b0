package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartItemsValueIsDeterministic(t *testing.T) {
	items := CartItems{
		{ProductID: "p1", Title: "Mug", Quantity: 2, Price: 12.5},
		{ProductID: "p2", Title: "Plate", Quantity: 1, Price: 30, Image: "/img/plate.jpg"},
	}

	a, err := items.Value()
	require.NoError(t, err)
	b, err := append(CartItems{}, items...).Value()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	empty, err := CartItems(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}

func TestCartItemsScan(t *testing.T) {
	var items CartItems
	require.NoError(t, items.Scan([]byte(`[{"product_id":"p1","title":"Mug","quantity":2,"price":12.5}]`)))
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 25.0, items.Total())

	require.NoError(t, items.Scan(nil))
	assert.Empty(t, items)

	assert.Error(t, items.Scan(42))
	assert.Error(t, items.Scan("not json"))
}

func TestAbandonedCartState(t *testing.T) {
	now := time.Now()
	cart := &AbandonedCart{}
	assert.Equal(t, CartActive, cart.State())

	cart.ReminderSentAt = &now
	assert.Equal(t, CartReminded, cart.State())

	cart.ConvertedAt = &now
	assert.Equal(t, CartConverted, cart.State())
}
