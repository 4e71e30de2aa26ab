package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartAddMergesExistingProduct(t *testing.T) {
	cart := Cart{}
	cart = cart.Add(CartItem{ProductID: 1, Name: "Serum", Quantity: 1, UnitPrice: 89.90})
	cart = cart.Add(CartItem{ProductID: 1, Name: "Serum", Quantity: 2, UnitPrice: 99.90})

	assert.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity)
	// Original unit price is kept even if the item is re-added at a new price.
	assert.Equal(t, 89.90, cart[0].UnitPrice)
}

func TestCartAddAppendsNewProduct(t *testing.T) {
	cart := Cart{}
	cart = cart.Add(CartItem{ProductID: 1, Quantity: 1, UnitPrice: 10})
	cart = cart.Add(CartItem{ProductID: 2, Quantity: 1, UnitPrice: 20})

	assert.Len(t, cart, 2)
}

func TestCartRemove(t *testing.T) {
	cart := Cart{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 2},
	}
	cart = cart.Remove(1)

	assert.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].ProductID)

	// Removing a missing product is a no-op.
	cart = cart.Remove(99)
	assert.Len(t, cart, 1)
}

func TestCartSetQuantity(t *testing.T) {
	cart := Cart{{ProductID: 1, Quantity: 1}}

	cart = cart.SetQuantity(1, 5)
	assert.Equal(t, 5, cart[0].Quantity)
}

func TestCartSetQuantityZeroRemovesLine(t *testing.T) {
	cart := Cart{{ProductID: 1, Quantity: 3}}

	cart = cart.SetQuantity(1, 0)
	assert.Empty(t, cart)
}

func TestCartSetQuantityNegativeRemovesLine(t *testing.T) {
	cart := Cart{{ProductID: 1, Quantity: 3}}

	cart = cart.SetQuantity(1, -2)
	assert.Empty(t, cart)
}

func TestCartSubtotal(t *testing.T) {
	cart := Cart{
		{ProductID: 1, Quantity: 2, UnitPrice: 10.50},
		{ProductID: 2, Quantity: 1, UnitPrice: 5.00},
	}

	assert.Equal(t, 26.00, cart.Subtotal())
	assert.Equal(t, 3, cart.TotalItems())
}
