package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionValidTotalPrice(t *testing.T) {
	trx := Transaction{
		Quantity:       4,
		PricePerTicket: decimal.RequireFromString("10.00"),
		TotalPrice:     decimal.RequireFromString("40.00"),
	}
	assert.True(t, trx.ValidTotalPrice())

	trx.TotalPrice = decimal.RequireFromString("40.000")
	assert.True(t, trx.ValidTotalPrice(), "trailing zeros must not matter")

	trx.TotalPrice = decimal.RequireFromString("39.99")
	assert.False(t, trx.ValidTotalPrice())
}

func TestUserAuthenticated(t *testing.T) {
	var anon User
	assert.False(t, anon.IsAuthenticated())

	user := User{}
	user.ID = 12
	assert.True(t, user.IsAuthenticated())
	assert.Equal(t, uint(12), user.Identity())

	// *User satisfies the capability handlers depend on
	var _ Authenticated = &user
}
