package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almansori/corona/internal/domain/cart"
)

func newTestItem(code string, price, quantity int64) cart.Item {
	return cart.Item{
		Code:      code,
		Name:      "Product " + code,
		UnitPrice: decimal.NewFromInt(price),
		Quantity:  decimal.NewFromInt(quantity),
	}
}

func newOpenOrder(items ...cart.Item) *Order {
	return &Order{
		ID:              0,
		Username:        "alice",
		Items:           items,
		DeliveryAddress: "1 Main St",
		Status:          StatusOpen,
	}
}

func TestOrderTotal(t *testing.T) {
	o := newOpenOrder(
		newTestItem("p1", 10, 2),
		newTestItem("p2", 5, 3),
	)

	assert.True(t, o.Total().Equal(decimal.NewFromInt(35)), "total = %s", o.Total())
}

func TestOrderTotal_NoItems(t *testing.T) {
	o := newOpenOrder()
	assert.True(t, o.Total().IsZero())
}

func TestOrderClose(t *testing.T) {
	o := newOpenOrder(newTestItem("p1", 10, 1))

	require.NoError(t, o.Close(Cash()))

	assert.Equal(t, StatusClosed, o.Status)
	require.NotNil(t, o.Payment)
	assert.Equal(t, MethodCash, o.Payment.Method)
}

func TestOrderClose_AlreadyClosed(t *testing.T) {
	o := newOpenOrder()
	require.NoError(t, o.Close(Cash()))

	card, err := CreditCard("1234567890123456")
	require.NoError(t, err)
	err = o.Close(card)
	require.ErrorIs(t, err, ErrAlreadyClosed)

	// The failed close must not touch the recorded payment.
	assert.Equal(t, StatusClosed, o.Status)
	assert.Equal(t, MethodCash, o.Payment.Method)
}

func TestCreditCard_NumberLength(t *testing.T) {
	_, err := CreditCard("123")
	require.ErrorIs(t, err, ErrInvalidCardNumber)

	_, err = CreditCard("12345678901234567")
	require.ErrorIs(t, err, ErrInvalidCardNumber)

	p, err := CreditCard("1234567890123456")
	require.NoError(t, err)
	assert.Equal(t, MethodCreditCard, p.Method)
	assert.Equal(t, "1234567890123456", p.CardNumber)
}

func TestPaymentString(t *testing.T) {
	assert.Equal(t, "cash", Cash().String())

	p, err := CreditCard("1234567890123456")
	require.NoError(t, err)
	assert.Equal(t, "credit card 1234567890123456", p.String())
}
