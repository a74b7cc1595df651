package order

import "github.com/go-faster/errors"

// ErrInvalidCardNumber is returned when a credit card number is not exactly
// 16 characters.
var ErrInvalidCardNumber = errors.New("card number must be 16 characters")

// Method enumerates the supported payment methods.
type Method string

const (
	MethodCash       Method = "cash"
	MethodCreditCard Method = "credit_card"
)

// Payment records how a closed order was settled. CardNumber is set for
// credit card payments only.
type Payment struct {
	Method     Method
	CardNumber string
}

// Cash returns a cash payment.
func Cash() Payment {
	return Payment{Method: MethodCash}
}

// CreditCard returns a credit card payment, rejecting card numbers that are
// not exactly 16 characters.
func CreditCard(cardNumber string) (Payment, error) {
	if len(cardNumber) != 16 {
		return Payment{}, ErrInvalidCardNumber
	}
	return Payment{Method: MethodCreditCard, CardNumber: cardNumber}, nil
}

// String renders the payment for display.
func (p Payment) String() string {
	if p.Method == MethodCreditCard {
		return "credit card " + p.CardNumber
	}
	return "cash"
}
