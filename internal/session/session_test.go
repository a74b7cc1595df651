package session

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/almansori/corona/internal/domain/order"
	"github.com/almansori/corona/internal/domain/product"
	"github.com/almansori/corona/internal/domain/user"
	"github.com/almansori/corona/internal/state"
	"github.com/almansori/corona/internal/storage/snapfile"
)

func newTestState(t *testing.T) *state.Application {
	t.Helper()

	app := state.New(bcrypt.MinCost)
	_, err := app.Users.Register("admin", "root", "root@x.com", user.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, app.Catalog.Add(product.New("p1", "Widget", decimal.NewFromInt(10))))
	return app
}

// runScript feeds the session one command line per entry and returns
// everything it printed.
func runScript(t *testing.T, app *state.Application, store *snapfile.Store, lines ...string) string {
	t.Helper()

	tel, err := NewTelemetry(metricnoop.NewMeterProvider(), tracenoop.NewTracerProvider())
	require.NoError(t, err)

	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer

	s := New(Config{Currency: "EGP"}, app, store, in, &out, zap.NewNop(), tel)
	require.NoError(t, s.Run(context.Background()))

	return out.String()
}

func newTestStore(t *testing.T) *snapfile.Store {
	t.Helper()
	return snapfile.New(filepath.Join(t.TempDir(), "corona.json.gz"))
}

func TestSession_RegisterLoginShopPay(t *testing.T) {
	app := newTestState(t)

	out := runScript(t, app, newTestStore(t),
		"register",
		"alice", "pw", "a@x.com",
		"login",
		"alice", "pw",
		"add",
		"1", "2",
		"cart",
		"checkout",
		"1 Main St",
		"pay",
		"0",
		"cash",
		"100",
		"logout",
		"quit",
	)

	assert.Contains(t, out, "Item added to cart.")
	assert.Contains(t, out, "There are 1 item(s) in the cart:")
	assert.Contains(t, out, "Order #0")
	assert.Contains(t, out, "Return: 80.00 EGP")
	assert.Contains(t, out, "Order paid successfully.")

	o, err := app.Orders.Find(0)
	require.NoError(t, err)
	assert.Equal(t, order.StatusClosed, o.Status)
	require.NotNil(t, o.Payment)
	assert.Equal(t, order.MethodCash, o.Payment.Method)

	// Checkout moved the cart contents out.
	alice, err := app.Users.Login("alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, 0, alice.Cart.Len())
}

func TestSession_DuplicateRegistration(t *testing.T) {
	app := newTestState(t)

	out := runScript(t, app, newTestStore(t),
		"register",
		"alice", "pw", "a@x.com",
		"register",
		"alice", "other", "b@x.com",
		"quit",
	)

	assert.Contains(t, out, "Cannot create user.")
	assert.Equal(t, 2, app.Users.Len())
}

func TestSession_LoginFailuresIndistinguishable(t *testing.T) {
	app := newTestState(t)

	out := runScript(t, app, newTestStore(t),
		"register",
		"alice", "pw", "a@x.com",
		"login",
		"alice", "wrong",
		"login",
		"bob", "pw",
		"quit",
	)

	assert.Equal(t, 2, strings.Count(out, "Unauthorized."))
}

func TestSession_AdminProductCommands(t *testing.T) {
	app := newTestState(t)

	out := runScript(t, app, newTestStore(t),
		"login",
		"admin", "root",
		"product add",
		"p2", "Gadget", "2.50",
		"product list",
		"product remove",
		"p1",
		"catalog",
		"logout",
		"quit",
	)

	assert.Contains(t, out, "[p2] Gadget - 2.50 EGP")
	assert.Equal(t, 1, app.Catalog.Len())
	_, err := app.Catalog.ByCode("p1")
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestSession_ProductAddRequiresAdmin(t *testing.T) {
	app := newTestState(t)

	out := runScript(t, app, newTestStore(t),
		"register",
		"alice", "pw", "a@x.com",
		"login",
		"alice", "pw",
		"product add",
		"logout",
		"quit",
	)

	assert.Contains(t, out, "I don't understand what you are saying!!!")
	assert.Equal(t, 1, app.Catalog.Len())
}

func TestSession_PayOtherUsersOrderNotFound(t *testing.T) {
	app := newTestState(t)
	alice, err := app.Users.Register("alice", "pw", "a@x.com", user.RoleCustomer)
	require.NoError(t, err)
	_, err = app.Users.Register("bob", "pw", "b@x.com", user.RoleCustomer)
	require.NoError(t, err)
	app.Orders.Checkout(alice, "1 Main St")

	out := runScript(t, app, newTestStore(t),
		"login",
		"bob", "pw",
		"pay",
		"0",
		"logout",
		"quit",
	)

	assert.Contains(t, out, "Order not found. Aborting.")
}

func TestSession_PayAlreadyClosedOrder(t *testing.T) {
	app := newTestState(t)
	alice, err := app.Users.Register("alice", "pw", "a@x.com", user.RoleCustomer)
	require.NoError(t, err)
	o := app.Orders.Checkout(alice, "1 Main St")
	require.NoError(t, o.Close(order.Cash()))

	out := runScript(t, app, newTestStore(t),
		"login",
		"alice", "pw",
		"pay",
		"0",
		"cash",
		"10",
		"logout",
		"quit",
	)

	assert.Contains(t, out, "Order already closed.")
}

func TestSession_PayCardValidation(t *testing.T) {
	app := newTestState(t)
	alice, err := app.Users.Register("alice", "pw", "a@x.com", user.RoleCustomer)
	require.NoError(t, err)
	app.Orders.Checkout(alice, "1 Main St")

	out := runScript(t, app, newTestStore(t),
		"login",
		"alice", "pw",
		"pay",
		"0",
		"credit card",
		"123",
		"pay",
		"0",
		"credit card",
		"1234567890123456",
		"100",
		"logout",
		"quit",
	)

	assert.Contains(t, out, "Sorry, card number invalid.")
	assert.Contains(t, out, "Order paid successfully.")

	o, err := app.Orders.Find(0)
	require.NoError(t, err)
	require.NotNil(t, o.Payment)
	assert.Equal(t, "1234567890123456", o.Payment.CardNumber)
}

func TestSession_MalformedNumbersReprompt(t *testing.T) {
	app := newTestState(t)

	out := runScript(t, app, newTestStore(t),
		"register",
		"alice", "pw", "a@x.com",
		"login",
		"alice", "pw",
		"add",
		"not-a-number",
		"1",
		"also-not",
		"3",
		"cart",
		"logout",
		"quit",
	)

	assert.Contains(t, out, "Item added to cart.")
	assert.Contains(t, out, "3x Widget")
}

func TestSession_CartAddBadIndex(t *testing.T) {
	app := newTestState(t)

	out := runScript(t, app, newTestStore(t),
		"register",
		"alice", "pw", "a@x.com",
		"login",
		"alice", "pw",
		"add",
		"5",
		"logout",
		"quit",
	)

	assert.Contains(t, out, "Sorry, there is no item with this index.")
}

func TestSession_SaveCommand(t *testing.T) {
	app := newTestState(t)
	store := newTestStore(t)

	runScript(t, app, store,
		"save",
		"quit",
	)

	snap, err := store.Load()
	require.NoError(t, err)
	restored := state.Restore(snap, bcrypt.MinCost)
	_, err = restored.Users.Login("admin", "root")
	require.NoError(t, err)
}

func TestSession_OrderListScopedToUser(t *testing.T) {
	app := newTestState(t)
	alice, err := app.Users.Register("alice", "pw", "a@x.com", user.RoleCustomer)
	require.NoError(t, err)
	bob, err := app.Users.Register("bob", "pw", "b@x.com", user.RoleCustomer)
	require.NoError(t, err)
	app.Orders.Checkout(alice, "1 Main St")
	app.Orders.Checkout(bob, "2 Side St")

	out := runScript(t, app, newTestStore(t),
		"login",
		"alice", "pw",
		"orders",
		"logout",
		"quit",
	)

	assert.Contains(t, out, "for user: alice")
	assert.NotContains(t, out, "for user: bob")

	// The admin sees everything.
	out = runScript(t, app, newTestStore(t),
		"login",
		"admin", "root",
		"orders",
		"logout",
		"quit",
	)

	assert.Contains(t, out, "for user: alice")
	assert.Contains(t, out, "for user: bob")
}
