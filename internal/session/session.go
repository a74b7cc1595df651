// Package session implements the interactive command loop. It owns all
// parsing and prompting: the domain packages only ever receive typed,
// validated values and never print anything themselves.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/almansori/corona/internal/domain/order"
	"github.com/almansori/corona/internal/domain/product"
	"github.com/almansori/corona/internal/domain/user"
	"github.com/almansori/corona/internal/state"
	"github.com/almansori/corona/internal/storage/snapfile"
	"github.com/almansori/corona/internal/view"
)

// Config holds non-dependency session settings.
type Config struct {
	// Currency is the label appended to rendered prices.
	Currency string
}

// Session drives one interactive session over a line-oriented reader/writer
// pair (stdin/stdout in production, buffers in tests).
type Session struct {
	app   *state.Application
	store *snapfile.Store

	in  *bufio.Scanner
	out io.Writer

	lg       *zap.Logger
	tel      *Telemetry
	currency string
}

// New creates a session bound to the given application state. Every session
// gets a unique id attached to its logger.
func New(
	cfg Config,
	app *state.Application,
	store *snapfile.Store,
	in io.Reader,
	out io.Writer,
	lg *zap.Logger,
	tel *Telemetry,
) *Session {
	return &Session{
		app:      app,
		store:    store,
		in:       bufio.NewScanner(in),
		out:      out,
		lg:       lg.With(zap.String("session_id", uuid.NewString())),
		tel:      tel,
		currency: cfg.Currency,
	}
}

// Run executes the anonymous command loop until quit, end of input, or
// context cancellation.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, ok := s.readLine(">>> ")
		if !ok {
			return nil
		}

		switch line {
		case "register":
			s.register(ctx)
		case "login":
			s.login(ctx)
		case "save":
			s.saveState(ctx)
		case "q", "quit", "exit":
			return nil
		case "":
		default:
			fmt.Fprintln(s.out, "I don't understand what you are saying!!!")
		}
	}
}

func (s *Session) register(ctx context.Context) {
	_, span := s.tel.startCommand(ctx, "register")
	defer span.End()

	username, ok := s.readLine("Username: ")
	if !ok {
		return
	}
	password, ok := s.readLine("Password: ")
	if !ok {
		return
	}
	email, ok := s.readLine("Email: ")
	if !ok {
		return
	}

	// Interactive registration always creates customers; the admin account
	// is seeded at startup.
	if _, err := s.app.Users.Register(username, password, email, user.RoleCustomer); err != nil {
		if !errors.Is(err, user.ErrUsernameTaken) {
			s.lg.Warn("register failed", zap.Error(err))
		}
		fmt.Fprintln(s.out, "Cannot create user.")
	}
}

func (s *Session) login(ctx context.Context) {
	cctx, span := s.tel.startCommand(ctx, "login")
	defer span.End()

	username, ok := s.readLine("Username: ")
	if !ok {
		return
	}
	password, ok := s.readLine("Password: ")
	if !ok {
		return
	}

	u, err := s.app.Users.Login(username, password)
	s.tel.recordLogin(cctx, err == nil)
	if err != nil {
		// Unknown username and bad password are reported identically.
		fmt.Fprintln(s.out, "Unauthorized.")
		return
	}

	s.loggedIn(ctx, u)
}

func (s *Session) saveState(ctx context.Context) {
	_, span := s.tel.startCommand(ctx, "save")
	defer span.End()

	if err := s.store.Save(s.app.Snapshot()); err != nil {
		s.lg.Error("save state", zap.Error(err))
		fmt.Fprintln(s.out, "Failed to save.")
		return
	}
	s.lg.Info("state saved", zap.String("path", s.store.Path()))
}

// loggedIn runs the per-user command loop until logout or end of input.
func (s *Session) loggedIn(ctx context.Context, u *user.User) {
	prompt := fmt.Sprintf("(%s) >>> ", u.Username)
	for {
		if ctx.Err() != nil {
			return
		}

		line, ok := s.readLine(prompt)
		if !ok {
			return
		}

		switch {
		case line == "product add" && u.IsAdmin():
			s.productAdd(ctx)
		case line == "product remove" && u.IsAdmin():
			s.productRemove(ctx)
		case line == "product list" || line == "product ls" || line == "catalog" || line == "products":
			view.Catalog(s.out, s.app.Catalog, s.currency)
		case line == "cart add" || line == "add":
			s.cartAdd(ctx, u)
		case line == "cart remove":
			s.cartRemove(ctx, u)
		case line == "cart list" || line == "cart ls" || line == "cart":
			view.Cart(s.out, &u.Cart)
		case line == "order list" || line == "order ls" || line == "orders":
			s.orderList(u)
		case line == "order" || line == "checkout":
			s.checkout(ctx, u)
		case line == "pay":
			s.pay(ctx, u)
		case line == "q" || line == "quit" || line == "exit" || line == "logout":
			return
		case line == "":
		default:
			fmt.Fprintln(s.out, "I don't understand what you are saying!!!")
		}
	}
}

func (s *Session) productAdd(ctx context.Context) {
	_, span := s.tel.startCommand(ctx, "product add")
	defer span.End()

	code, ok := s.readLine("Code: ")
	if !ok {
		return
	}
	name, ok := s.readLine("Name: ")
	if !ok {
		return
	}
	unitPrice, ok := s.readDecimal("Unit price: ")
	if !ok {
		return
	}

	if err := s.app.Catalog.Add(product.New(code, name, unitPrice)); err != nil {
		fmt.Fprintln(s.out, "Sorry, this code is already in the catalog.")
	}
}

func (s *Session) productRemove(ctx context.Context) {
	_, span := s.tel.startCommand(ctx, "product remove")
	defer span.End()

	code, ok := s.readLine("Code: ")
	if !ok {
		return
	}
	s.app.Catalog.Remove(code)
}

func (s *Session) cartAdd(ctx context.Context, u *user.User) {
	_, span := s.tel.startCommand(ctx, "cart add")
	defer span.End()

	index, ok := s.readInt("Item Index: ")
	if !ok {
		return
	}

	products := s.app.Catalog.Products()
	if index < 1 || index > len(products) {
		fmt.Fprintln(s.out, "Sorry, there is no item with this index.")
		return
	}

	quantity, ok := s.readDecimal("Quantity: ")
	if !ok {
		return
	}

	u.Cart.Add(products[index-1], quantity)
	fmt.Fprintln(s.out, "Item added to cart.")
}

func (s *Session) cartRemove(ctx context.Context, u *user.User) {
	_, span := s.tel.startCommand(ctx, "cart remove")
	defer span.End()

	code, ok := s.readLine("Code: ")
	if !ok {
		return
	}
	u.Cart.Remove(code)
}

func (s *Session) orderList(u *user.User) {
	if u.IsAdmin() {
		view.Orders(s.out, s.app.Orders.Orders(), s.currency)
		return
	}

	// The order registry has no per-user index; filtering is a linear scan.
	for _, o := range s.app.Orders.Orders() {
		if o.Username == u.Username {
			view.Order(s.out, o, s.currency)
		}
	}
}

func (s *Session) checkout(ctx context.Context, u *user.User) {
	cctx, span := s.tel.startCommand(ctx, "checkout")
	defer span.End()

	deliveryAddress, ok := s.readLine("Delivery address: ")
	if !ok {
		return
	}

	o := s.app.Orders.Checkout(u, deliveryAddress)
	s.tel.recordCheckout(cctx)
	s.lg.Info("order created",
		zap.Uint64("order_id", o.ID),
		zap.String("username", o.Username),
	)
	view.Order(s.out, o, s.currency)
}

func (s *Session) pay(ctx context.Context, u *user.User) {
	_, span := s.tel.startCommand(ctx, "pay")
	defer span.End()

	id, ok := s.readUint64("Order ID: ")
	if !ok {
		return
	}

	o, err := s.app.Orders.Find(id)
	if err != nil || o.Username != u.Username {
		fmt.Fprintln(s.out, "Order not found. Aborting.")
		return
	}

	view.Order(s.out, o, s.currency)
	total := o.Total()

	method, ok := s.readLine("Payment method: ")
	if !ok {
		return
	}

	// Amount sufficiency and card number checks happen here, before Close;
	// Close itself only validates the state transition.
	var payment order.Payment
	switch method {
	case "cash", "pay on delivery":
		amount, ok := s.readDecimal("Amount: ")
		if !ok {
			return
		}
		if amount.LessThan(total) {
			fmt.Fprintln(s.out, "Sorry, not enough money.")
			return
		}
		if amount.GreaterThan(total) {
			fmt.Fprintf(s.out, "Return: %s %s\n", amount.Sub(total).StringFixed(2), s.currency)
		}
		payment = order.Cash()
	case "credit", "credit card":
		cardNumber, ok := s.readLine("Card number: ")
		if !ok {
			return
		}
		payment, err = order.CreditCard(cardNumber)
		if err != nil {
			fmt.Fprintln(s.out, "Sorry, card number invalid.")
			return
		}

		amount, ok := s.readDecimal("Amount in card: ")
		if !ok {
			return
		}
		if amount.LessThan(total) {
			fmt.Fprintln(s.out, "Sorry, not enough money in card.")
			return
		}
	default:
		fmt.Fprintln(s.out, "This payment method is not available. Aborting.")
		return
	}

	if err := o.Close(payment); err != nil {
		fmt.Fprintln(s.out, "Order already closed.")
		return
	}
	fmt.Fprintln(s.out, "Order paid successfully.")
}

// readLine prompts and reads one line. ok is false at end of input.
func (s *Session) readLine(prompt string) (line string, ok bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// readDecimal prompts until a valid decimal is entered or input ends.
func (s *Session) readDecimal(prompt string) (decimal.Decimal, bool) {
	for {
		line, ok := s.readLine(prompt)
		if !ok {
			return decimal.Zero, false
		}
		if v, err := decimal.NewFromString(line); err == nil {
			return v, true
		}
	}
}

// readInt prompts until a valid integer is entered or input ends.
func (s *Session) readInt(prompt string) (int, bool) {
	for {
		line, ok := s.readLine(prompt)
		if !ok {
			return 0, false
		}
		if v, err := strconv.Atoi(line); err == nil {
			return v, true
		}
	}
}

// readUint64 prompts until a valid unsigned integer is entered or input ends.
func (s *Session) readUint64(prompt string) (uint64, bool) {
	for {
		line, ok := s.readLine(prompt)
		if !ok {
			return 0, false
		}
		if v, err := strconv.ParseUint(line, 10, 64); err == nil {
			return v, true
		}
	}
}
