package snapfile

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/almansori/corona/internal/domain/cart"
	"github.com/almansori/corona/internal/domain/order"
	"github.com/almansori/corona/internal/domain/product"
	"github.com/almansori/corona/internal/domain/user"
	"github.com/almansori/corona/internal/state"
)

// encodeSnapshot renders a snapshot as JSON. Monetary values are encoded as
// strings so they round-trip through decimal exactly.
func encodeSnapshot(s state.Snapshot) []byte {
	var e jx.Encoder

	e.ObjStart()

	e.FieldStart("users")
	e.ArrStart()
	for _, u := range s.Users {
		encodeUser(&e, u)
	}
	e.ArrEnd()

	e.FieldStart("products")
	e.ArrStart()
	for _, p := range s.Products {
		encodeProduct(&e, p)
	}
	e.ArrEnd()

	e.FieldStart("orders")
	e.ArrStart()
	for _, o := range s.Orders {
		encodeOrder(&e, o)
	}
	e.ArrEnd()

	e.FieldStart("next_order_id")
	e.UInt64(s.NextOrderID)

	e.ObjEnd()

	return e.Bytes()
}

func encodeUser(e *jx.Encoder, u *user.User) {
	e.ObjStart()
	e.FieldStart("username")
	e.Str(u.Username)
	e.FieldStart("password_hash")
	e.Str(string(u.PasswordHash))
	e.FieldStart("email")
	e.Str(u.Email)
	e.FieldStart("role")
	e.Str(string(u.Role))
	e.FieldStart("cart")
	e.ArrStart()
	for _, it := range u.Cart.Items() {
		encodeItem(e, it)
	}
	e.ArrEnd()
	e.ObjEnd()
}

func encodeProduct(e *jx.Encoder, p product.Product) {
	e.ObjStart()
	e.FieldStart("code")
	e.Str(p.Code)
	e.FieldStart("name")
	e.Str(p.Name)
	e.FieldStart("unit_price")
	e.Str(p.UnitPrice.String())
	e.ObjEnd()
}

func encodeItem(e *jx.Encoder, it cart.Item) {
	e.ObjStart()
	e.FieldStart("code")
	e.Str(it.Code)
	e.FieldStart("name")
	e.Str(it.Name)
	e.FieldStart("unit_price")
	e.Str(it.UnitPrice.String())
	e.FieldStart("quantity")
	e.Str(it.Quantity.String())
	e.ObjEnd()
}

func encodeOrder(e *jx.Encoder, o *order.Order) {
	e.ObjStart()
	e.FieldStart("order_id")
	e.UInt64(o.ID)
	e.FieldStart("username")
	e.Str(o.Username)
	e.FieldStart("delivery_address")
	e.Str(o.DeliveryAddress)
	e.FieldStart("state")
	e.Str(string(o.Status))
	if o.Payment != nil {
		e.FieldStart("payment")
		e.ObjStart()
		e.FieldStart("method")
		e.Str(string(o.Payment.Method))
		if o.Payment.Method == order.MethodCreditCard {
			e.FieldStart("card_number")
			e.Str(o.Payment.CardNumber)
		}
		e.ObjEnd()
	}
	e.FieldStart("items")
	e.ArrStart()
	for _, it := range o.Items {
		encodeItem(e, it)
	}
	e.ArrEnd()
	e.ObjEnd()
}

// decodeSnapshot parses JSON previously produced by encodeSnapshot. Unknown
// fields are skipped so older binaries can read newer files.
func decodeSnapshot(data []byte) (state.Snapshot, error) {
	var s state.Snapshot

	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "users":
			return d.Arr(func(d *jx.Decoder) error {
				u, err := decodeUser(d)
				if err != nil {
					return err
				}
				s.Users = append(s.Users, u)
				return nil
			})
		case "products":
			return d.Arr(func(d *jx.Decoder) error {
				p, err := decodeProduct(d)
				if err != nil {
					return err
				}
				s.Products = append(s.Products, p)
				return nil
			})
		case "orders":
			return d.Arr(func(d *jx.Decoder) error {
				o, err := decodeOrder(d)
				if err != nil {
					return err
				}
				s.Orders = append(s.Orders, o)
				return nil
			})
		case "next_order_id":
			v, err := d.UInt64()
			if err != nil {
				return err
			}
			s.NextOrderID = v
			return nil
		default:
			return d.Skip()
		}
	}); err != nil {
		return state.Snapshot{}, errors.Wrap(err, "decode snapshot")
	}

	return s, nil
}

func decodeUser(d *jx.Decoder) (*user.User, error) {
	u := &user.User{}
	var items []cart.Item
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "username":
			return decodeStr(d, &u.Username)
		case "password_hash":
			v, err := d.Str()
			if err != nil {
				return err
			}
			u.PasswordHash = []byte(v)
			return nil
		case "email":
			return decodeStr(d, &u.Email)
		case "role":
			v, err := d.Str()
			if err != nil {
				return err
			}
			u.Role = user.Role(v)
			return nil
		case "cart":
			return d.Arr(func(d *jx.Decoder) error {
				it, err := decodeItem(d)
				if err != nil {
					return err
				}
				items = append(items, it)
				return nil
			})
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, err
	}
	u.Cart = cart.FromItems(items)
	return u, nil
}

func decodeProduct(d *jx.Decoder) (product.Product, error) {
	var p product.Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "code":
			return decodeStr(d, &p.Code)
		case "name":
			return decodeStr(d, &p.Name)
		case "unit_price":
			return decodeDecimal(d, &p.UnitPrice)
		default:
			return d.Skip()
		}
	})
	return p, err
}

func decodeItem(d *jx.Decoder) (cart.Item, error) {
	var it cart.Item
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "code":
			return decodeStr(d, &it.Code)
		case "name":
			return decodeStr(d, &it.Name)
		case "unit_price":
			return decodeDecimal(d, &it.UnitPrice)
		case "quantity":
			return decodeDecimal(d, &it.Quantity)
		default:
			return d.Skip()
		}
	})
	return it, err
}

func decodeOrder(d *jx.Decoder) (*order.Order, error) {
	o := &order.Order{}
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "order_id":
			v, err := d.UInt64()
			if err != nil {
				return err
			}
			o.ID = v
			return nil
		case "username":
			return decodeStr(d, &o.Username)
		case "delivery_address":
			return decodeStr(d, &o.DeliveryAddress)
		case "state":
			v, err := d.Str()
			if err != nil {
				return err
			}
			o.Status = order.Status(v)
			return nil
		case "payment":
			p, err := decodePayment(d)
			if err != nil {
				return err
			}
			o.Payment = p
			return nil
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				it, err := decodeItem(d)
				if err != nil {
					return err
				}
				o.Items = append(o.Items, it)
				return nil
			})
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, err
	}
	return o, nil
}

func decodePayment(d *jx.Decoder) (*order.Payment, error) {
	p := &order.Payment{}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "method":
			v, err := d.Str()
			if err != nil {
				return err
			}
			p.Method = order.Method(v)
			return nil
		case "card_number":
			return decodeStr(d, &p.CardNumber)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func decodeStr(d *jx.Decoder, dst *string) error {
	v, err := d.Str()
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func decodeDecimal(d *jx.Decoder, dst *decimal.Decimal) error {
	v, err := d.Str()
	if err != nil {
		return err
	}
	dec, err := decimal.NewFromString(v)
	if err != nil {
		return errors.Wrap(err, "parse decimal")
	}
	*dst = dec
	return nil
}
