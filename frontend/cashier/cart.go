package cashier

import (
	"encoding/json"
	"fmt"

	"github.com/Jwfathoni/kasir-pos/frontend/shared/money"
)

// CartItem is one checkout line. Code is the unique key within a cart.
type CartItem struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Qty   int64  `json:"qty"`
}

// Cart holds the ordered line items of one checkout in progress. At
// most one entry exists per product code and quantities stay positive;
// an entry is removed when its quantity drops to zero or below.
type Cart struct {
	items []CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add increments the quantity of an existing line or appends a new one
// with qty 1, then rebuilds the view.
func (c *Cart) Add(code, name string, price int64) CartView {
	for i := range c.items {
		if c.items[i].Code == code {
			c.items[i].Qty++
			return c.Render()
		}
	}
	c.items = append(c.items, CartItem{Code: code, Name: name, Price: price, Qty: 1})
	return c.Render()
}

// ChangeQty adds delta to the line's quantity. Absent codes are a
// no-op; a resulting quantity of zero or below removes the line.
func (c *Cart) ChangeQty(code string, delta int64) CartView {
	for i := range c.items {
		if c.items[i].Code != code {
			continue
		}
		c.items[i].Qty += delta
		if c.items[i].Qty <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		}
		break
	}
	return c.Render()
}

// Clear empties the cart.
func (c *Cart) Clear() CartView {
	c.items = nil
	return c.Render()
}

// Total is the sum of price*qty over all lines.
func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.items {
		total += it.Price * it.Qty
	}
	return total
}

// Items returns a copy of the current lines.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// Payload serializes the cart lines as the checkout wire field.
func (c *Cart) Payload() (string, error) {
	items := c.items
	if items == nil {
		items = []CartItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal cart: %w", err)
	}
	return string(b), nil
}

// CartLineView is one rendered cart row.
type CartLineView struct {
	Code       string
	Name       string
	PriceLabel string
	Qty        int64
}

// CartView is the full rebuilt representation shown after every
// mutation.
type CartView struct {
	Empty        bool
	EmptyMessage string
	Lines        []CartLineView
	TotalLabel   string
}

// Render rebuilds the full view model from the current state.
func (c *Cart) Render() CartView {
	if len(c.items) == 0 {
		return CartView{
			Empty:        true,
			EmptyMessage: "Keranjang kosong",
			TotalLabel:   money.Format(0),
		}
	}
	view := CartView{
		Lines:      make([]CartLineView, 0, len(c.items)),
		TotalLabel: money.Format(c.Total()),
	}
	for _, it := range c.items {
		view.Lines = append(view.Lines, CartLineView{
			Code:       it.Code,
			Name:       it.Name,
			PriceLabel: money.Format(it.Price),
			Qty:        it.Qty,
		})
	}
	return view
}

// ParseCartPayload decodes the serialized checkout field back into
// lines. Used by the checkout endpoint to re-validate the submission.
func ParseCartPayload(raw string) ([]CartItem, error) {
	var items []CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode cart payload: %w", err)
	}
	return items, nil
}
