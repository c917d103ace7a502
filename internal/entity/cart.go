package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrLineNotFound    = errors.New("line not found")
)

// CartLine is one product line in an in-progress sale.
type CartLine struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

func (l CartLine) LineAmount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per product, in insertion order.
// The total is never stored; it is recomputed from the lines.
type Cart struct {
	ID    string     `json:"id"`
	Lines []CartLine `json:"lines"`
}

func NewCart(id string) *Cart {
	return &Cart{ID: id}
}

// AddLine appends a new line with quantity 1, or bumps the quantity when a
// line for the product already exists. Stock is not checked here; it is
// validated only at checkout.
func (c *Cart) AddLine(productID, productName string, unitPrice decimal.Decimal) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Quantity:    1,
	})
}

// RemoveLine drops the line for the product. Absent lines are a no-op.
func (c *Cart) RemoveLine(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the line's quantity. Callers that want a line gone
// must use RemoveLine; quantity <= 0 is rejected, never stored.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrLineNotFound
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Total is Σ(unit_price × quantity) over the current lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.LineAmount())
	}
	return total
}

func (c *Cart) Clear() {
	c.Lines = nil
}
