// Package models defines the core data types for the cart.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Product is a single cart line item.
type Product struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Price    Price  `json:"price"`
	Quantity int    `json:"quantity"`
}

// ProductInput is the caller-supplied product descriptor. It carries no
// quantity: the cart owns the count.
type ProductInput struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Price    Price  `json:"price"`
}

// WithQuantity returns the Product described by in with the given quantity.
func (in ProductInput) WithQuantity(quantity int) Product {
	return Product{
		ID:       in.ID,
		Title:    in.Title,
		ImageURL: in.ImageURL,
		Price:    in.Price,
		Quantity: quantity,
	}
}

// ---------------------------------------------------------------------------
// Price
// ---------------------------------------------------------------------------

// Price is an exact decimal amount stored as a bare JSON number.
type Price struct {
	d decimal.Decimal
}

// NewPrice parses s ("10", "19.99") into a Price.
func NewPrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("models.NewPrice: %w", err)
	}
	return Price{d: d}, nil
}

// MustPrice is like NewPrice but panics on malformed input. Intended for
// literals in tests and defaults.
func MustPrice(s string) Price {
	p, err := NewPrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PriceFromFloat converts f into a Price.
func PriceFromFloat(f float64) Price {
	return Price{d: decimal.NewFromFloat(f)}
}

// maxPlainExponent bounds the exponent written out in plain decimal notation.
// Beyond it String switches to <coefficient>e<exponent>.
const maxPlainExponent = 64

// String returns the canonical decimal representation. Amounts with a very
// large or very small exponent use exponent notation, which is also a valid
// JSON number.
func (p Price) String() string {
	exp := p.d.Exponent()
	if exp > maxPlainExponent || exp < -maxPlainExponent {
		return p.d.Coefficient().String() + "e" + strconv.Itoa(int(exp))
	}
	return p.d.String()
}

// Equal reports whether p and other denote the same amount, regardless of
// trailing zeros.
func (p Price) Equal(other Price) bool { return p.d.Equal(other.d) }

// MarshalJSON writes the price as an unquoted JSON number.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted numeric string. null leaves
// the price at zero.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		p.d = decimal.Zero
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("models.Price: %w", err)
	}
	p.d = d
	return nil
}
