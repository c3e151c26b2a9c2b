package models_test

import (
	"encoding/json"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/gomarketplace/internal/models"
)

func TestWithQuantity_HappyPath(t *testing.T) {
	c := qt.New(t)

	in := models.ProductInput{
		ID:       "a",
		Title:    "Sneaker",
		ImageURL: "https://img.example/a.png",
		Price:    models.MustPrice("149.90"),
	}
	got := in.WithQuantity(3)

	c.Assert(got.ID, qt.Equals, "a")
	c.Assert(got.Title, qt.Equals, "Sneaker")
	c.Assert(got.ImageURL, qt.Equals, "https://img.example/a.png")
	c.Assert(got.Price.Equal(models.MustPrice("149.9")), qt.IsTrue)
	c.Assert(got.Quantity, qt.Equals, 3)
}

// ---------------------------------------------------------------------------
// Price
// ---------------------------------------------------------------------------

func TestNewPrice_FailurePath(t *testing.T) {
	c := qt.New(t)

	for _, in := range []string{"", "abc", "1.2.3"} {
		c.Run(in, func(c *qt.C) {
			_, err := models.NewPrice(in)
			c.Assert(err, qt.IsNotNil)
		})
	}
}

func TestPriceMarshalJSON_HappyPath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name  string
		price models.Price
		want  string
	}{
		{"integer", models.MustPrice("10"), "10"},
		{"fraction", models.MustPrice("19.99"), "19.99"},
		{"from float", models.PriceFromFloat(0.1), "0.1"},
		{"zero value", models.Price{}, "0"},
		{"huge exponent", models.MustPrice("1e5000000"), "1e5000000"},
		{"tiny exponent", models.MustPrice("-2.5e-100"), "-25e-101"},
		{"exponent at the plain limit", models.MustPrice("1e64"), "1" + strings.Repeat("0", 64)},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			b, err := json.Marshal(tc.price)
			c.Assert(err, qt.IsNil)
			c.Assert(string(b), qt.Equals, tc.want)
		})
	}
}

func TestPriceUnmarshalJSON_HappyPath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"number", `10`, "10"},
		{"fractional number", `1234.56`, "1234.56"},
		{"quoted number", `"7.5"`, "7.5"},
		{"null is zero", `null`, "0"},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			var p models.Price
			c.Assert(json.Unmarshal([]byte(tc.raw), &p), qt.IsNil)
			c.Assert(p.String(), qt.Equals, tc.want)
		})
	}
}

func TestPriceJSON_LargeExponentStaysCompact(t *testing.T) {
	c := qt.New(t)

	var p models.Price
	c.Assert(json.Unmarshal([]byte(`1e5000000`), &p), qt.IsNil)

	b, err := json.Marshal(p)
	c.Assert(err, qt.IsNil)
	c.Assert(string(b), qt.Equals, "1e5000000")

	var back models.Price
	c.Assert(json.Unmarshal(b, &back), qt.IsNil)
	c.Assert(back.Equal(p), qt.IsTrue)
}

func TestPriceUnmarshalJSON_FailurePath(t *testing.T) {
	c := qt.New(t)

	var p models.Price
	err := json.Unmarshal([]byte(`"cheap"`), &p)
	c.Assert(err, qt.ErrorMatches, `models.Price: .*`)
}

func TestProductJSON_Shape(t *testing.T) {
	c := qt.New(t)

	p := models.Product{ID: "a", Title: "T", ImageURL: "u", Price: models.MustPrice("10"), Quantity: 1}
	b, err := json.Marshal(p)
	c.Assert(err, qt.IsNil)
	c.Assert(string(b), qt.Equals, `{"id":"a","title":"T","image_url":"u","price":10,"quantity":1}`)

	var back models.Product
	c.Assert(json.Unmarshal(b, &back), qt.IsNil)
	c.Assert(back, qt.DeepEquals, p)
}
