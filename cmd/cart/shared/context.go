// Package shared holds the context passed to all CLI commands.
package shared

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/go-ports/gomarketplace/internal/config"
	"github.com/go-ports/gomarketplace/internal/models"
	"github.com/go-ports/gomarketplace/internal/service"
)

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// CartHome overrides the cart home directory.
	// When empty, resolution falls through to CART_HOME env var → persisted config → ~/.gomarketplace.
	CartHome string
}

// Home resolves the cart home for this invocation.
func (c *Context) Home() config.Home {
	return config.ResolveHome(c.CartHome)
}

// WithCart opens the cart home, waits for the cart to load from storage and
// runs fn with a context that carries the cart (see cart.Use).
func (c *Context) WithCart(ctx context.Context, fn func(ctx context.Context) error) error {
	svc, err := service.New(ctx, c.CartHome)
	if err != nil {
		return err
	}
	defer svc.Close()

	if _, err := svc.Cart(ctx); err != nil {
		return err
	}
	return fn(svc.Context(ctx))
}

// PrintProducts writes products as an aligned table, or a notice when empty.
func PrintProducts(w io.Writer, products []models.Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, "Cart is empty.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tQTY")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", p.ID, p.Title, p.Price, p.Quantity)
	}
	return tw.Flush()
}
