// Package addcmd implements the `cart add` command.
package addcmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomarketplace/cmd/cart/shared"
	"github.com/go-ports/gomarketplace/internal/cart"
	"github.com/go-ports/gomarketplace/internal/models"
)

// Command implements `cart add`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	id       string
	title    string
	imageURL string
	price    string
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "add",
		Short: "Add one unit of a product to the cart",
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.id, "id", "", "Product id (required)")
	f.StringVar(&c.title, "title", "", "Product title")
	f.StringVar(&c.imageURL, "image-url", "", "Product image URL")
	f.StringVar(&c.price, "price", "0", "Unit price, e.g. 19.90")

	_ = c.cmd.MarkFlagRequired("id")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	price, err := models.NewPrice(c.price)
	if err != nil {
		return fmt.Errorf("invalid --price %q: %w", c.price, err)
	}

	item := models.ProductInput{
		ID:       c.id,
		Title:    c.title,
		ImageURL: c.imageURL,
		Price:    price,
	}

	return c.ctx.WithCart(cmd.Context(), func(ctx context.Context) error {
		store := cart.Use(ctx)
		if err := store.AddToCart(ctx, item); err != nil {
			return err
		}
		for _, p := range store.Products() {
			if p.ID == item.ID {
				fmt.Fprintf(cmd.OutOrStdout(), "Added: %s (id: %s, quantity: %d)\n", p.Title, p.ID, p.Quantity)
			}
		}
		return nil
	})
}
