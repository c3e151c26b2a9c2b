// Package decrementcmd implements the `cart decrement` command.
package decrementcmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomarketplace/cmd/cart/shared"
	"github.com/go-ports/gomarketplace/internal/cart"
)

// Command implements `cart decrement`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the decrement command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "decrement <product-id>",
		Short: "Remove one unit from a cart item (dropping it at zero)",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	return c.ctx.WithCart(cmd.Context(), func(ctx context.Context) error {
		store := cart.Use(ctx)
		if err := store.Decrement(ctx, args[0]); err != nil {
			return err
		}
		return shared.PrintProducts(cmd.OutOrStdout(), store.Products())
	})
}
