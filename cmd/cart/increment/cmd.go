// Package incrementcmd implements the `cart increment` command.
package incrementcmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomarketplace/cmd/cart/shared"
	"github.com/go-ports/gomarketplace/internal/cart"
)

// Command implements `cart increment`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the increment command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "increment <product-id>",
		Short: "Add one unit to a cart item",
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
		if err := store.Increment(ctx, args[0]); err != nil {
			return err
		}
		return shared.PrintProducts(cmd.OutOrStdout(), store.Products())
	})
}
