// Package productscmd implements the `cart products` command.
package productscmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomarketplace/cmd/cart/shared"
	"github.com/go-ports/gomarketplace/internal/cart"
)

// Command implements `cart products`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	asJSON bool
}

// New creates the products command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "products",
		Aliases: []string{"ls"},
		Short:   "List the products in the cart",
		Args:    cobra.NoArgs,
		RunE:    c.run,
	}
	c.cmd.Flags().BoolVar(&c.asJSON, "json", false, "Print the cart in its stored JSON form")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	return c.ctx.WithCart(cmd.Context(), func(ctx context.Context) error {
		products := cart.Use(ctx).Products()
		if !c.asJSON {
			return shared.PrintProducts(cmd.OutOrStdout(), products)
		}
		b, err := json.Marshal(products)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	})
}
