// Package initcmd implements the `cart init` command.
package initcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomarketplace/cmd/cart/shared"
)

// Command implements `cart init`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the init command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize the cart home directory",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	home := c.ctx.Home()
	if err := home.Ensure(); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cart home initialized at %s (%s)\n", home.Path, home.Source)
	return nil
}
