// Package resetcmd implements the `cart reset` command.
package resetcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/gomarketplace/cmd/cart/shared"
	"github.com/go-ports/gomarketplace/internal/service"
)

// Command implements `cart reset`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the reset command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "reset",
		Short: "Remove the stored cart so the next session starts empty",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := service.New(cmd.Context(), c.ctx.CartHome)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Reset(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cart cleared at %s\n", svc.CartHome)
	return nil
}
