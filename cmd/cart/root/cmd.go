// Package rootcmd wires the root cobra.Command for the cart CLI binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	addcmd "github.com/go-ports/gomarketplace/cmd/cart/add"
	configcmd "github.com/go-ports/gomarketplace/cmd/cart/config"
	decrementcmd "github.com/go-ports/gomarketplace/cmd/cart/decrement"
	incrementcmd "github.com/go-ports/gomarketplace/cmd/cart/increment"
	initcmd "github.com/go-ports/gomarketplace/cmd/cart/init"
	mcpcmd "github.com/go-ports/gomarketplace/cmd/cart/mcp"
	productscmd "github.com/go-ports/gomarketplace/cmd/cart/products"
	resetcmd "github.com/go-ports/gomarketplace/cmd/cart/reset"
	"github.com/go-ports/gomarketplace/cmd/cart/shared"
	versioncmd "github.com/go-ports/gomarketplace/cmd/cart/version"
	"github.com/go-ports/gomarketplace/internal/logging"
)

// New creates and returns the root cobra.Command for the cart CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "cart",
		Short:         "GoMarketplace device-local shopping cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.Home().LoadConfig()
			if err != nil {
				return err
			}
			logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	root.PersistentFlags().StringVar(
		&ctx.CartHome, "cart-home", "",
		"Override cart home directory (default: $CART_HOME env → persisted config → ~/.gomarketplace)",
	)

	root.AddCommand(
		initcmd.New(ctx).Cmd(),
		productscmd.New(ctx).Cmd(),
		addcmd.New(ctx).Cmd(),
		incrementcmd.New(ctx).Cmd(),
		decrementcmd.New(ctx).Cmd(),
		resetcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
		versioncmd.New(),
	)

	return root
}
